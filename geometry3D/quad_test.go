package geometry3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func unitSquare() [4]r3.Vec {
	return [4]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}}
}

func TestQuadGeometry(t *testing.T) {
	tol := 1.e-10
	{ // Test normal, area, centroid of a unit square
		p := unitSquare()
		n, ok := FaceNormal(p)
		assert.True(t, ok)
		assert.InDelta(t, 0, n.X, tol)
		assert.InDelta(t, 0, n.Y, tol)
		assert.InDelta(t, 1, n.Z, tol)
		assert.InDelta(t, 1, FaceArea(p), tol)
		c := FaceCentroid(p)
		assert.InDelta(t, 0.5, c.X, tol)
		assert.InDelta(t, 0.5, c.Y, tol)
		assert.InDelta(t, 0, c.Z, tol)
	}
	{ // Test reversed winding flips the normal
		p := unitSquare()
		p[1], p[3] = p[3], p[1]
		n, ok := FaceNormal(p)
		assert.True(t, ok)
		assert.InDelta(t, -1, n.Z, tol)
	}
	{ // Test scaled rectangle area
		p := [4]r3.Vec{{X: 0, Y: 0, Z: 2}, {X: 3, Y: 0, Z: 2}, {X: 3, Y: 0.5, Z: 2}, {X: 0, Y: 0.5, Z: 2}}
		assert.InDelta(t, 1.5, FaceArea(p), tol)
	}
	{ // Test degenerate faces
		var collapsed [4]r3.Vec
		_, ok := FaceNormal(collapsed)
		assert.False(t, ok)
		assert.Equal(t, 0., FaceArea(collapsed))
		line := [4]r3.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
		_, ok = FaceNormal(line)
		assert.False(t, ok)
	}
}

func TestPlaneOperations(t *testing.T) {
	tol := 1.e-10
	var (
		origin = r3.Vec{}
		up     = r3.Vec{Z: 1}
	)
	assert.InDelta(t, 2, SignedDistanceToPlane(r3.Vec{X: 4, Y: -1, Z: 2}, origin, up), tol)
	assert.InDelta(t, -3, SignedDistanceToPlane(r3.Vec{Z: -3}, origin, up), tol)
	proj := ProjectPointToPlane(r3.Vec{X: 0.3, Y: 0.7, Z: 5}, origin, up)
	assert.InDelta(t, 0.3, proj.X, tol)
	assert.InDelta(t, 0.7, proj.Y, tol)
	assert.InDelta(t, 0, proj.Z, tol)
}

func TestAngleBetween(t *testing.T) {
	tol := 1.e-8
	v1 := r3.Vec{X: 1}
	assert.InDelta(t, 90, AngleBetween(v1, r3.Vec{Y: 1}), tol)
	assert.InDelta(t, 180, AngleBetween(v1, r3.Vec{X: -2}), tol)
	assert.InDelta(t, 0, AngleBetween(v1, v1), tol)
	assert.InDelta(t, 45, AngleBetween(v1, r3.Vec{X: 1, Y: 1}), tol)
	assert.Equal(t, 0., AngleBetween(v1, r3.Vec{}))
	// Nearly parallel vectors must not produce NaN through acos
	assert.False(t, math.IsNaN(AngleBetween(r3.Vec{X: 1, Y: 1e-17}, r3.Vec{X: 1})))
}

func TestPointInQuad(t *testing.T) {
	p := unitSquare()
	assert.True(t, PointInQuad(r3.Vec{X: 0.5, Y: 0.5}, p, 1e-9))
	assert.True(t, PointInQuad(r3.Vec{X: 0.9, Y: 0.1}, p, 1e-9))
	assert.True(t, PointInQuad(r3.Vec{X: 0.1, Y: 0.9}, p, 1e-9))
	assert.True(t, PointInQuad(r3.Vec{X: 1, Y: 0.5}, p, 1e-9)) // on an edge
	assert.True(t, PointInQuad(r3.Vec{X: 0, Y: 0}, p, 1e-9))   // at a corner
	assert.False(t, PointInQuad(r3.Vec{X: 1.1, Y: 0.5}, p, 1e-9))
	assert.False(t, PointInQuad(r3.Vec{X: -0.01, Y: -0.01}, p, 1e-9))
	assert.True(t, PointInQuad(r3.Vec{X: 1.001, Y: 0.5}, p, 1e-2))
	// Clockwise winding works the same
	p[1], p[3] = p[3], p[1]
	assert.True(t, PointInQuad(r3.Vec{X: 0.25, Y: 0.75}, p, 1e-9))
}

func TestBoundingBox(t *testing.T) {
	assert.Nil(t, NewBoundingBox(nil))
	a := NewBoundingBox([]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 3}})
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, a.XMax)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 1, Z: 1.5}, a.Centroid())
	b := NewBoundingBox([]r3.Vec{{X: 4, Y: 0, Z: 0}, {X: 5, Y: 2, Z: 3}})
	assert.InDelta(t, 3, a.Distance(b), 1e-12)
	assert.InDelta(t, 3, b.Distance(a), 1e-12)
	c := NewBoundingBox([]r3.Vec{{X: 0.5, Y: 0.5, Z: 0.5}, {X: 9, Y: 9, Z: 9}})
	assert.Equal(t, 0., a.Distance(c))
	d := NewBoundingBox([]r3.Vec{{X: 4, Y: 6, Z: 0}})
	assert.InDelta(t, 5, a.Distance(d), 1e-12)
}
