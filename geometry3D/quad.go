package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DegenerateTol is the cross product magnitude below which a face has no usable normal
const DegenerateTol = 1e-12

// FaceNormal returns the unit normal of a quadrilateral from the cross product
// of its diagonals, d1 = p2 - p0 and d2 = p3 - p1. The winding of the nodes
// sets the direction. ok is false for a degenerate face, where the normal is zero.
func FaceNormal(p [4]r3.Vec) (normal r3.Vec, ok bool) {
	var (
		cross = diagonalCross(p)
		mag   = r3.Norm(cross)
	)
	if mag < DegenerateTol {
		return r3.Vec{}, false
	}
	normal = r3.Scale(1/mag, cross)
	ok = true
	return
}

// FaceArea is half the magnitude of the diagonal cross product, exact for planar quads
func FaceArea(p [4]r3.Vec) (area float64) {
	area = 0.5 * r3.Norm(diagonalCross(p))
	if area < DegenerateTol {
		area = 0
	}
	return
}

func FaceCentroid(p [4]r3.Vec) (centroid r3.Vec) {
	for i := 0; i < 4; i++ {
		centroid = r3.Add(centroid, p[i])
	}
	centroid = r3.Scale(0.25, centroid)
	return
}

func diagonalCross(p [4]r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(p[2], p[0]), r3.Sub(p[3], p[1]))
}

// SignedDistanceToPlane is positive on the side the normal points to
func SignedDistanceToPlane(point, planePoint, planeNormal r3.Vec) float64 {
	return r3.Dot(r3.Sub(point, planePoint), planeNormal)
}

// ProjectPointToPlane returns the orthogonal projection of point onto the plane
// through planePoint with unit normal planeNormal
func ProjectPointToPlane(point, planePoint, planeNormal r3.Vec) r3.Vec {
	d := SignedDistanceToPlane(point, planePoint, planeNormal)
	return r3.Sub(point, r3.Scale(d, planeNormal))
}

// AngleBetween returns the angle in degrees, zero when either vector has no length
func AngleBetween(v1, v2 r3.Vec) (angle float64) {
	normProduct := r3.Norm(v1) * r3.Norm(v2)
	if normProduct < DegenerateTol {
		return 0
	}
	cosTheta := r3.Dot(v1, v2) / normProduct
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	angle = math.Acos(cosTheta) * 180 / math.Pi
	return
}

// PointInQuad tests a point lying in the quad's plane against the two
// triangles (p0,p1,p2) and (p0,p2,p3). tol is a barycentric slack, so a point
// on an edge is inside for any tol >= 0.
func PointInQuad(point r3.Vec, p [4]r3.Vec, tol float64) bool {
	return pointInTriangle(point, p[0], p[1], p[2], tol) ||
		pointInTriangle(point, p[0], p[2], p[3], tol)
}

func pointInTriangle(point, a, b, c r3.Vec, tol float64) bool {
	var (
		v0    = r3.Sub(c, a)
		v1    = r3.Sub(b, a)
		v2    = r3.Sub(point, a)
		dot00 = r3.Dot(v0, v0)
		dot01 = r3.Dot(v0, v1)
		dot02 = r3.Dot(v0, v2)
		dot11 = r3.Dot(v1, v1)
		dot12 = r3.Dot(v1, v2)
		denom = dot00*dot11 - dot01*dot01
	)
	if math.Abs(denom) < DegenerateTol*DegenerateTol {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= -tol && v >= -tol && u+v <= 1+tol
}

// CharacteristicLength is the square root of the face area
func CharacteristicLength(area float64) float64 {
	return math.Sqrt(math.Max(area, 0))
}
