package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type BoundingBox struct {
	XMin, XMax r3.Vec
}

func NewBoundingBox(points []r3.Vec) (Box *BoundingBox) {
	if len(points) == 0 {
		return nil
	}
	Box = &BoundingBox{XMin: points[0], XMax: points[0]}
	for _, point := range points[1:] {
		Box.Include(point)
	}
	return Box
}

func (bb *BoundingBox) Include(point r3.Vec) {
	bb.XMin = r3.Vec{X: math.Min(bb.XMin.X, point.X), Y: math.Min(bb.XMin.Y, point.Y), Z: math.Min(bb.XMin.Z, point.Z)}
	bb.XMax = r3.Vec{X: math.Max(bb.XMax.X, point.X), Y: math.Max(bb.XMax.Y, point.Y), Z: math.Max(bb.XMax.Z, point.Z)}
}

func (bb *BoundingBox) Centroid() r3.Vec {
	return r3.Scale(0.5, r3.Add(bb.XMin, bb.XMax))
}

// Distance is the gap between two boxes, zero when they touch or overlap
func (bb *BoundingBox) Distance(other *BoundingBox) float64 {
	gap := func(aMin, aMax, bMin, bMax float64) float64 {
		return math.Max(0, math.Max(bMin-aMax, aMin-bMax))
	}
	d := r3.Vec{
		X: gap(bb.XMin.X, bb.XMax.X, other.XMin.X, other.XMax.X),
		Y: gap(bb.XMin.Y, bb.XMax.Y, other.XMin.Y, other.XMax.Y),
		Z: gap(bb.XMin.Z, bb.XMax.Z, other.XMin.Z, other.XMax.Z),
	}
	return r3.Norm(d)
}
