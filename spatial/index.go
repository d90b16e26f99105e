package spatial

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// facePoint is a face centroid tagged with its face id
type facePoint struct {
	pos [3]float64
	id  int
}

func (p facePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(facePoint)
	return p.pos[d] - q.pos[d]
}

func (p facePoint) Dims() int { return 3 }

// Distance returns the squared euclidean distance
func (p facePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(facePoint)
	var sum float64
	for d := 0; d < 3; d++ {
		diff := p.pos[d] - q.pos[d]
		sum += diff * diff
	}
	return sum
}

type facePoints []facePoint

func (p facePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p facePoints) Len() int                              { return len(p) }
func (p facePoints) Pivot(d kdtree.Dim) int                { return plane{facePoints: p, Dim: d}.Pivot() }
func (p facePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	facePoints
}

func (p plane) Less(i, j int) bool {
	return p.facePoints[i].pos[p.Dim] < p.facePoints[j].pos[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{Dim: p.Dim, facePoints: p.facePoints[start:end]}
}
func (p plane) Swap(i, j int) {
	p.facePoints[i], p.facePoints[j] = p.facePoints[j], p.facePoints[i]
}

func toPoint(v r3.Vec, id int) facePoint {
	return facePoint{pos: [3]float64{v.X, v.Y, v.Z}, id: id}
}

// Index is a static k-d tree over face centroids. It is not modified after
// New returns and may be queried from many go routines.
type Index struct {
	tree *kdtree.Tree
	size int
}

// New builds an index over centroids[i] labeled ids[i]. A nil ids labels
// each centroid with its position.
func New(centroids []r3.Vec, ids []int) (idx *Index) {
	pts := make(facePoints, len(centroids))
	for i, c := range centroids {
		id := i
		if ids != nil {
			id = ids[i]
		}
		pts[i] = toPoint(c, id)
	}
	idx = &Index{size: len(pts)}
	if len(pts) > 0 {
		idx.tree = kdtree.New(pts, false)
	}
	return
}

func (idx *Index) Len() int { return idx.size }

// within yields the points whose squared distance to q is at most r2
func (idx *Index) within(q facePoint, r2 float64) iter.Seq[facePoint] {
	return func(yield func(facePoint) bool) {
		if idx.tree == nil || r2 < 0 || math.IsNaN(r2) {
			return
		}
		var (
			r   = math.Sqrt(r2)
			pad = r + 1e-9*(1+r)
			box = &kdtree.Bounding{
				Min: facePoint{pos: [3]float64{q.pos[0] - pad, q.pos[1] - pad, q.pos[2] - pad}},
				Max: facePoint{pos: [3]float64{q.pos[0] + pad, q.pos[1] + pad, q.pos[2] + pad}},
			}
		)
		idx.tree.DoBounded(box, func(c kdtree.Comparable, _ *kdtree.Bounding, _ int) (done bool) {
			fp := c.(facePoint)
			if fp.Distance(q) > r2 {
				return false
			}
			return !yield(fp)
		})
	}
}

// QueryRadius yields the ids of all points within r of p, in no particular
// order. The tree is walked lazily, breaking out of the range stops the walk.
func (idx *Index) QueryRadius(p r3.Vec, r float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		if r < 0 {
			return
		}
		for fp := range idx.within(toPoint(p, -1), r*r) {
			if !yield(fp.id) {
				return
			}
		}
	}
}

// Nearest returns the closest point to p, ties go to the lowest id. ok is
// false for an empty index.
func (idx *Index) Nearest(p r3.Vec) (id int, dist float64, ok bool) {
	if idx.tree == nil {
		return -1, 0, false
	}
	q := toPoint(p, -1)
	c, d2 := idx.tree.Nearest(q)
	if c == nil {
		return -1, 0, false
	}
	id = c.(facePoint).id
	for fp := range idx.within(q, d2) {
		if fp.id < id {
			id = fp.id
		}
	}
	return id, math.Sqrt(d2), true
}
