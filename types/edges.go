package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's node indices in a way that can be compared.
An edge between nodes [4] and [0] is always stored as [0,4], so both windings of a face produce the same key.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// Two 32 bit unsigned indices packed into one uint64, low word is the smaller index
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(uint64(i1) | uint64(i2)<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(ek & math.MaxUint32)
	verts[1] = int(ek >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (ek EdgeKey) String() string {
	v := ek.GetVertices(false)
	return fmt.Sprintf("[%d,%d]", v[0], v[1])
}

// QuadEdges returns the four edge keys of a quadrilateral in winding order,
// edge i joins node i and node (i+1)%4
func QuadEdges(quad [4]int) (edges [4]EdgeKey) {
	for i := 0; i < 4; i++ {
		edges[i] = NewEdgeKey([2]int{quad[i], quad[(i+1)%4]})
	}
	return
}

// SharedEdge reports the edge two quadrilaterals have in common, if any
func SharedEdge(a, b [4]int) (ek EdgeKey, found bool) {
	ea, eb := QuadEdges(a), QuadEdges(b)
	for _, e1 := range ea {
		for _, e2 := range eb {
			if e1 == e2 {
				return e1, true
			}
		}
	}
	return
}
