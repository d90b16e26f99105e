package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		// Maximum index
		en = NewEdgeKey([2]int{1, 1<<32 - 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))
		assert.Equal(t, "[1,4294967295]", en.String())

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Test quad edges
		edges := QuadEdges([4]int{0, 3, 2, 1})
		assert.Equal(t, NewEdgeKey([2]int{0, 3}), edges[0])
		assert.Equal(t, NewEdgeKey([2]int{2, 3}), edges[1])
		assert.Equal(t, NewEdgeKey([2]int{1, 2}), edges[2])
		assert.Equal(t, NewEdgeKey([2]int{0, 1}), edges[3])
	}
	{ // Test shared edge
		ek, found := SharedEdge([4]int{0, 1, 2, 3}, [4]int{1, 4, 5, 2})
		assert.True(t, found)
		assert.Equal(t, [2]int{1, 2}, ek.GetVertices(false))

		// Diagonal nodes are not an edge
		_, found = SharedEdge([4]int{0, 1, 2, 3}, [4]int{0, 4, 2, 5})
		assert.False(t, found)
	}
}
