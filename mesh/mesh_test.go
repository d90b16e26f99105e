package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/geometry3D"
)

func TestCanonical(t *testing.T) {
	{ // Test all rotations and both windings give one key
		q := QuadFace{7, 3, 9, 5}
		want := QuadFace{3, 7, 5, 9}
		assert.Equal(t, want, q.Canonical())
		for r := 0; r < 4; r++ {
			rot := QuadFace{q[r], q[(r+1)%4], q[(r+2)%4], q[(r+3)%4]}
			rev := QuadFace{rot[0], rot[3], rot[2], rot[1]}
			assert.Equal(t, want, rot.Canonical())
			assert.Equal(t, want, rev.Canonical())
		}
	}
	{ // Test idempotence
		for _, q := range []QuadFace{{0, 1, 2, 3}, {3, 2, 1, 0}, {10, 4, 8, 6}, {1, 1, 2, 3}} {
			c := q.Canonical()
			assert.Equal(t, c, c.Canonical())
		}
	}
	{ // Test minimum node first, smaller neighbor second
		assert.Equal(t, QuadFace{0, 1, 2, 3}, QuadFace{0, 3, 2, 1}.Canonical())
		assert.Equal(t, QuadFace{0, 1, 2, 3}, QuadFace{2, 1, 0, 3}.Canonical())
	}
	{ // Test a repeated node still gives one key for every rotation
		q := QuadFace{1, 1, 2, 3}
		for r := 0; r < 4; r++ {
			rot := QuadFace{q[r], q[(r+1)%4], q[(r+2)%4], q[(r+3)%4]}
			assert.Equal(t, q.Canonical(), rot.Canonical())
		}
	}
	{ // Test different node sets give different keys
		assert.NotEqual(t, QuadFace{0, 1, 2, 3}.Canonical(), QuadFace{0, 1, 2, 4}.Canonical())
		// Same nodes, different cycle, is a different face
		assert.NotEqual(t, QuadFace{0, 1, 2, 3}.Canonical(), QuadFace{0, 2, 1, 3}.Canonical())
	}
}

func TestHexFacesOutward(t *testing.T) {
	m := NewSingleHexMesh()
	var center r3.Vec
	for _, v := range m.Vertices {
		center = r3.Add(center, r3.Scale(1./8., v))
	}
	elem := m.Elements[0]
	for lf := 0; lf < 6; lf++ {
		p := m.FaceCoordinates(elem.Face(lf))
		n, ok := geometry3D.FaceNormal(p)
		require.True(t, ok)
		out := r3.Sub(geometry3D.FaceCentroid(p), center)
		assert.InDelta(t, 1, r3.Dot(n, r3.Unit(out)), 1e-12, "face %s is not outward", HexFaceNames[lf])
		assert.InDelta(t, 1, geometry3D.FaceArea(p), 1e-12)
	}
}

func TestMeshValidate(t *testing.T) {
	{ // Test a good mesh
		m := NewTwoCubeMesh(0.001, 2)
		assert.NoError(t, m.Validate())
		assert.Equal(t, 54, m.NumVertices())
		assert.Equal(t, 16, m.NumElements())
		blk, found := m.BlockByName("Block_2")
		require.True(t, found)
		assert.Equal(t, 2, blk.ID)
		assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 14, 15}, blk.Elements)
		_, found = m.BlockByName("Block_3")
		assert.False(t, found)
		m.PrintStatistics()
	}
	{ // Test bad node index
		m := NewSingleHexMesh()
		m.Elements[0][3] = 99
		var topoErr *TopologyError
		err := m.Validate()
		require.True(t, errors.As(err, &topoErr))
		assert.Equal(t, InvalidNodeIndex, topoErr.Kind)
	}
	{ // Test element without a block
		m := NewSingleHexMesh()
		m.ElementBlocks[0].Elements = nil
		var topoErr *TopologyError
		require.True(t, errors.As(m.Validate(), &topoErr))
		assert.Equal(t, ElementBlockConflict, topoErr.Kind)
		assert.Equal(t, []int{0}, topoErr.Elements)
		assert.Contains(t, topoErr.Error(), "element 0 not found in any block")
	}
	{ // Test element in two blocks
		m := NewSingleHexMesh()
		m.ElementBlocks = append(m.ElementBlocks, ElementBlock{ID: 2, Name: "dup", Elements: []int{0}})
		_, err := m.ElementToBlock()
		assert.Error(t, err)
	}
	{ // Test invalid side set and node set entries
		m := NewSingleHexMesh()
		m.SideSets["bad"] = []SideSetEntry{{Element: 0, LocalFace: 6}}
		assert.Error(t, m.Validate())
		m = NewSingleHexMesh()
		m.NodeSets["bad"] = []int{8}
		assert.Error(t, m.Validate())
	}
}
