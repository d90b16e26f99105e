package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEdgeNeighbors(t *testing.T) {
	{ // Test a 2x1 strip of quads plus a face touching only at a corner
		faces := []QuadFace{
			{0, 1, 4, 3},
			{1, 2, 5, 4},
			{5, 6, 7, 8}, // corner at node 5 only
		}
		nbrs := EdgeNeighbors(faces)
		assert.Equal(t, []int{1}, nbrs[0])
		assert.Equal(t, []int{0}, nbrs[1])
		assert.Equal(t, 0, len(nbrs[2]))
	}
	{ // Test two diagonal nodes in common is not an edge
		nbrs := EdgeNeighbors([]QuadFace{{0, 1, 2, 3}, {0, 4, 2, 5}})
		assert.Equal(t, 0, len(nbrs[0]))
		assert.Equal(t, 0, len(nbrs[1]))
	}
	{ // Test cube skin, every face touches four others
		m := NewSingleHexMesh()
		faces := make([]QuadFace, 6)
		for lf := range faces {
			faces[lf] = m.Elements[0].Face(lf)
		}
		nbrs := EdgeNeighbors(faces)
		assert.Equal(t, []int{2, 3, 4, 5}, nbrs[0])
		assert.Equal(t, []int{2, 3, 4, 5}, nbrs[1])
		assert.Equal(t, []int{0, 1, 3, 5}, nbrs[2])
	}
	assert.Equal(t, 0, len(EdgeNeighbors(nil)))
}

func TestSegmentPatches(t *testing.T) {
	opts := DefaultSurfaceOptions()
	{ // Test a single hex gives six single face patches
		m := NewSingleHexMesh()
		surfaces, err := ExtractSurfaces(m, opts)
		require.NoError(t, err)
		require.Equal(t, 6, len(surfaces))
		for p, s := range surfaces {
			assert.Equal(t, 1, s.NumFaces())
			assert.Equal(t, SurfaceID{Block: 1, Patch: p + 1}, s.ID)
			assert.Equal(t, p, s.LocalFaces[0])
			assert.InDelta(t, 1, s.TotalArea(), 1e-12)
		}
		assert.Equal(t, "Block_1:patch_1", surfaces[0].Name)
		assert.Equal(t, "Block_1", surfaces[0].BlockName)
		assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: -1}, surfaces[0].Normals[0])
	}
	{ // Test a subdivided box gives one patch per side
		m := NewBoxMesh(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 1}, [3]int{4, 2, 2}, "Box", 7)
		surfaces, err := ExtractSurfaces(m, opts)
		require.NoError(t, err)
		require.Equal(t, 6, len(surfaces))
		var total float64
		for _, s := range surfaces {
			total += s.TotalArea()
			assert.False(t, s.IsClosed())
			for f := 1; f < s.NumFaces(); f++ {
				assert.InDelta(t, 1, r3.Dot(s.Normals[0], s.Normals[f]), 1e-12)
			}
		}
		assert.InDelta(t, 10, total, 1e-12)
		assert.Equal(t, 8, surfaces[0].NumFaces()) // bottom, 4x2
		assert.Equal(t, 15, surfaces[0].NumNodes())
	}
	{ // Test seed normal comparison stops drift on a gently bent strip
		m := NewBentStripMesh(12, 3, 10, 0.5)
		surfaces, err := ExtractSurfaces(m, opts)
		require.NoError(t, err)
		assert.Equal(t, 10, len(surfaces))
		var outer []*SurfaceMesh
		for _, s := range surfaces {
			if s.LocalFaces[0] == 1 {
				outer = append(outer, s)
			}
		}
		require.Equal(t, 3, len(outer))
		for _, s := range outer {
			assert.Equal(t, 4, s.NumFaces())
		}
		assert.Equal(t, []int{0, 1, 2, 3}, outer[0].Elements)
		assert.Equal(t, []int{4, 5, 6, 7}, outer[1].Elements)
		// Larger merge angle takes the whole outer side
		wide := opts
		wide.MergeAngle = 40
		surfaces, err = ExtractSurfaces(m, wide)
		require.NoError(t, err)
		assert.Equal(t, 6, len(surfaces))
	}
	{ // Test whole block skin without segmentation
		whole := opts
		whole.Segment = false
		m := NewTwoCubeMesh(0.001, 2)
		surfaces, err := ExtractSurfaces(m, whole)
		require.NoError(t, err)
		require.Equal(t, 2, len(surfaces))
		assert.Equal(t, "Block_1", surfaces[0].Name)
		assert.Equal(t, SurfaceID{Block: 2, Patch: 0}, surfaces[1].ID)
		assert.Equal(t, 24, surfaces[1].NumFaces())
		assert.Equal(t, 26, surfaces[1].NumNodes())
		assert.True(t, surfaces[0].IsClosed())
		assert.InDelta(t, 6, surfaces[0].TotalArea(), 1e-12)
		// Coordinates are shared with the mesh
		assert.Same(t, &m.Vertices[0], &surfaces[0].Coords[0])
		for f := 0; f < surfaces[1].NumFaces(); f++ {
			assert.Equal(t, m.Elements[surfaces[1].Elements[f]].Face(surfaces[1].LocalFaces[f]),
				surfaces[1].GlobalFace(f))
		}
		bb := surfaces[1].BoundingBox()
		assert.InDelta(t, 1.001, bb.XMin.X, 1e-12)
		assert.InDelta(t, 2.001, bb.XMax.X, 1e-12)
		avg := surfaces[0].AverageNormal()
		assert.InDelta(t, 0, r3.Norm(avg), 1e-12)
	}
	{ // Test degenerate face joins a neighboring patch and is counted
		m := NewSingleHexMesh()
		for i := 4; i < 8; i++ {
			m.Vertices[i] = r3.Vec{X: 0.5, Y: 0.5, Z: 1}
		}
		surfaces, err := ExtractSurfaces(m, opts)
		require.NoError(t, err)
		assert.Equal(t, 5, len(surfaces))
		var faces, degenerate int
		for _, s := range surfaces {
			faces += s.NumFaces()
			degenerate += s.NumDegenerate()
		}
		assert.Equal(t, 6, faces)
		assert.Equal(t, 1, degenerate)
		// The front face seeds the patch that picks up the collapsed top
		assert.Equal(t, []int{1, 2}, surfaces[1].LocalFaces)
		assert.Equal(t, 0., surfaces[1].Areas[0])
	}
	{ // Test results do not depend on the number of workers
		m := NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{6, 6, 6}, "Box", 1)
		serial := opts
		serial.NumWorkers = 1
		parallel := opts
		parallel.NumWorkers = 5
		parallel.ParallelThreshold = 1
		s1, err := ExtractSurfaces(m, serial)
		require.NoError(t, err)
		s2, err := ExtractSurfaces(m, parallel)
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
	}
	{ // Test closed manifold yields no surfaces
		surfaces, err := ExtractSurfaces(NewPeriodicHexMesh(4), opts)
		require.NoError(t, err)
		assert.Equal(t, 0, len(surfaces))
	}
}

func TestSegmentDegenerateOnly(t *testing.T) {
	// Faces 0-1 degenerate and joined, face 2 degenerate and isolated, face 3 regular
	var (
		nbrs = [][]int{{1}, {0}, {}, {}}
		geom = &faceGeometry{
			normals:    []r3.Vec{{}, {}, {}, {Z: 1}},
			degenerate: []bool{true, true, true, false},
		}
	)
	patchOf, numPatches := segment(nbrs, geom, 10)
	assert.Equal(t, 3, numPatches)
	assert.Equal(t, []int{1, 1, 2, 0}, patchOf)
}

func TestFindSurface(t *testing.T) {
	surfaces, err := ExtractSurfaces(NewTwoCubeMesh(0.001, 1), DefaultSurfaceOptions())
	require.NoError(t, err)
	s, found := FindSurface(surfaces, "Block_2:patch_6")
	require.True(t, found)
	assert.Equal(t, SurfaceID{Block: 2, Patch: 6}, s.ID)
	assert.Equal(t, 5, s.LocalFaces[0]) // left face
	_, found = FindSurface(surfaces, "Block_3")
	assert.False(t, found)
}
