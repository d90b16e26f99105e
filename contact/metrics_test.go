package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/mesh"
)

func TestSurfaceMetrics(t *testing.T) {
	det := newDetector(t, DefaultCriteria(), DefaultDetectorOptions())
	{ // Test equal areas reduce to the arithmetic mean
		a := planarSurface("a", 1, [][4]r3.Vec{
			squareAt(0, 0, 0, 1, true),
			squareAt(2, 0, 0, 1, true),
			squareAt(4, 0, 0, 1, true), // nothing above
		})
		b := planarSurface("b", 2, [][4]r3.Vec{
			squareAt(0, 0, 0.001, 1, false),
			squareAt(2, 0, 0.003, 1, false),
		})
		res := det.Detect(a, b, NewSurfaceIndex(b))
		require.Equal(t, 2, res.NumPairs())
		sm := ComputeSurfaceMetrics(res, a, SideA)
		assert.InDelta(t, 0.002, sm.AvgDistance, 1e-12)
		assert.InDelta(t, 0.001, sm.StdDevDistance, 1e-12)
		assert.InDelta(t, 0.001, sm.MinDistance, 1e-12)
		assert.InDelta(t, 0.003, sm.MaxDistance, 1e-12)
		assert.InDelta(t, 180, sm.AvgNormalAngle, 1e-9)
		assert.InDelta(t, 3, sm.TotalArea, 1e-12)
		assert.InDelta(t, 2, sm.PairedArea, 1e-12)
		assert.InDelta(t, 1, sm.UnpairedArea, 1e-12)
		assert.Equal(t, 2, sm.NumPairs)
		assert.Equal(t, 1, sm.NumMisses)
	}
	{ // Test larger faces weigh more
		a := planarSurface("a", 1, [][4]r3.Vec{
			squareAt(0, 0, 0, 1, true),
			squareAt(2, 0, 0, 2, true),
		})
		b := planarSurface("b", 2, [][4]r3.Vec{
			squareAt(0, 0, 0.001, 1, false),
			squareAt(2, 0, 0.004, 2, false),
		})
		res := det.Detect(a, b, NewSurfaceIndex(b))
		require.Equal(t, 2, res.NumPairs())
		sm := ComputeSurfaceMetrics(res, a, SideA)
		assert.InDelta(t, (0.001+4*0.004)/5, sm.AvgDistance, 1e-12)
	}
	{ // Test a slave face shared by several master faces counts its area once
		a := planarSurface("a", 1, [][4]r3.Vec{
			squareAt(0, 0, 0, 0.5, true),
			squareAt(0.5, 0, 0, 0.5, true),
		})
		b := planarSurface("b", 2, [][4]r3.Vec{squareAt(0, 0, 0.001, 1, false)})
		res := det.Detect(a, b, NewSurfaceIndex(b))
		require.Equal(t, 2, res.NumPairs())
		smB := ComputeSurfaceMetrics(res, b, SideB)
		assert.InDelta(t, 1, smB.PairedArea, 1e-12)
		assert.InDelta(t, 0, smB.UnpairedArea, 1e-12)
		assert.Equal(t, 0, smB.NumMisses)
		assert.Equal(t, 2, smB.NumPairs)
		assert.InDelta(t, 0.001, smB.AvgDistance, 1e-12)
	}
	{ // Test no pairs leaves the statistics at zero
		a := planarSurface("a", 1, [][4]r3.Vec{squareAt(0, 0, 0, 1, true)})
		b := planarSurface("b", 2, [][4]r3.Vec{squareAt(0, 0, 1, 1, false)})
		sm := ComputeSurfaceMetrics(det.Detect(a, b, NewSurfaceIndex(b)), a, SideA)
		assert.Equal(t, SurfaceMetrics{TotalArea: 1, UnpairedArea: 1, NumMisses: 1}, sm)
	}
}

func TestPairMetrics(t *testing.T) {
	a, b := blockSkins(t, 0.001, 2)
	res := newDetector(t, DefaultCriteria(), DefaultDetectorOptions()).Detect(a, b, NewSurfaceIndex(b))
	pm := ComputePairMetrics(res, a, b)
	assert.Equal(t, "Block_1", pm.SurfaceA)
	assert.Equal(t, "Block_2", pm.SurfaceB)
	assert.Equal(t, 4, pm.NumPairs)
	assert.Equal(t, Opposed, pm.Alignment)
	assert.InDelta(t, 1, pm.MetricsA.PairedArea, 1e-12)
	assert.InDelta(t, 1, pm.MetricsB.PairedArea, 1e-12)
	assert.InDelta(t, 6, pm.MetricsA.TotalArea, 1e-12)
	// closed cube skins cancel
	assert.InDelta(t, 0, r3.Norm(pm.AvgNormalA), 1e-12)

	assert.Equal(t, Opposed, AlignmentOf(170))
	assert.Equal(t, Aligned, AlignmentOf(10))
	assert.Equal(t, Angled, AlignmentOf(90))
	assert.Equal(t, Angled, AlignmentOf(150))
}

func TestAutoContact(t *testing.T) {
	surfaces, err := mesh.ExtractSurfaces(mesh.NewTwoCubeMesh(0.001, 2), mesh.DefaultSurfaceOptions())
	require.NoError(t, err)
	require.Equal(t, 12, len(surfaces))
	{ // Test only the facing patches are reported
		c := DefaultCriteria()
		c.MaxGapDistance = 0.01
		found, err := AutoContact(context.Background(), surfaces, c, DefaultAutoContactOptions())
		require.NoError(t, err)
		require.Equal(t, 1, len(found))
		var (
			r    = found[0]
			a, b = surfaces[r.I], surfaces[r.J]
		)
		assert.Less(t, r.I, r.J)
		assert.Equal(t, "Block_1", a.BlockName)
		assert.Equal(t, "Block_2", b.BlockName)
		assert.InDelta(t, 1, a.AverageNormal().X, 1e-12)
		assert.InDelta(t, -1, b.AverageNormal().X, 1e-12)
		assert.Equal(t, 4, r.Results.NumPairs())
		assert.Equal(t, 0, len(r.Results.UnpairedA))
		assert.Equal(t, 0, len(r.Results.UnpairedB))
		for _, p := range r.Results.Pairs {
			assert.InDelta(t, 0.001, p.Distance, 1e-9)
			assert.InDelta(t, 180, p.NormalAngle, 1e-6)
		}
	}
	{ // Test broad phase and symmetric policy do not change the outcome
		opts := DefaultAutoContactOptions()
		opts.BroadPhase = false
		opts.Policy = Symmetric
		found, err := AutoContact(context.Background(), surfaces, DefaultCriteria(), opts)
		require.NoError(t, err)
		require.Equal(t, 1, len(found))
		assert.Equal(t, Symmetric, found[0].Results.Policy)
		assert.Equal(t, 4, found[0].Results.NumPairs())
	}
	{ // Test the minimum pair count filter
		opts := DefaultAutoContactOptions()
		opts.MinPairs = 5
		found, err := AutoContact(context.Background(), surfaces, DefaultCriteria(), opts)
		require.NoError(t, err)
		assert.Equal(t, 0, len(found))
	}
	{ // Test a cancelled run stops with the context error
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		found, err := AutoContact(ctx, surfaces, DefaultCriteria(), DefaultAutoContactOptions())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, len(found))
	}
	{ // Test blocks sharing a name are still paired, they differ by ID
		m := mesh.NewTwoCubeMesh(0.001, 2)
		m.ElementBlocks[1].Name = "steel"
		m.ElementBlocks[0].Name = "steel"
		same, err := mesh.ExtractSurfaces(m, mesh.DefaultSurfaceOptions())
		require.NoError(t, err)
		found, err := AutoContact(context.Background(), same, DefaultCriteria(), DefaultAutoContactOptions())
		require.NoError(t, err)
		require.Equal(t, 1, len(found))
		assert.Equal(t, 1, same[found[0].I].ID.Block)
		assert.Equal(t, 2, same[found[0].J].ID.Block)
		assert.Equal(t, 4, found[0].Results.NumPairs())
	}
	{ // Test invalid criteria
		_, err := AutoContact(context.Background(), surfaces, Criteria{}, DefaultAutoContactOptions())
		assert.ErrorIs(t, err, ErrInvalidCriteria)
	}
	{ // Test broad phase reach
		assert.InDelta(t, 0.005*1.4142135623730951, broadPhaseReach(DefaultCriteria()), 1e-9)
		c := DefaultCriteria()
		c.MaxNormalAngle = 90
		assert.True(t, broadPhaseReach(c) > 1e300)
	}
}

func TestPairMetricsWithoutPairs(t *testing.T) {
	a, b := blockSkins(t, 0.5, 2)
	res := newDetector(t, DefaultCriteria(), DefaultDetectorOptions()).Detect(a, b, NewSurfaceIndex(b))
	pm := ComputePairMetrics(res, a, b)
	assert.Equal(t, 0, pm.NumPairs)
	assert.Equal(t, Alignment(""), pm.Alignment)
	assert.Equal(t, a.NumFaces(), pm.MetricsA.NumMisses)
}
