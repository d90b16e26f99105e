package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocontact/contact"
)

var analysisYAML = `
input_file: cubes.json
output_dir: results
default_criteria:
  max_gap_distance: 0.01
  max_penetration: 0.002
  max_normal_angle: 30
  search_radius_multiplier: 3
contact_pairs:
  - surface_a: Block_1
    surface_b: Block_2
  - surface_a: Block_1:patch_2
    surface_b: Block_2:patch_5
    output_file: faces.yaml
    criteria:
      max_gap_distance: 0.1
      max_penetration: 0
      max_normal_angle: 10
      search_radius_multiplier: 1
`

func TestAnalysisParameters(t *testing.T) {
	{ // Test parsing with per pair overrides
		ap := NewAnalysisParameters()
		require.NoError(t, ap.Parse([]byte(analysisYAML)))
		require.NoError(t, ap.Validate())
		assert.Equal(t, "cubes.json", ap.InputFile)
		assert.Equal(t, "results", ap.OutputDir)
		require.Equal(t, 2, len(ap.ContactPairs))
		assert.Equal(t, contact.Criteria{MaxGapDistance: 0.01, MaxPenetration: 0.002,
			MaxNormalAngle: 30, SearchRadiusMultiplier: 3}, ap.PairCriteria(0))
		assert.Equal(t, 0.1, ap.PairCriteria(1).MaxGapDistance)
		assert.Equal(t, "faces.yaml", ap.ContactPairs[1].OutputFile)
		assert.Equal(t, "Block_1:patch_2", ap.ContactPairs[1].SurfaceA)
	}
	{ // Test omitted criteria keep the defaults
		ap := NewAnalysisParameters()
		require.NoError(t, ap.Parse([]byte("input_file: a.neu\ncontact_pairs: [{surface_a: A, surface_b: B}]\n")))
		assert.Equal(t, contact.DefaultCriteria(), ap.DefaultCriteria)
		assert.Equal(t, ".", ap.OutputDir)
		assert.NoError(t, ap.Validate())
	}
	{ // Test validation failures
		ap := NewAnalysisParameters()
		assert.ErrorContains(t, ap.Validate(), "missing input file")
		ap.InputFile = "a.neu"
		assert.ErrorContains(t, ap.Validate(), "no contact pairs")
		ap.ContactPairs = []PairParameters{{SurfaceA: "A", SurfaceB: "A"}}
		assert.ErrorContains(t, ap.Validate(), "paired with itself")
		ap.ContactPairs = []PairParameters{{SurfaceA: "A", SurfaceB: "B", Criteria: &contact.Criteria{}}}
		assert.ErrorIs(t, ap.Validate(), contact.ErrInvalidCriteria)
	}
	{ // Test reading from a file
		fileName := filepath.Join(t.TempDir(), "analysis.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte(analysisYAML), 0644))
		ap, err := ReadAnalysisParameters(fileName)
		require.NoError(t, err)
		assert.Equal(t, 2, len(ap.ContactPairs))
		_, err = ReadAnalysisParameters(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	}
}

func TestParsePairsString(t *testing.T) {
	pp, err := ParsePairsString("Block1:Block2, Block3:Block4")
	require.NoError(t, err)
	assert.Equal(t, []PairParameters{
		{SurfaceA: "Block1", SurfaceB: "Block2"},
		{SurfaceA: "Block3", SurfaceB: "Block4"},
	}, pp)
	pp, err = ParsePairsString("Block_1:patch_2:Block_2:patch_1")
	require.NoError(t, err)
	assert.Equal(t, []PairParameters{{SurfaceA: "Block_1:patch_2", SurfaceB: "Block_2:patch_1"}}, pp)
	_, err = ParsePairsString("Block1")
	assert.ErrorContains(t, err, "invalid pair format")
	_, err = ParsePairsString("Block1:")
	assert.Error(t, err)
}
