package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/contact"
	"github.com/notargets/gocontact/mesh"
)

const SideSetPrefix = "auto_contact_"

type SurfaceInfo struct {
	Name          string     `json:"name"`
	SideSetName   string     `json:"sideset_name"`
	BlockID       int        `json:"block_id"`
	PatchID       *int       `json:"patch_id,omitempty"`
	TotalFaces    int        `json:"total_faces"`
	PairedFaces   int        `json:"paired_faces"`
	UnpairedFaces int        `json:"unpaired_faces"`
	TotalArea     float64    `json:"total_area"`
	PairedArea    float64    `json:"paired_area"`
	AvgNormal     [3]float64 `json:"avg_normal"`
}

type ContactStatistics struct {
	NumPairs          int               `json:"num_pairs"`
	AvgDistance       float64           `json:"avg_distance"`
	MinDistance       float64           `json:"min_distance"`
	MaxDistance       float64           `json:"max_distance"`
	StdDevDistance    float64           `json:"std_dev_distance"`
	AvgNormalAngle    float64           `json:"avg_normal_angle"`
	StdDevNormalAngle float64           `json:"std_dev_normal_angle"`
	NormalAlignment   contact.Alignment `json:"normal_alignment,omitempty"`
}

type ContactPairEntry struct {
	PairID     int               `json:"pair_id"`
	SurfaceA   SurfaceInfo       `json:"surface_a"`
	SurfaceB   SurfaceInfo       `json:"surface_b"`
	Statistics ContactStatistics `json:"contact_statistics"`
}

// ContactReport lists the significant contact pairs found in one mesh
type ContactReport struct {
	MeshFile     string             `json:"mesh_file"`
	Timestamp    string             `json:"timestamp"`
	Criteria     contact.Criteria   `json:"detection_criteria"`
	Policy       string             `json:"policy"`
	MinPairs     int                `json:"min_pairs"`
	ContactPairs []ContactPairEntry `json:"contact_pairs"`
}

func NewContactReport(meshFile string, criteria contact.Criteria, policy contact.MatchPolicy, minPairs int) *ContactReport {
	return &ContactReport{
		MeshFile:     meshFile,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Criteria:     criteria,
		Policy:       policy.String(),
		MinPairs:     minPairs,
		ContactPairs: []ContactPairEntry{},
	}
}

// AddContactPair appends a pair with ID one past the last entry
func (cr *ContactReport) AddContactPair(a, b *mesh.SurfaceMesh, res *contact.Results) (entry ContactPairEntry) {
	pm := contact.ComputePairMetrics(res, a, b)
	entry = ContactPairEntry{
		PairID:   len(cr.ContactPairs) + 1,
		SurfaceA: surfaceInfo(a, pm.MetricsA, pm.AvgNormalA),
		SurfaceB: surfaceInfo(b, pm.MetricsB, pm.AvgNormalB),
		Statistics: ContactStatistics{
			NumPairs:          pm.NumPairs,
			AvgDistance:       pm.MetricsA.AvgDistance,
			MinDistance:       pm.MetricsA.MinDistance,
			MaxDistance:       pm.MetricsA.MaxDistance,
			StdDevDistance:    pm.MetricsA.StdDevDistance,
			AvgNormalAngle:    pm.MetricsA.AvgNormalAngle,
			StdDevNormalAngle: pm.MetricsA.StdDevNormalAngle,
			NormalAlignment:   pm.Alignment,
		},
	}
	cr.ContactPairs = append(cr.ContactPairs, entry)
	return
}

func surfaceInfo(s *mesh.SurfaceMesh, sm contact.SurfaceMetrics, avgNormal r3.Vec) (si SurfaceInfo) {
	si = SurfaceInfo{
		Name:          s.Name,
		SideSetName:   SideSetName(s.Name),
		BlockID:       s.ID.Block,
		TotalFaces:    s.NumFaces(),
		PairedFaces:   s.NumFaces() - sm.NumMisses,
		UnpairedFaces: sm.NumMisses,
		TotalArea:     sm.TotalArea,
		PairedArea:    sm.PairedArea,
		AvgNormal:     [3]float64{avgNormal.X, avgNormal.Y, avgNormal.Z},
	}
	if s.ID.Patch != 0 {
		patch := s.ID.Patch
		si.PatchID = &patch
	}
	return
}

// SideSetName is the suggested side set for a surface, every character other
// than a letter, digit or underscore becomes an underscore
func SideSetName(surfaceName string) string {
	return SideSetPrefix + Sanitize(surfaceName)
}

func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
}

// PairFileName is the report file name for a named pair analysis
func PairFileName(surfaceA, surfaceB string) string {
	return fmt.Sprintf("contact_%s_%s.yaml", Sanitize(surfaceA), Sanitize(surfaceB))
}

func (cr *ContactReport) Write(fileName string) error {
	return writeYAML(fileName, cr)
}

func (cr *ContactReport) PrintSummary() {
	fmt.Printf("Mesh: %s\n", cr.MeshFile)
	fmt.Printf("Contact pairs found: %d (policy %s, min pairs %d)\n", len(cr.ContactPairs), cr.Policy, cr.MinPairs)
	for _, e := range cr.ContactPairs {
		fmt.Printf("[%3d] %s <-> %s: %d pairs, avg distance %8.5g, %s\n",
			e.PairID, e.SurfaceA.Name, e.SurfaceB.Name, e.Statistics.NumPairs,
			e.Statistics.AvgDistance, e.Statistics.NormalAlignment)
	}
}

func writeYAML(fileName string, v interface{}) (err error) {
	var data []byte
	if data, err = yaml.Marshal(v); err != nil {
		return
	}
	if dir := filepath.Dir(fileName); dir != "." {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return
		}
	}
	return os.WriteFile(fileName, data, 0644)
}

func readYAML(fileName string, v interface{}) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	return yaml.Unmarshal(data, v)
}

func ReadContactReport(fileName string) (cr *ContactReport, err error) {
	cr = &ContactReport{}
	if err = readYAML(fileName, cr); err != nil {
		return nil, fmt.Errorf("unable to read contact report %s: %w", fileName, err)
	}
	return
}
