package report

import (
	"fmt"
	"time"

	"github.com/notargets/gocontact/mesh"
)

type SkinSurface struct {
	Name          string     `json:"name"`
	BlockName     string     `json:"block_name"`
	BlockID       int        `json:"block_id"`
	PatchID       int        `json:"patch_id"`
	NumFaces      int        `json:"num_faces"`
	NumNodes      int        `json:"num_nodes"`
	NumDegenerate int        `json:"num_degenerate,omitempty"`
	TotalArea     float64    `json:"total_area"`
	AvgNormal     [3]float64 `json:"avg_normal"`
	Closed        bool       `json:"closed"`
}

// SkinReport summarizes the surfaces extracted from a mesh
type SkinReport struct {
	MeshFile   string        `json:"mesh_file"`
	Timestamp  string        `json:"timestamp"`
	Segmented  bool          `json:"segmented"`
	MergeAngle float64       `json:"merge_angle,omitempty"`
	Surfaces   []SkinSurface `json:"surfaces"`
}

func NewSkinReport(meshFile string, surfaces []*mesh.SurfaceMesh, opts mesh.SurfaceOptions) (sr *SkinReport) {
	sr = &SkinReport{
		MeshFile:  meshFile,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Segmented: opts.Segment,
		Surfaces:  make([]SkinSurface, len(surfaces)),
	}
	if opts.Segment {
		sr.MergeAngle = opts.MergeAngle
	}
	for i, s := range surfaces {
		n := s.AverageNormal()
		sr.Surfaces[i] = SkinSurface{
			Name:          s.Name,
			BlockName:     s.BlockName,
			BlockID:       s.ID.Block,
			PatchID:       s.ID.Patch,
			NumFaces:      s.NumFaces(),
			NumNodes:      s.NumNodes(),
			NumDegenerate: s.NumDegenerate(),
			TotalArea:     s.TotalArea(),
			AvgNormal:     [3]float64{n.X, n.Y, n.Z},
			Closed:        s.IsClosed(),
		}
	}
	return
}

func (sr *SkinReport) Write(fileName string) error {
	return writeYAML(fileName, sr)
}

func (sr *SkinReport) PrintSummary() {
	fmt.Printf("Mesh: %s, %d surfaces\n", sr.MeshFile, len(sr.Surfaces))
	for _, s := range sr.Surfaces {
		closed := ""
		if s.Closed {
			closed = ", closed"
		}
		fmt.Printf("%-24s faces = %6d, area = %10.5g, normal = [%6.3f,%6.3f,%6.3f]%s\n",
			s.Name, s.NumFaces, s.TotalArea, s.AvgNormal[0], s.AvgNormal[1], s.AvgNormal[2], closed)
		if s.NumDegenerate != 0 {
			fmt.Printf("%-24s %d degenerate faces\n", "", s.NumDegenerate)
		}
	}
}
