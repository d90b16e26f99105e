package contact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gocontact/mesh"
)

type Side uint8

const (
	SideA Side = iota
	SideB
)

type Alignment string

const (
	Opposed Alignment = "opposed"
	Aligned Alignment = "aligned"
	Angled  Alignment = "angled"
)

// SurfaceMetrics summarizes one side of a contact result. Averages are area
// weighted; a face in k pairs gives each of them a weight of area/k.
type SurfaceMetrics struct {
	TotalArea         float64 `json:"total_area"`
	PairedArea        float64 `json:"paired_area"`
	UnpairedArea      float64 `json:"unpaired_area"`
	AvgDistance       float64 `json:"avg_distance"`
	StdDevDistance    float64 `json:"std_dev_distance"`
	MinDistance       float64 `json:"min_distance"`
	MaxDistance       float64 `json:"max_distance"`
	AvgNormalAngle    float64 `json:"avg_normal_angle"`
	StdDevNormalAngle float64 `json:"std_dev_normal_angle"`
	MinNormalAngle    float64 `json:"min_normal_angle"`
	MaxNormalAngle    float64 `json:"max_normal_angle"`
	NumPairs          int     `json:"num_pairs"`
	NumMisses         int     `json:"num_unpaired"`
}

func ComputeSurfaceMetrics(res *Results, s *mesh.SurfaceMesh, side Side) (sm SurfaceMetrics) {
	var (
		nf     = s.NumFaces()
		count  = make([]int, nf)
		face   = func(p ContactPair) int { return p.FaceA }
		np     = len(res.Pairs)
		dist   = make([]float64, np)
		angle  = make([]float64, np)
		weight = make([]float64, np)
	)
	if side == SideB {
		face = func(p ContactPair) int { return p.FaceB }
	}
	sm.TotalArea = s.TotalArea()
	for _, p := range res.Pairs {
		count[face(p)]++
	}
	for f, k := range count {
		if k > 0 {
			sm.PairedArea += s.Areas[f]
		} else {
			sm.NumMisses++
		}
	}
	sm.UnpairedArea = sm.TotalArea - sm.PairedArea
	sm.NumPairs = np
	if np == 0 {
		return
	}
	var wsum float64
	for i, p := range res.Pairs {
		f := face(p)
		dist[i], angle[i] = p.Distance, p.NormalAngle
		weight[i] = s.Areas[f] / float64(count[f])
		wsum += weight[i]
	}
	if wsum == 0 {
		// all paired faces have zero area, fall back to plain averages
		weight = nil
	}
	sm.AvgDistance, sm.StdDevDistance = stat.PopMeanStdDev(dist, weight)
	sm.AvgNormalAngle, sm.StdDevNormalAngle = stat.PopMeanStdDev(angle, weight)
	sm.MinDistance, sm.MaxDistance = floats.Min(dist), floats.Max(dist)
	sm.MinNormalAngle, sm.MaxNormalAngle = floats.Min(angle), floats.Max(angle)
	if math.IsNaN(sm.StdDevDistance) {
		sm.StdDevDistance = 0
	}
	if math.IsNaN(sm.StdDevNormalAngle) {
		sm.StdDevNormalAngle = 0
	}
	return
}

type PairMetrics struct {
	SurfaceA       string
	SurfaceB       string
	NumPairs       int
	MetricsA       SurfaceMetrics
	MetricsB       SurfaceMetrics
	AvgNormalA     r3.Vec
	AvgNormalB     r3.Vec
	NormalAngleAvg float64
	Alignment      Alignment
}

func ComputePairMetrics(res *Results, a, b *mesh.SurfaceMesh) (pm PairMetrics) {
	pm = PairMetrics{
		SurfaceA:   res.SurfaceA,
		SurfaceB:   res.SurfaceB,
		NumPairs:   res.NumPairs(),
		MetricsA:   ComputeSurfaceMetrics(res, a, SideA),
		MetricsB:   ComputeSurfaceMetrics(res, b, SideB),
		AvgNormalA: a.AverageNormal(),
		AvgNormalB: b.AverageNormal(),
	}
	if pm.NumPairs > 0 {
		pm.NormalAngleAvg = pm.MetricsA.AvgNormalAngle
		pm.Alignment = AlignmentOf(pm.NormalAngleAvg)
	}
	return
}

func AlignmentOf(angle float64) Alignment {
	switch {
	case angle > 150:
		return Opposed
	case angle < 30:
		return Aligned
	}
	return Angled
}

func (sm SurfaceMetrics) Print(label string) {
	fmt.Printf("%s\n", label)
	fmt.Printf("\tTotal Area = %8.5g, Paired Area = %8.5g, Unpaired Area = %8.5g\n",
		sm.TotalArea, sm.PairedArea, sm.UnpairedArea)
	fmt.Printf("\tPairs = %d, Unpaired Faces = %d\n", sm.NumPairs, sm.NumMisses)
	if sm.NumPairs == 0 {
		return
	}
	fmt.Printf("\tDistance: avg = %8.5g, std = %8.5g, min = %8.5g, max = %8.5g\n",
		sm.AvgDistance, sm.StdDevDistance, sm.MinDistance, sm.MaxDistance)
	fmt.Printf("\tNormal Angle: avg = %8.5g, std = %8.5g, min = %8.5g, max = %8.5g\n",
		sm.AvgNormalAngle, sm.StdDevNormalAngle, sm.MinNormalAngle, sm.MaxNormalAngle)
}

func (pm PairMetrics) Print() {
	fmt.Printf("Contact %s <-> %s: %d pairs, normals %s (%.2f degrees)\n",
		pm.SurfaceA, pm.SurfaceB, pm.NumPairs, pm.Alignment, pm.NormalAngleAvg)
	pm.MetricsA.Print(pm.SurfaceA)
	pm.MetricsB.Print(pm.SurfaceB)
}
