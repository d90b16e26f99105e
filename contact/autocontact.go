package contact

import (
	"context"
	"log"
	"math"

	"github.com/notargets/gocontact/geometry3D"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/spatial"
)

type AutoContactOptions struct {
	Policy     MatchPolicy
	MinPairs   int  // results with fewer pairs are dropped
	BroadPhase bool // skip surface pairs whose boxes are out of reach
	Detector   DetectorOptions
}

func DefaultAutoContactOptions() AutoContactOptions {
	return AutoContactOptions{
		MinPairs:   1,
		BroadPhase: true,
		Detector:   DefaultDetectorOptions(),
	}
}

// SurfacePairResult holds the detection result for surfaces I < J of the input
type SurfacePairResult struct {
	I, J    int
	Results *Results
}

// AutoContact searches every pair of surfaces from different blocks. The run
// stops between pairs when ctx is done and returns what it found so far with
// the context error.
func AutoContact(ctx context.Context, surfaces []*mesh.SurfaceMesh, criteria Criteria,
	opts AutoContactOptions) (found []SurfacePairResult, err error) {
	var (
		det     *Detector
		ns      = len(surfaces)
		indices = make([]*spatial.Index, ns)
		boxes   = make([]*geometry3D.BoundingBox, ns)
		reach   = broadPhaseReach(criteria)
	)
	if det, err = NewDetector(criteria, opts.Detector); err != nil {
		return
	}
	index := func(i int) *spatial.Index {
		if indices[i] == nil {
			indices[i] = NewSurfaceIndex(surfaces[i])
		}
		return indices[i]
	}
	for i, s := range surfaces {
		boxes[i] = s.BoundingBox()
	}
	var evaluated, skipped int
	for i := 0; i < ns; i++ {
		for j := i + 1; j < ns; j++ {
			if err = ctx.Err(); err != nil {
				return
			}
			a, b := surfaces[i], surfaces[j]
			if a.ID.Block == b.ID.Block {
				continue
			}
			if boxes[i] == nil || boxes[j] == nil {
				continue
			}
			if opts.BroadPhase && boxes[i].Distance(boxes[j]) > reach {
				skipped++
				continue
			}
			evaluated++
			res := det.Run(opts.Policy, a, b, index(i), index(j))
			if res.NumPairs() < opts.MinPairs || res.NumPairs() == 0 {
				continue
			}
			found = append(found, SurfacePairResult{I: i, J: j, Results: res})
		}
	}
	if opts.Detector.Verbose {
		log.Printf("Auto contact: %d surfaces, %d pairs evaluated, %d skipped by bounding box, %d in contact\n",
			ns, evaluated, skipped, len(found))
	}
	return
}

// broadPhaseReach is the largest box separation that can still hold a pair,
// infinite when the angle tolerance reaches 90 degrees
func broadPhaseReach(c Criteria) float64 {
	if c.MaxNormalAngle >= 90 {
		return math.Inf(1)
	}
	return math.Max(c.MaxGapDistance, c.MaxPenetration)/math.Cos(c.MaxNormalAngle*math.Pi/180) +
		geometry3D.DegenerateTol
}
