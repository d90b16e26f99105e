package contact

import (
	"fmt"
	"log"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/geometry3D"
	"github.com/notargets/gocontact/mesh"
	"github.com/notargets/gocontact/spatial"
	"github.com/notargets/gocontact/utils"
)

const (
	DefaultDetectorThreshold = 1000 // faces on the master side, below this the search runs on one go routine
	DefaultInsideTolerance   = 1e-6 // barycentric slack for the projected point
)

type MatchPolicy uint8

const (
	// OneWay keeps the best slave face for every master face
	OneWay MatchPolicy = iota
	// Symmetric keeps pairs that are the best match in both directions
	Symmetric
)

func (p MatchPolicy) String() string {
	return [...]string{"one-way", "symmetric"}[p]
}

func ParsePolicy(s string) (p MatchPolicy, err error) {
	switch strings.ToLower(s) {
	case "one-way", "oneway", "":
		return OneWay, nil
	case "symmetric":
		return Symmetric, nil
	}
	return OneWay, fmt.Errorf("unknown match policy %q", s)
}

type DetectorOptions struct {
	NumWorkers        int // zero means one per CPU
	ParallelThreshold int
	InsideTolerance   float64
	Verbose           bool
}

func DefaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		ParallelThreshold: DefaultDetectorThreshold,
		InsideTolerance:   DefaultInsideTolerance,
	}
}

type Detector struct {
	criteria Criteria
	opts     DetectorOptions
}

func NewDetector(criteria Criteria, opts DetectorOptions) (d *Detector, err error) {
	if err = criteria.Validate(); err != nil {
		return
	}
	if opts.InsideTolerance < 0 || math.IsNaN(opts.InsideTolerance) {
		return nil, fmt.Errorf("inside tolerance must be non-negative, have %g", opts.InsideTolerance)
	}
	d = &Detector{criteria: criteria, opts: opts}
	return
}

func (d *Detector) Criteria() Criteria { return d.criteria }

// ContactPair matches face FaceA of the master surface to face FaceB of the
// slave. ContactPoint is the master centroid projected onto the slave face.
type ContactPair struct {
	FaceA        int
	FaceB        int
	Distance     float64
	NormalAngle  float64
	ContactPoint r3.Vec
}

type Results struct {
	SurfaceA  string
	SurfaceB  string
	Criteria  Criteria
	Policy    MatchPolicy
	Pairs     []ContactPair // ordered by FaceA
	UnpairedA []int
	UnpairedB []int
	// Degenerate faces are skipped on A and left out of the index on B
	DegenerateA int
	DegenerateB int
}

func (r *Results) NumPairs() int { return len(r.Pairs) }

// NewSurfaceIndex indexes the centroids of the non-degenerate faces of s
func NewSurfaceIndex(s *mesh.SurfaceMesh) *spatial.Index {
	var (
		centroids = make([]r3.Vec, 0, s.NumFaces())
		ids       = make([]int, 0, s.NumFaces())
	)
	for f, c := range s.Centroids {
		if s.Degenerate[f] {
			continue
		}
		centroids = append(centroids, c)
		ids = append(ids, f)
	}
	return spatial.New(centroids, ids)
}

// Run dispatches on policy. indexA is only used by the symmetric search.
func (d *Detector) Run(policy MatchPolicy, a, b *mesh.SurfaceMesh, indexA, indexB *spatial.Index) *Results {
	if policy == Symmetric {
		return d.DetectSymmetric(a, b, indexA, indexB)
	}
	return d.Detect(a, b, indexB)
}

// Detect finds, for every face of master surface a, the best face of slave
// surface b, searching b through indexB
func (d *Detector) Detect(a, b *mesh.SurfaceMesh, indexB *spatial.Index) (res *Results) {
	var (
		nf      = a.NumFaces()
		matches = make([]ContactPair, nf)
		found   = make([]bool, nf)
		hB      = b.MaxCharacteristicLength()
	)
	if d.opts.Verbose {
		log.Printf("Detecting contact: %s (%d faces) -> %s (%d faces)\n",
			a.Name, nf, b.Name, b.NumFaces())
	}
	utils.ParallelFor(nf, d.opts.ParallelThreshold, d.opts.NumWorkers, func(_, kMin, kMax int) {
		for f := kMin; f < kMax; f++ {
			if a.Degenerate[f] {
				continue
			}
			matches[f], found[f] = d.bestMatch(a, b, f, hB, indexB)
		}
	})
	res = &Results{
		SurfaceA:    a.Name,
		SurfaceB:    b.Name,
		Criteria:    d.criteria,
		Policy:      OneWay,
		DegenerateA: a.NumDegenerate(),
		DegenerateB: b.NumDegenerate(),
	}
	for f := 0; f < nf; f++ {
		if found[f] {
			res.Pairs = append(res.Pairs, matches[f])
		}
	}
	res.fillUnpaired(nf, b.NumFaces())
	if d.opts.Verbose {
		log.Printf("Found %d contact pairs, %d faces of %s unpaired\n", len(res.Pairs), len(res.UnpairedA), a.Name)
	}
	return
}

func (d *Detector) bestMatch(a, b *mesh.SurfaceMesh, f int, hB float64, indexB *spatial.Index) (best ContactPair, found bool) {
	var (
		c      = d.criteria
		C      = a.Centroids[f]
		N      = a.Normals[f]
		radius = c.SearchRadiusMultiplier*math.Max(geometry3D.CharacteristicLength(a.Areas[f]), hB) +
			c.MaxGapDistance
	)
	for g := range indexB.QueryRadius(C, radius) {
		var (
			Ng = b.Normals[g]
			P  = geometry3D.ProjectPointToPlane(C, b.Centroids[g], Ng)
		)
		if !geometry3D.PointInQuad(P, b.FaceCoordinates(g), d.opts.InsideTolerance) {
			continue
		}
		dist := r3.Dot(r3.Sub(P, C), N)
		if !c.InRange(dist) {
			continue
		}
		angle := geometry3D.AngleBetween(N, Ng)
		if !c.AngleValid(angle) {
			continue
		}
		if found {
			da, db := math.Abs(dist), math.Abs(best.Distance)
			if da > db || (da == db && g > best.FaceB) {
				continue
			}
		}
		best = ContactPair{FaceA: f, FaceB: g, Distance: dist, NormalAngle: angle, ContactPoint: P}
		found = true
	}
	return
}

// DetectSymmetric keeps the A to B pairs whose B face picks the same A face
// when searched from B
func (d *Detector) DetectSymmetric(a, b *mesh.SurfaceMesh, indexA, indexB *spatial.Index) (res *Results) {
	var (
		ab   = d.Detect(a, b, indexB)
		ba   = d.Detect(b, a, indexA)
		back = make(map[int]int, len(ba.Pairs))
	)
	for _, p := range ba.Pairs {
		back[p.FaceA] = p.FaceB
	}
	res = &Results{
		SurfaceA:    ab.SurfaceA,
		SurfaceB:    ab.SurfaceB,
		Criteria:    ab.Criteria,
		Policy:      Symmetric,
		DegenerateA: ab.DegenerateA,
		DegenerateB: ab.DegenerateB,
	}
	for _, p := range ab.Pairs {
		if f, ok := back[p.FaceB]; ok && f == p.FaceA {
			res.Pairs = append(res.Pairs, p)
		}
	}
	res.fillUnpaired(a.NumFaces(), b.NumFaces())
	return
}

func (r *Results) fillUnpaired(nfA, nfB int) {
	var (
		pairedA = make([]bool, nfA)
		pairedB = make([]bool, nfB)
	)
	for _, p := range r.Pairs {
		pairedA[p.FaceA] = true
		pairedB[p.FaceB] = true
	}
	r.UnpairedA, r.UnpairedB = nil, nil
	for f, paired := range pairedA {
		if !paired {
			r.UnpairedA = append(r.UnpairedA, f)
		}
	}
	for g, paired := range pairedB {
		if !paired {
			r.UnpairedB = append(r.UnpairedB, g)
		}
	}
}
