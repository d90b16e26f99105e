package mesh

import (
	"log"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/geometry3D"
	"github.com/notargets/gocontact/types"
	"github.com/notargets/gocontact/utils"
)

const (
	DefaultMergeAngle        = 10.0 // degrees
	DefaultGeometryThreshold = 5000 // faces, below this geometry runs on one go routine
)

type SurfaceOptions struct {
	Segment           bool    // split each block skin into coplanar patches
	MergeAngle        float64 // degrees, a face joins a patch when within this angle of the seed normal
	ParallelThreshold int
	NumWorkers        int // zero means one per CPU
	Verbose           bool
}

func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{
		Segment:           true,
		MergeAngle:        DefaultMergeAngle,
		ParallelThreshold: DefaultGeometryThreshold,
	}
}

type faceGeometry struct {
	normals, centroids []r3.Vec
	areas              []float64
	degenerate         []bool
}

func computeFaceGeometry(m *Mesh, faces []BoundaryFace, opts SurfaceOptions) (geom *faceGeometry) {
	var (
		nf = len(faces)
	)
	geom = &faceGeometry{
		normals:    make([]r3.Vec, nf),
		centroids:  make([]r3.Vec, nf),
		areas:      make([]float64, nf),
		degenerate: make([]bool, nf),
	}
	utils.ParallelFor(nf, opts.ParallelThreshold, opts.NumWorkers, func(_, kMin, kMax int) {
		for f := kMin; f < kMax; f++ {
			p := m.FaceCoordinates(faces[f].Nodes)
			n, ok := geometry3D.FaceNormal(p)
			geom.normals[f] = n
			geom.degenerate[f] = !ok
			geom.centroids[f] = geometry3D.FaceCentroid(p)
			geom.areas[f] = geometry3D.FaceArea(p)
		}
	})
	return
}

// EdgeNeighbors finds, for each face, the faces sharing an edge with it.
// Shared node counts come from the face to node incidence matrix times its
// transpose, pairs sharing two nodes are then checked for a common edge.
func EdgeNeighbors(faces []QuadFace) (nbrs [][]int) {
	var (
		nf        = len(faces)
		localNode = make(map[int]int)
	)
	nbrs = make([][]int, nf)
	if nf == 0 {
		return
	}
	for _, q := range faces {
		for _, n := range q {
			if _, ok := localNode[n]; !ok {
				localNode[n] = len(localNode)
			}
		}
	}
	SpFToV_Tmp := sparse.NewDOK(nf, len(localNode))
	for f, q := range faces {
		for _, n := range q {
			SpFToV_Tmp.Set(f, localNode[n], 1)
		}
	}
	SpFToV := SpFToV_Tmp.ToCSR()
	SpFToF := sparse.NewCSR(nf, nf, nil, nil, nil)
	SpFToF.Mul(SpFToV, SpFToV.T())
	SpFToF.DoNonZero(func(i, j int, v float64) {
		if i == j || v < 2 {
			return
		}
		if _, found := types.SharedEdge(faces[i], faces[j]); found {
			nbrs[i] = append(nbrs[i], j)
		}
	})
	for f := range nbrs {
		sort.Ints(nbrs[f])
	}
	return
}

// segment labels faces with patch numbers starting at zero. Patches grow
// breadth first from seeds taken in face order, a neighbor joins when its
// normal is within mergeAngle of the seed's. Degenerate faces join without
// the test and never seed while a non-degenerate face is unassigned.
func segment(nbrs [][]int, geom *faceGeometry, mergeAngle float64) (patchOf []int, numPatches int) {
	var (
		nf    = len(nbrs)
		queue []int
	)
	patchOf = make([]int, nf)
	for f := range patchOf {
		patchOf[f] = -1
	}
	grow := func(seed int, admit func(f int) bool) {
		patchOf[seed] = numPatches
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			for _, g := range nbrs[f] {
				if patchOf[g] != -1 || !admit(g) {
					continue
				}
				patchOf[g] = numPatches
				queue = append(queue, g)
			}
		}
		numPatches++
	}
	for seed := 0; seed < nf; seed++ {
		if patchOf[seed] != -1 || geom.degenerate[seed] {
			continue
		}
		seedNormal := geom.normals[seed]
		grow(seed, func(g int) bool {
			return geom.degenerate[g] ||
				geometry3D.AngleBetween(seedNormal, geom.normals[g]) <= mergeAngle
		})
	}
	for seed := 0; seed < nf; seed++ {
		if patchOf[seed] != -1 {
			continue
		}
		grow(seed, func(g int) bool { return geom.degenerate[g] })
	}
	return
}

// SegmentPatches splits the boundary faces of one block into coplanar patches
func SegmentPatches(m *Mesh, blk *ElementBlock, faces []BoundaryFace, opts SurfaceOptions) (patches []*SurfaceMesh) {
	if len(faces) == 0 {
		return
	}
	var (
		geom  = computeFaceGeometry(m, faces, opts)
		quads = make([]QuadFace, len(faces))
	)
	for f, bf := range faces {
		quads[f] = bf.Nodes
	}
	patchOf, numPatches := segment(EdgeNeighbors(quads), geom, opts.MergeAngle)
	members := make([][]int, numPatches)
	for f, p := range patchOf {
		members[p] = append(members[p], f)
	}
	patches = make([]*SurfaceMesh, numPatches)
	for p, sel := range members {
		patches[p] = newSurfaceMesh(m, blk, p+1, faces, geom, sel)
	}
	if opts.Verbose {
		log.Printf("Block '%s': %d boundary faces in %d patches\n", blk.Name, len(faces), numPatches)
	}
	return
}

// BlockSurface keeps the whole skin of a block as one surface
func BlockSurface(m *Mesh, blk *ElementBlock, faces []BoundaryFace, opts SurfaceOptions) (sm *SurfaceMesh) {
	var (
		geom = computeFaceGeometry(m, faces, opts)
		sel  = make([]int, len(faces))
	)
	for f := range sel {
		sel[f] = f
	}
	sm = newSurfaceMesh(m, blk, 0, faces, geom, sel)
	if opts.Verbose {
		log.Printf("Building surface mesh for block '%s' with %d faces\n", blk.Name, len(faces))
	}
	return
}

// ExtractSurfaces skins every block of the mesh, in block order. Blocks
// without boundary faces produce no surface.
func ExtractSurfaces(m *Mesh, opts SurfaceOptions) (surfaces []*SurfaceMesh, err error) {
	var (
		bnd *Boundary
	)
	if bnd, err = ExtractBoundary(m, opts.Verbose); err != nil {
		return
	}
	for b := range m.ElementBlocks {
		var (
			blk   = &m.ElementBlocks[b]
			faces = bnd.Faces[b]
		)
		if len(faces) == 0 {
			continue
		}
		if opts.Segment {
			surfaces = append(surfaces, SegmentPatches(m, blk, faces, opts)...)
		} else {
			surfaces = append(surfaces, BlockSurface(m, blk, faces, opts))
		}
	}
	return
}

// FindSurface looks a surface up by name
func FindSurface(surfaces []*SurfaceMesh, name string) (sm *SurfaceMesh, found bool) {
	for _, s := range surfaces {
		if s.Name == name {
			return s, true
		}
	}
	return
}
