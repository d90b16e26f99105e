package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/geometry3D"
	"github.com/notargets/gocontact/types"
)

// SurfaceID names a surface by block ID and patch number, Patch is zero for a whole block skin
type SurfaceID struct {
	Block int
	Patch int
}

// SurfaceMesh is a set of boundary faces of one block with per face geometry.
// Faces use local node numbers, NodeIDs maps them back to mesh nodes. Coords
// is the mesh's coordinate slice, shared and never written.
type SurfaceMesh struct {
	ID        SurfaceID
	Name      string
	BlockName string
	NodeIDs   []int
	LocalNode map[int]int
	Coords    []r3.Vec
	Faces     []QuadFace
	// Per face data, indexed like Faces
	Normals    []r3.Vec
	Centroids  []r3.Vec
	Areas      []float64
	Degenerate []bool
	Elements   []int
	LocalFaces []int
}

func SurfaceName(blockName string, patch int) string {
	if patch == 0 {
		return blockName
	}
	return fmt.Sprintf("%s:patch_%d", blockName, patch)
}

// newSurfaceMesh builds a surface from a subset of a block's boundary faces,
// sel lists positions into faces and into the precomputed geometry
func newSurfaceMesh(m *Mesh, blk *ElementBlock, patch int, faces []BoundaryFace,
	geom *faceGeometry, sel []int) (sm *SurfaceMesh) {
	var (
		nf = len(sel)
	)
	sm = &SurfaceMesh{
		ID:         SurfaceID{Block: blk.ID, Patch: patch},
		Name:       SurfaceName(blk.Name, patch),
		BlockName:  blk.Name,
		LocalNode:  make(map[int]int, nf),
		Coords:     m.Vertices,
		Faces:      make([]QuadFace, nf),
		Normals:    make([]r3.Vec, nf),
		Centroids:  make([]r3.Vec, nf),
		Areas:      make([]float64, nf),
		Degenerate: make([]bool, nf),
		Elements:   make([]int, nf),
		LocalFaces: make([]int, nf),
	}
	for i, f := range sel {
		bf := faces[f]
		for j, n := range bf.Nodes {
			ln, ok := sm.LocalNode[n]
			if !ok {
				ln = len(sm.NodeIDs)
				sm.LocalNode[n] = ln
				sm.NodeIDs = append(sm.NodeIDs, n)
			}
			sm.Faces[i][j] = ln
		}
		sm.Normals[i] = geom.normals[f]
		sm.Centroids[i] = geom.centroids[f]
		sm.Areas[i] = geom.areas[f]
		sm.Degenerate[i] = geom.degenerate[f]
		sm.Elements[i] = bf.Element
		sm.LocalFaces[i] = bf.LocalFace
	}
	return
}

func (sm *SurfaceMesh) NumFaces() int { return len(sm.Faces) }
func (sm *SurfaceMesh) NumNodes() int { return len(sm.NodeIDs) }

func (sm *SurfaceMesh) NumDegenerate() (n int) {
	for _, d := range sm.Degenerate {
		if d {
			n++
		}
	}
	return
}

func (sm *SurfaceMesh) TotalArea() (area float64) {
	for _, a := range sm.Areas {
		area += a
	}
	return
}

// GlobalFace returns face f in mesh node numbers
func (sm *SurfaceMesh) GlobalFace(f int) (q QuadFace) {
	for i, ln := range sm.Faces[f] {
		q[i] = sm.NodeIDs[ln]
	}
	return
}

func (sm *SurfaceMesh) FaceCoordinates(f int) (p [4]r3.Vec) {
	for i, ln := range sm.Faces[f] {
		p[i] = sm.Coords[sm.NodeIDs[ln]]
	}
	return
}

// MaxCharacteristicLength is the largest sqrt(area) over the surface faces
func (sm *SurfaceMesh) MaxCharacteristicLength() (h float64) {
	for _, a := range sm.Areas {
		if l := geometry3D.CharacteristicLength(a); l > h {
			h = l
		}
	}
	return
}

// AverageNormal is the area weighted mean normal, zero for an empty surface
func (sm *SurfaceMesh) AverageNormal() (avg r3.Vec) {
	for f, n := range sm.Normals {
		avg = r3.Add(avg, r3.Scale(sm.Areas[f], n))
	}
	if r3.Norm(avg) > geometry3D.DegenerateTol {
		avg = r3.Unit(avg)
	}
	return
}

func (sm *SurfaceMesh) BoundingBox() *geometry3D.BoundingBox {
	pts := make([]r3.Vec, len(sm.NodeIDs))
	for i, n := range sm.NodeIDs {
		pts[i] = sm.Coords[n]
	}
	return geometry3D.NewBoundingBox(pts)
}

// IsClosed reports whether every surface edge is shared by exactly two faces
func (sm *SurfaceMesh) IsClosed() bool {
	if len(sm.Faces) == 0 {
		return false
	}
	edgeCount := make(map[types.EdgeKey]int, 2*len(sm.Faces))
	for _, q := range sm.Faces {
		for _, ek := range types.QuadEdges(q) {
			edgeCount[ek]++
		}
	}
	for _, count := range edgeCount {
		if count != 2 {
			return false
		}
	}
	return true
}
