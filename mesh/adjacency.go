package mesh

import (
	"fmt"
	"log"
)

type FaceOwner struct {
	Element   int
	LocalFace int
}

// FaceAdjacency maps each canonical face key to its owners in element order
type FaceAdjacency map[QuadFace][]FaceOwner

// BuildFaceAdjacency makes one pass over the elements and their six local
// faces. A face owned by more than two elements stops the pass.
func BuildFaceAdjacency(m *Mesh) (adj FaceAdjacency, err error) {
	var (
		nv = len(m.Vertices)
	)
	adj = make(FaceAdjacency, 3*len(m.Elements))
	for k, elem := range m.Elements {
		for _, n := range elem {
			if n < 0 || n >= nv {
				return nil, &TopologyError{Kind: InvalidNodeIndex, Elements: []int{k},
					Msg: fmt.Sprintf("element %d references node %d, mesh has %d nodes", k, n, nv)}
			}
		}
		for lf := 0; lf < 6; lf++ {
			key := elem.Face(lf).Canonical()
			owners := append(adj[key], FaceOwner{Element: k, LocalFace: lf})
			if len(owners) > 2 {
				elems := make([]int, len(owners))
				for i, o := range owners {
					elems[i] = o.Element
				}
				return nil, &TopologyError{Kind: NonManifoldFace, Face: key, Elements: elems}
			}
			adj[key] = owners
		}
	}
	return
}

// Counts returns the number of faces with one owner and with two owners
func (adj FaceAdjacency) Counts() (boundary, interior int) {
	for _, owners := range adj {
		if len(owners) == 1 {
			boundary++
		} else {
			interior++
		}
	}
	return
}

// BoundaryFace is a face with a single owner, Nodes keeps the owner's outward winding
type BoundaryFace struct {
	Nodes     QuadFace
	Element   int
	LocalFace int
}

type Boundary struct {
	Adjacency FaceAdjacency
	// Faces holds the boundary faces of each block, indexed like
	// Mesh.ElementBlocks, in (element, local face) order
	Faces       [][]BoundaryFace
	NumBoundary int
	NumInterior int
}

// ExtractBoundary finds the faces owned by exactly one element and groups
// them by the owner's block
func ExtractBoundary(m *Mesh, verbose bool) (bnd *Boundary, err error) {
	var (
		adj     FaceAdjacency
		blockOf []int
	)
	if adj, err = BuildFaceAdjacency(m); err != nil {
		return
	}
	if blockOf, err = m.ElementToBlock(); err != nil {
		return
	}
	bnd = &Boundary{
		Adjacency: adj,
		Faces:     make([][]BoundaryFace, len(m.ElementBlocks)),
	}
	bnd.NumBoundary, bnd.NumInterior = adj.Counts()
	for k, elem := range m.Elements {
		for lf := 0; lf < 6; lf++ {
			face := elem.Face(lf)
			if len(adj[face.Canonical()]) != 1 {
				continue
			}
			b := blockOf[k]
			bnd.Faces[b] = append(bnd.Faces[b], BoundaryFace{Nodes: face, Element: k, LocalFace: lf})
		}
	}
	if verbose {
		log.Printf("Found %d boundary faces and %d interior faces in %d elements\n",
			bnd.NumBoundary, bnd.NumInterior, len(m.Elements))
	}
	return
}
