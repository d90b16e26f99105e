package mesh

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// HexElement is an 8 node hexahedron in Exodus ordering: nodes 0-3 are the
// bottom face counter-clockwise seen from above, nodes 4-7 the top face.
type HexElement [8]int

// QuadFace is four node indices in winding order
type QuadFace [4]int

// HexFaces lists the local faces of a hex, each wound so its normal points
// out of a right-handed element: bottom, top, front, right, back, left
var HexFaces = [6][4]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

var HexFaceNames = [6]string{"bottom", "top", "front", "right", "back", "left"}

func (h HexElement) Face(localFace int) (q QuadFace) {
	for i, lv := range HexFaces[localFace] {
		q[i] = h[lv]
	}
	return
}

// Canonical rotates the face so its smallest node is first, then picks the
// direction whose remaining nodes compare smaller. Every rotation and both
// windings of the same four nodes give the same result, including faces with
// a repeated node.
func (q QuadFace) Canonical() (c QuadFace) {
	c = q
	for start := 0; start < 4; start++ {
		fwd := QuadFace{q[start], q[(start+1)%4], q[(start+2)%4], q[(start+3)%4]}
		rev := QuadFace{fwd[0], fwd[3], fwd[2], fwd[1]}
		if fwd.less(c) {
			c = fwd
		}
		if rev.less(c) {
			c = rev
		}
	}
	return
}

func (q QuadFace) less(other QuadFace) bool {
	for i := 0; i < 4; i++ {
		if q[i] != other[i] {
			return q[i] < other[i]
		}
	}
	return false
}

type ElementBlock struct {
	ID       int
	Name     string
	Elements []int
}

// SideSetEntry names one element face, LocalFace indexes HexFaces
type SideSetEntry struct {
	Element   int
	LocalFace int
}

// Mesh is a read-only hexahedral mesh, coordinates are shared with every
// surface extracted from it
type Mesh struct {
	Title         string
	Vertices      []r3.Vec
	Elements      []HexElement
	ElementBlocks []ElementBlock
	NodeSets      map[string][]int
	SideSets      map[string][]SideSetEntry
}

func NewMesh() *Mesh {
	return &Mesh{
		NodeSets: make(map[string][]int),
		SideSets: make(map[string][]SideSetEntry),
	}
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumElements() int { return len(m.Elements) }

func (m *Mesh) FaceCoordinates(q QuadFace) (p [4]r3.Vec) {
	for i, n := range q {
		p[i] = m.Vertices[n]
	}
	return
}

func (m *Mesh) BlockByName(name string) (blk *ElementBlock, found bool) {
	for i := range m.ElementBlocks {
		if m.ElementBlocks[i].Name == name {
			return &m.ElementBlocks[i], true
		}
	}
	return
}

// ElementToBlock maps each element to the position of its block in ElementBlocks
func (m *Mesh) ElementToBlock() (blockOf []int, err error) {
	blockOf = make([]int, len(m.Elements))
	for i := range blockOf {
		blockOf[i] = -1
	}
	for b, blk := range m.ElementBlocks {
		for _, k := range blk.Elements {
			if k < 0 || k >= len(m.Elements) {
				return nil, &TopologyError{Kind: InvalidElementIndex, Elements: []int{k},
					Msg: fmt.Sprintf("block %q references element %d, mesh has %d", blk.Name, k, len(m.Elements))}
			}
			if blockOf[k] != -1 {
				return nil, &TopologyError{Kind: ElementBlockConflict, Elements: []int{k},
					Msg: fmt.Sprintf("element %d is in blocks %q and %q", k,
						m.ElementBlocks[blockOf[k]].Name, blk.Name)}
			}
			blockOf[k] = b
		}
	}
	for k, b := range blockOf {
		if b == -1 {
			return nil, &TopologyError{Kind: ElementBlockConflict, Elements: []int{k},
				Msg: fmt.Sprintf("element %d not found in any block", k)}
		}
	}
	return
}

// Validate checks node references, block membership, side sets and coordinates
func (m *Mesh) Validate() (err error) {
	for i, v := range m.Vertices {
		if math.IsNaN(v.X+v.Y+v.Z) || math.IsInf(v.X+v.Y+v.Z, 0) {
			return fmt.Errorf("node %d has non-finite coordinates %v", i, v)
		}
	}
	for k, elem := range m.Elements {
		for _, n := range elem {
			if n < 0 || n >= len(m.Vertices) {
				return &TopologyError{Kind: InvalidNodeIndex, Elements: []int{k},
					Msg: fmt.Sprintf("element %d references node %d, mesh has %d nodes", k, n, len(m.Vertices))}
			}
		}
	}
	if _, err = m.ElementToBlock(); err != nil {
		return
	}
	for name, nodes := range m.NodeSets {
		for _, n := range nodes {
			if n < 0 || n >= len(m.Vertices) {
				return fmt.Errorf("node set %q references node %d, mesh has %d nodes", name, n, len(m.Vertices))
			}
		}
	}
	for name, entries := range m.SideSets {
		for _, e := range entries {
			if e.Element < 0 || e.Element >= len(m.Elements) || e.LocalFace < 0 || e.LocalFace > 5 {
				return fmt.Errorf("side set %q has invalid entry (element %d, face %d)", name, e.Element, e.LocalFace)
			}
		}
	}
	return
}

func sortedKeys[T any](m map[string]T) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	if m.Title != "" {
		fmt.Printf("  Title: %s\n", m.Title)
	}
	fmt.Printf("  Nodes: %d\n", m.NumVertices())
	fmt.Printf("  Elements: %d\n", m.NumElements())
	fmt.Printf("  Element Blocks: %d\n", len(m.ElementBlocks))
	for _, blk := range m.ElementBlocks {
		fmt.Printf("    [%d] %s: %d elements\n", blk.ID, blk.Name, len(blk.Elements))
	}
	fmt.Printf("  Node Sets: %d\n", len(m.NodeSets))
	for _, name := range sortedKeys(m.NodeSets) {
		fmt.Printf("    %s: %d nodes\n", name, len(m.NodeSets[name]))
	}
	fmt.Printf("  Side Sets: %d\n", len(m.SideSets))
	for _, name := range sortedKeys(m.SideSets) {
		fmt.Printf("    %s: %d faces\n", name, len(m.SideSets[name]))
	}
}
