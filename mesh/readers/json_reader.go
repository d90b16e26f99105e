package readers

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/mesh"
)

// MeshDocument is the JSON / YAML mesh layout. Side set entries are
// (element, local face) pairs with faces numbered like mesh.HexFaces.
type MeshDocument struct {
	Nodes         [][3]float64        `json:"nodes"`
	Elements      [][8]int            `json:"elements"`
	ElementBlocks map[string][]int    `json:"element_blocks,omitempty"`
	NodeSets      map[string][]int    `json:"node_sets,omitempty"`
	SideSets      map[string][][2]int `json:"side_sets,omitempty"`
}

// ParseMeshDocument converts JSON or YAML text to a mesh. Blocks are numbered
// from 1 in name order, a document without blocks gets a single Block_1.
func ParseMeshDocument(data []byte) (msh *mesh.Mesh, err error) {
	var doc MeshDocument
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mesh: %v", err)
	}
	msh = mesh.NewMesh()
	msh.Vertices = make([]r3.Vec, len(doc.Nodes))
	for i, xyz := range doc.Nodes {
		msh.Vertices[i] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	msh.Elements = make([]mesh.HexElement, len(doc.Elements))
	for k, nodes := range doc.Elements {
		msh.Elements[k] = mesh.HexElement(nodes)
	}
	names := make([]string, 0, len(doc.ElementBlocks))
	for name := range doc.ElementBlocks {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		msh.ElementBlocks = append(msh.ElementBlocks,
			mesh.ElementBlock{ID: i + 1, Name: name, Elements: doc.ElementBlocks[name]})
	}
	if len(msh.ElementBlocks) == 0 {
		msh.ElementBlocks = []mesh.ElementBlock{DefaultBlock(len(msh.Elements))}
	}
	for name, nodes := range doc.NodeSets {
		msh.NodeSets[name] = nodes
	}
	for name, entries := range doc.SideSets {
		for _, e := range entries {
			msh.SideSets[name] = append(msh.SideSets[name], mesh.SideSetEntry{Element: e[0], LocalFace: e[1]})
		}
	}
	return
}

func ReadMeshDocument(filename string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseMeshDocument(data)
}

func NewMeshDocument(msh *mesh.Mesh) (doc *MeshDocument) {
	doc = &MeshDocument{
		Nodes:         make([][3]float64, len(msh.Vertices)),
		Elements:      make([][8]int, len(msh.Elements)),
		ElementBlocks: make(map[string][]int, len(msh.ElementBlocks)),
		NodeSets:      msh.NodeSets,
		SideSets:      make(map[string][][2]int, len(msh.SideSets)),
	}
	for i, v := range msh.Vertices {
		doc.Nodes[i] = [3]float64{v.X, v.Y, v.Z}
	}
	for k, elem := range msh.Elements {
		doc.Elements[k] = elem
	}
	for _, blk := range msh.ElementBlocks {
		doc.ElementBlocks[blk.Name] = blk.Elements
	}
	for name, entries := range msh.SideSets {
		for _, e := range entries {
			doc.SideSets[name] = append(doc.SideSets[name], [2]int{e.Element, e.LocalFace})
		}
	}
	return
}

// WriteMeshDocument writes JSON for a .json file name and YAML otherwise
func WriteMeshDocument(msh *mesh.Mesh, filename string) (err error) {
	var (
		doc  = NewMeshDocument(msh)
		data []byte
	)
	if meshExt(filename) == ".json" {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return
	}
	return os.WriteFile(filename, data, 0644)
}
