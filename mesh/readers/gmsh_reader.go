package readers

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gocontact/mesh"
)

// Gmsh element type numbers
const (
	gmshLine       = 1
	gmshTri        = 2
	gmshQuad       = 3
	gmshHex        = 5
	gmshPoint      = 15
	gmshQuad9      = 10
	gmshLine3      = 8
	gmshTri6       = 9
	gmshQuad8      = 16
	gmshTri9       = 20
	gmshTri10      = 21
	gmshLine4      = 26
	gmshSurfaceDim = 2
	gmshVolumeDim  = 3
)

type gmshQuadFace struct {
	tag   int
	nodes mesh.QuadFace
}

type gmshReader struct {
	msh           *mesh.Mesh
	physicalNames map[[2]int]string // (dimension, tag) -> name
	nodeIndex     map[int]int
	blockElems    map[int][]int // physical tag -> elements
	quads         []gmshQuadFace
}

// ReadGmsh22 reads an ASCII Gmsh MSH 2.2 file. Hexahedra are grouped into
// blocks by physical tag, quadrangles with a physical tag become side sets
// on the hex faces they cover.
func ReadGmsh22(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		scanner = bufio.NewScanner(file)
		rd      = &gmshReader{
			msh:           mesh.NewMesh(),
			physicalNames: make(map[[2]int]string),
			nodeIndex:     make(map[int]int),
			blockElems:    make(map[int][]int),
		}
	)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "$MeshFormat":
			if err = rd.readMeshFormat(scanner); err != nil {
				return nil, err
			}
		case "$PhysicalNames":
			if err = rd.readPhysicalNames(scanner); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err = rd.readNodes(scanner); err != nil {
				return nil, err
			}
		case "$Elements":
			if err = rd.readElements(scanner); err != nil {
				return nil, err
			}
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip sections with no mesh topology
				skipTo(scanner, "$End"+line[1:])
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if err = rd.finish(); err != nil {
		return nil, err
	}
	return rd.msh, nil
}

func skipTo(scanner *bufio.Scanner, endMarker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return
		}
	}
}

func (rd *gmshReader) readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	skipTo(scanner, "$EndMeshFormat")
	return nil
}

func (rd *gmshReader) readPhysicalNames(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}
	numNames, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid physical name line: %q", scanner.Text())
		}
		dimension, _ := strconv.Atoi(parts[0])
		tag, _ := strconv.Atoi(parts[1])
		name := strings.Trim(strings.Join(parts[2:], " "), "\"")
		rd.physicalNames[[2]int{dimension, tag}] = name
	}
	skipTo(scanner, "$EndPhysicalNames")
	return nil
}

func (rd *gmshReader) readNodes(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	rd.msh.Vertices = make([]r3.Vec, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		nodeID, _ := strconv.Atoi(parts[0])
		var (
			xyz [3]float64
			err error
		)
		for j := 0; j < 3; j++ {
			if xyz[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return fmt.Errorf("node %d: invalid coordinate %q: %v", nodeID, parts[1+j], err)
			}
		}
		rd.nodeIndex[nodeID] = len(rd.msh.Vertices)
		rd.msh.Vertices = append(rd.msh.Vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	skipTo(scanner, "$EndNodes")
	return nil
}

func (rd *gmshReader) nodes(elemID int, strs []string) (nodes []int, err error) {
	nodes = make([]int, len(strs))
	for i, s := range strs {
		nodeID, _ := strconv.Atoi(s)
		idx, ok := rd.nodeIndex[nodeID]
		if !ok {
			return nil, fmt.Errorf("element %d references unknown node %d", elemID, nodeID)
		}
		nodes[i] = idx
	}
	return
}

func (rd *gmshReader) readElements(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElements, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %q", scanner.Text())
		}
		elemID, _ := strconv.Atoi(parts[0])
		elemType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])
		if len(parts) < 3+numTags {
			return fmt.Errorf("element %d: invalid tags", elemID)
		}
		var physicalTag int
		if numTags > 0 {
			physicalTag, _ = strconv.Atoi(parts[3])
		}
		nodeStrs := parts[3+numTags:]
		switch elemType {
		case gmshHex:
			if len(nodeStrs) < 8 {
				return fmt.Errorf("element %d: expected 8 nodes, got %d", elemID, len(nodeStrs))
			}
			nodes, err := rd.nodes(elemID, nodeStrs[:8])
			if err != nil {
				return err
			}
			var hex mesh.HexElement
			copy(hex[:], nodes)
			rd.blockElems[physicalTag] = append(rd.blockElems[physicalTag], len(rd.msh.Elements))
			rd.msh.Elements = append(rd.msh.Elements, hex)
		case gmshQuad:
			if numTags == 0 || physicalTag == 0 {
				continue
			}
			if len(nodeStrs) < 4 {
				return fmt.Errorf("element %d: expected 4 nodes, got %d", elemID, len(nodeStrs))
			}
			nodes, err := rd.nodes(elemID, nodeStrs[:4])
			if err != nil {
				return err
			}
			var q mesh.QuadFace
			copy(q[:], nodes)
			rd.quads = append(rd.quads, gmshQuadFace{tag: physicalTag, nodes: q})
		case gmshPoint, gmshLine, gmshLine3, gmshLine4, gmshTri, gmshTri6, gmshTri9, gmshTri10,
			gmshQuad8, gmshQuad9:
			// Lower dimensional entities carry no volume
		default:
			return fmt.Errorf("element %d: unsupported element type %d, only 8 node hexahedra are supported",
				elemID, elemType)
		}
	}
	skipTo(scanner, "$EndElements")
	return nil
}

// finish builds blocks in physical tag order and attaches tagged quads to hex faces
func (rd *gmshReader) finish() error {
	var (
		msh  = rd.msh
		tags = make([]int, 0, len(rd.blockElems))
	)
	for tag := range rd.blockElems {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	for _, tag := range tags {
		name, ok := rd.physicalNames[[2]int{gmshVolumeDim, tag}]
		if !ok {
			name = fmt.Sprintf("Block_%d", tag)
		}
		msh.ElementBlocks = append(msh.ElementBlocks, mesh.ElementBlock{ID: tag, Name: name, Elements: rd.blockElems[tag]})
	}
	if len(rd.quads) == 0 {
		return nil
	}
	adj, err := mesh.BuildFaceAdjacency(msh)
	if err != nil {
		return err
	}
	for _, q := range rd.quads {
		owners, ok := adj[q.nodes.Canonical()]
		if !ok {
			return fmt.Errorf("surface element %v with physical tag %d is not a hexahedron face", q.nodes, q.tag)
		}
		name, ok := rd.physicalNames[[2]int{gmshSurfaceDim, q.tag}]
		if !ok {
			name = fmt.Sprintf("boundary_%d", q.tag)
		}
		msh.SideSets[name] = append(msh.SideSets[name],
			mesh.SideSetEntry{Element: owners[0].Element, LocalFace: owners[0].LocalFace})
	}
	return nil
}
