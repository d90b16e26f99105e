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

// Gambit element type codes
const (
	gambitEdge     = 1
	gambitQuad     = 2
	gambitTri      = 3
	gambitBrick    = 4
	gambitWedge    = 5
	gambitTet      = 6
	gambitPyramid  = 7
	gambitNodeBC   = 0
	gambitFaceBC   = 1
	gambitGroupTag = "GROUP:"
)

// Gambit numbers brick nodes lexicographically, (x fastest, then y, then z)
var gambitBrickToHex = [8]int{0, 1, 3, 2, 4, 5, 7, 6}

// Gambit brick faces 1-6 in local HexFaces numbering
var gambitBrickFace = [6]int{2, 3, 4, 5, 0, 1}

// ReadGambitNeutral reads a Gambit neutral file (.neu) holding hexahedra.
// Element groups become element blocks, element/face boundary conditions
// become side sets and nodal boundary conditions node sets.
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		msh     = mesh.NewMesh()
		scanner = bufio.NewScanner(file)
		// Control variables from header
		numnp, nelem, ngrps, nbsets int
		nodeIndex                   = make(map[int]int)
		elemIndex                   = make(map[int]int)
	)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	// Header: title is the line after the file banner
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "GAMBIT NEUTRAL FILE") {
			if scanner.Scan() {
				msh.Title = strings.TrimSpace(scanner.Text())
			}
			continue
		}
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 4 {
				return nil, fmt.Errorf("invalid control line: %q", scanner.Text())
			}
			numnp, _ = strconv.Atoi(values[0])
			nelem, _ = strconv.Atoi(values[1])
			ngrps, _ = strconv.Atoi(values[2])
			nbsets, _ = strconv.Atoi(values[3])
			break
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "ENDOFSECTION":
			continue

		case strings.Contains(line, "NODAL COORDINATES"):
			msh.Vertices = make([]r3.Vec, 0, numnp)
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 4 {
					return nil, fmt.Errorf("invalid node line: %q", scanner.Text())
				}
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node id %q: %v", fields[0], err)
				}
				var xyz [3]float64
				for j := 0; j < 3; j++ {
					if xyz[j], err = strconv.ParseFloat(fields[1+j], 64); err != nil {
						return nil, fmt.Errorf("node %d: invalid coordinate %q: %v", nodeID, fields[1+j], err)
					}
				}
				nodeIndex[nodeID] = len(msh.Vertices)
				msh.Vertices = append(msh.Vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			msh.Elements = make([]mesh.HexElement, 0, nelem)
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 3 {
					return nil, fmt.Errorf("invalid element line: %q", scanner.Text())
				}
				elemID, _ := strconv.Atoi(fields[0])
				gambitType, _ := strconv.Atoi(fields[1])
				numNodes, _ := strconv.Atoi(fields[2])
				// Node lists longer than one line continue on the next
				for len(fields) < 3+numNodes {
					if !scanner.Scan() {
						return nil, fmt.Errorf("unexpected EOF reading element %d", elemID)
					}
					fields = append(fields, strings.Fields(scanner.Text())...)
				}
				switch gambitType {
				case gambitEdge, gambitQuad, gambitTri:
					// Lower dimensional elements carry no volume
					continue
				case gambitBrick:
					if numNodes != 8 {
						return nil, fmt.Errorf("element %d: only 8 node bricks are supported, have %d nodes",
							elemID, numNodes)
					}
				default:
					return nil, fmt.Errorf("element %d: unsupported element type %d, only hexahedra are supported",
						elemID, gambitType)
				}
				var hex mesh.HexElement
				for j := 0; j < 8; j++ {
					nodeID, _ := strconv.Atoi(fields[3+j])
					idx, ok := nodeIndex[nodeID]
					if !ok {
						return nil, fmt.Errorf("element %d references unknown node %d", elemID, nodeID)
					}
					hex[gambitBrickToHex[j]] = idx
				}
				elemIndex[elemID] = len(msh.Elements)
				msh.Elements = append(msh.Elements, hex)
			}

		case strings.Contains(line, "ELEMENT GROUP"):
			if err := readGambitGroup(scanner, msh, elemIndex); err != nil {
				return nil, err
			}

		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			if err := readGambitBoundary(scanner, msh, nodeIndex, elemIndex); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if len(msh.ElementBlocks) > ngrps {
		return nil, fmt.Errorf("expected %d element groups, read %d", ngrps, len(msh.ElementBlocks))
	}
	if nbs := len(msh.SideSets) + len(msh.NodeSets); nbs > nbsets {
		return nil, fmt.Errorf("expected %d boundary sets, read %d", nbsets, nbs)
	}
	if len(msh.ElementBlocks) == 0 {
		msh.ElementBlocks = []mesh.ElementBlock{DefaultBlock(len(msh.Elements))}
	}
	sort.SliceStable(msh.ElementBlocks, func(i, j int) bool {
		return msh.ElementBlocks[i].ID < msh.ElementBlocks[j].ID
	})
	return msh, nil
}

// readGambitGroup reads one group, the section header line has been consumed
func readGambitGroup(scanner *bufio.Scanner, msh *mesh.Mesh, elemIndex map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading element group")
	}
	groupLine := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(groupLine, gambitGroupTag) {
		return fmt.Errorf("invalid element group line: %q", groupLine)
	}
	var groupID, numElems, nflags int
	parts := strings.Fields(groupLine)
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "GROUP:":
			groupID, _ = strconv.Atoi(parts[i+1])
		case "ELEMENTS:":
			numElems, _ = strconv.Atoi(parts[i+1])
		case "NFLAGS:":
			nflags, _ = strconv.Atoi(parts[i+1])
		}
	}
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d name", groupID)
	}
	blk := mesh.ElementBlock{
		ID:   groupID,
		Name: strings.TrimSpace(scanner.Text()),
	}
	if nflags > 0 && !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading group %d flags", groupID)
	}
	for read := 0; read < numElems; {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading group %d elements", groupID)
		}
		for _, field := range strings.Fields(scanner.Text()) {
			elemID, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("group %d: invalid element id %q", groupID, field)
			}
			read++
			// Skipped lower dimensional elements have no index
			if k, ok := elemIndex[elemID]; ok {
				blk.Elements = append(blk.Elements, k)
			}
		}
	}
	if len(blk.Elements) > 0 {
		msh.ElementBlocks = append(msh.ElementBlocks, blk)
	}
	return nil
}

// readGambitBoundary reads one boundary condition set
func readGambitBoundary(scanner *bufio.Scanner, msh *mesh.Mesh, nodeIndex, elemIndex map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading boundary conditions")
	}
	// NAME ITYPE NENTRY NVALUES IBCODE...
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid boundary condition line: %q", scanner.Text())
	}
	var (
		bcName    = parts[0]
		itype, _  = strconv.Atoi(parts[1])
		nentry, _ = strconv.Atoi(parts[2])
	)
	for i := 0; i < nentry; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading boundary condition %s", bcName)
		}
		fields := strings.Fields(scanner.Text())
		switch itype {
		case gambitNodeBC:
			if len(fields) < 1 {
				continue
			}
			nodeID, _ := strconv.Atoi(fields[0])
			idx, ok := nodeIndex[nodeID]
			if !ok {
				return fmt.Errorf("boundary condition %s references unknown node %d", bcName, nodeID)
			}
			msh.NodeSets[bcName] = append(msh.NodeSets[bcName], idx)
		case gambitFaceBC:
			if len(fields) < 3 {
				return fmt.Errorf("boundary condition %s: invalid entry %q", bcName, scanner.Text())
			}
			elemID, _ := strconv.Atoi(fields[0])
			elemType, _ := strconv.Atoi(fields[1])
			faceID, _ := strconv.Atoi(fields[2])
			k, ok := elemIndex[elemID]
			if !ok || elemType != gambitBrick {
				return fmt.Errorf("boundary condition %s references element %d which is not a hexahedron",
					bcName, elemID)
			}
			if faceID < 1 || faceID > 6 {
				return fmt.Errorf("boundary condition %s: invalid brick face %d", bcName, faceID)
			}
			msh.SideSets[bcName] = append(msh.SideSets[bcName],
				mesh.SideSetEntry{Element: k, LocalFace: gambitBrickFace[faceID-1]})
		default:
			return fmt.Errorf("boundary condition %s: unknown type %d", bcName, itype)
		}
	}
	return nil
}
