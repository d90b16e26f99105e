package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Structured hex meshes used by tests across packages

// NewStructuredHexMesh builds an nx by ny by nz block of hexes. position maps
// grid indices to coordinates and must keep the grid right handed.
func NewStructuredHexMesh(nx, ny, nz int, position func(i, j, k int) r3.Vec,
	blockName string, blockID int) (m *Mesh) {
	var (
		nodeIndex = func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	)
	m = NewMesh()
	m.Vertices = make([]r3.Vec, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.Vertices[nodeIndex(i, j, k)] = position(i, j, k)
			}
		}
	}
	blk := ElementBlock{ID: blockID, Name: blockName}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				blk.Elements = append(blk.Elements, len(m.Elements))
				m.Elements = append(m.Elements, HexElement{
					nodeIndex(i, j, k), nodeIndex(i+1, j, k),
					nodeIndex(i+1, j+1, k), nodeIndex(i, j+1, k),
					nodeIndex(i, j, k+1), nodeIndex(i+1, j, k+1),
					nodeIndex(i+1, j+1, k+1), nodeIndex(i, j+1, k+1),
				})
			}
		}
	}
	m.ElementBlocks = []ElementBlock{blk}
	return
}

// NewBoxMesh fills the box [origin, origin+size] with n[0]*n[1]*n[2] equal hexes
func NewBoxMesh(origin, size r3.Vec, n [3]int, blockName string, blockID int) *Mesh {
	return NewStructuredHexMesh(n[0], n[1], n[2], func(i, j, k int) r3.Vec {
		return r3.Vec{
			X: origin.X + size.X*float64(i)/float64(n[0]),
			Y: origin.Y + size.Y*float64(j)/float64(n[1]),
			Z: origin.Z + size.Z*float64(k)/float64(n[2]),
		}
	}, blockName, blockID)
}

func NewSingleHexMesh() *Mesh {
	return NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, [3]int{1, 1, 1}, "Block_1", 1)
}

// AppendMesh adds the nodes, elements, blocks and sets of src to dst with
// renumbered indices, nothing is merged
func AppendMesh(dst, src *Mesh) {
	var (
		nodeOffset = len(dst.Vertices)
		elemOffset = len(dst.Elements)
	)
	dst.Vertices = append(dst.Vertices, src.Vertices...)
	for _, elem := range src.Elements {
		for i := range elem {
			elem[i] += nodeOffset
		}
		dst.Elements = append(dst.Elements, elem)
	}
	for _, blk := range src.ElementBlocks {
		elems := make([]int, len(blk.Elements))
		for i, k := range blk.Elements {
			elems[i] = k + elemOffset
		}
		dst.ElementBlocks = append(dst.ElementBlocks, ElementBlock{ID: blk.ID, Name: blk.Name, Elements: elems})
	}
	for name, nodes := range src.NodeSets {
		for _, n := range nodes {
			dst.NodeSets[name] = append(dst.NodeSets[name], n+nodeOffset)
		}
	}
	for name, entries := range src.SideSets {
		for _, e := range entries {
			dst.SideSets[name] = append(dst.SideSets[name], SideSetEntry{Element: e.Element + elemOffset, LocalFace: e.LocalFace})
		}
	}
}

// NewTwoCubeMesh places unit cube Block_1 at the origin and Block_2 beside it
// along x, separated by gap. A negative gap makes the cubes overlap.
func NewTwoCubeMesh(gap float64, n int) (m *Mesh) {
	var (
		unit = r3.Vec{X: 1, Y: 1, Z: 1}
		div  = [3]int{n, n, n}
	)
	m = NewBoxMesh(r3.Vec{}, unit, div, "Block_1", 1)
	AppendMesh(m, NewBoxMesh(r3.Vec{X: 1 + gap}, unit, div, "Block_2", 2))
	return
}

// NewPeriodicHexMesh wraps an n^3 grid onto itself in all three directions,
// every face is shared by two elements. n must be at least 3.
func NewPeriodicHexMesh(n int) (m *Mesh) {
	var (
		nodeIndex = func(i, j, k int) int { return i%n + n*(j%n+n*(k%n)) }
	)
	m = NewMesh()
	m.Vertices = make([]r3.Vec, n*n*n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				m.Vertices[nodeIndex(i, j, k)] = r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}
			}
		}
	}
	blk := ElementBlock{ID: 1, Name: "Torus"}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				blk.Elements = append(blk.Elements, len(m.Elements))
				m.Elements = append(m.Elements, HexElement{
					nodeIndex(i, j, k), nodeIndex(i+1, j, k),
					nodeIndex(i+1, j+1, k), nodeIndex(i, j+1, k),
					nodeIndex(i, j, k+1), nodeIndex(i+1, j, k+1),
					nodeIndex(i+1, j+1, k+1), nodeIndex(i, j+1, k+1),
				})
			}
		}
	}
	m.ElementBlocks = []ElementBlock{blk}
	return
}

// NewBentStripMesh is one layer of n hexes bent around the y axis, each
// element turned stepDeg from the previous one. Radius is measured to the
// inner face.
func NewBentStripMesh(n int, stepDeg, radius, thickness float64) *Mesh {
	step := stepDeg * math.Pi / 180
	return NewStructuredHexMesh(n, 1, 1, func(i, j, k int) r3.Vec {
		var (
			a = float64(i) * step
			r = radius + float64(k)*thickness
		)
		return r3.Vec{X: r * math.Sin(a), Y: float64(j), Z: r * math.Cos(a)}
	}, "Strip", 1)
}
