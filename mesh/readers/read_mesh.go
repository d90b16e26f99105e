package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/gocontact/mesh"
)

func meshExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ReadMeshFile reads a mesh file based on extension and validates it
func ReadMeshFile(filename string) (msh *mesh.Mesh, err error) {
	switch ext := meshExt(filename); ext {
	case ".neu":
		msh, err = ReadGambitNeutral(filename)
	case ".msh":
		msh, err = ReadGmsh22(filename)
	case ".json", ".yaml", ".yml":
		msh, err = ReadMeshDocument(filename)
	case ".exo", ".e", ".g":
		return nil, fmt.Errorf("exodus files are not supported, convert %s to .neu, .msh or .json", filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err = msh.Validate(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}

// DefaultBlock puts all elements in one block
func DefaultBlock(numElements int) (blk mesh.ElementBlock) {
	blk = mesh.ElementBlock{ID: 1, Name: "Block_1", Elements: make([]int, numElements)}
	for k := range blk.Elements {
		blk.Elements[k] = k
	}
	return
}
