package mesh

import "fmt"

type TopologyErrorKind uint8

const (
	NonManifoldFace TopologyErrorKind = iota
	InvalidNodeIndex
	InvalidElementIndex
	ElementBlockConflict
)

func (k TopologyErrorKind) String() string {
	return [...]string{"non-manifold face", "invalid node index", "invalid element index",
		"element block conflict"}[k]
}

// TopologyError reports a mesh that cannot be skinned. Face is set for
// non-manifold faces, Elements lists every element involved.
type TopologyError struct {
	Kind     TopologyErrorKind
	Face     QuadFace
	Elements []int
	Msg      string
}

func (e *TopologyError) Error() string {
	if e.Kind == NonManifoldFace {
		return fmt.Sprintf("invalid mesh topology: %s: face %v shared by elements %v", e.Kind, e.Face, e.Elements)
	}
	return fmt.Sprintf("invalid mesh topology: %s: %s", e.Kind, e.Msg)
}
