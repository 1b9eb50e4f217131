package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchReplace      PatchOp = 0x01 // Replace the node at Path with Node
	PatchUpdateText   PatchOp = 0x02 // Set the text of the node at Path
	PatchSetAttribute PatchOp = 0x03 // Set (or, with an empty Value, remove) an attribute
	PatchAppend       PatchOp = 0x04 // Append Node as the last child of the node at Path
	PatchRemove       PatchOp = 0x05 // Remove the node at Path from its parent
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchReplace:
		return "Replace"
	case PatchUpdateText:
		return "UpdateText"
	case PatchSetAttribute:
		return "SetAttribute"
	case PatchAppend:
		return "Append"
	case PatchRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// ParsePatchOp parses the name returned by PatchOp.String.
func ParsePatchOp(s string) (PatchOp, error) {
	switch s {
	case "Replace":
		return PatchReplace, nil
	case "UpdateText":
		return PatchUpdateText, nil
	case "SetAttribute":
		return PatchSetAttribute, nil
	case "Append":
		return PatchAppend, nil
	case "Remove":
		return PatchRemove, nil
	default:
		return 0, fmt.Errorf("vdom: unknown patch op %q", s)
	}
}

// Path locates a node by child indices from the root. The root is Path{0}.
type Path []int

// Child returns a new path extended with index i. The receiver is not
// modified.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Parent returns the path of the parent node and the index of p within it.
// It returns false for the root and the empty path.
func (p Path) Parent() (Path, int, bool) {
	if len(p) < 2 {
		return nil, 0, false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the path as dot-separated indices, e.g. "0.2.1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Patch represents a single mutation of the live tree.
type Patch struct {
	Op    PatchOp // Operation type
	Path  Path    // Target node (parent node for PatchAppend)
	Key   string  // Attribute key (for SetAttribute)
	Value string  // Text content or attribute value
	Node  *VNode  // For Replace/Append
}

// String returns a compact human-readable form of the patch.
func (p Patch) String() string {
	switch p.Op {
	case PatchUpdateText:
		return fmt.Sprintf("UpdateText(%s, %q)", p.Path, p.Value)
	case PatchSetAttribute:
		return fmt.Sprintf("SetAttribute(%s, %q, %q)", p.Path, p.Key, p.Value)
	case PatchReplace, PatchAppend:
		return fmt.Sprintf("%s(%s, %s)", p.Op, p.Path, describe(p.Node))
	default:
		return fmt.Sprintf("%s(%s)", p.Op, p.Path)
	}
}

func describe(v *VNode) string {
	switch {
	case v == nil:
		return "nil"
	case v.Kind == KindText:
		return strconv.Quote(v.Text)
	default:
		return "<" + v.Tag + ">"
	}
}
