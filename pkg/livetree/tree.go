package livetree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/vcore/pkg/vdom"
)

var (
	// ErrInvalidPath is returned when a patch path does not resolve.
	ErrInvalidPath = errors.New("livetree: invalid path")

	// ErrNotText is returned when UpdateText targets an element.
	ErrNotText = errors.New("livetree: node is not a text node")

	// ErrNotElement is returned when an attribute or child operation targets
	// a text node.
	ErrNotElement = errors.New("livetree: node is not an element")

	// ErrRootRemoval is returned when Remove targets the root of an empty
	// tree.
	ErrRootRemoval = errors.New("livetree: root removed")
)

// Node is a mutable live node.
type Node struct {
	Kind     vdom.VKind
	Tag      string
	Text     string
	Attrs    []vdom.Attr
	Children []*Node
}

// Tree is a live tree rooted at a single node. The zero Tree is empty.
type Tree struct {
	root    *Node
	applied int
}

// Build creates a live tree from a VNode.
func Build(v *vdom.VNode) *Tree {
	return &Tree{root: buildNode(v)}
}

func buildNode(v *vdom.VNode) *Node {
	if v == nil {
		return nil
	}
	n := &Node{
		Kind: v.Kind,
		Tag:  v.Tag,
		Text: v.Text,
	}
	for _, a := range v.Attrs {
		if a.Value != "" {
			n.setAttr(a.Key, a.Value)
		}
	}
	for _, child := range v.Children {
		if c := buildNode(child); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Applied returns the number of patches applied since Build or Mount.
func (t *Tree) Applied() int {
	return t.applied
}

// Mount replaces the whole tree.
func (t *Tree) Mount(v *vdom.VNode) error {
	t.root = buildNode(v)
	t.applied = 0
	return nil
}

// Apply applies patches in order. It stops at the first patch that fails and
// returns an error naming its index; earlier patches stay applied.
func (t *Tree) Apply(patches []vdom.Patch) error {
	for i, p := range patches {
		if err := t.apply(p); err != nil {
			return fmt.Errorf("patch %d %s: %w", i, p, err)
		}
		t.applied++
	}
	return nil
}

func (t *Tree) apply(p vdom.Patch) error {
	switch p.Op {
	case vdom.PatchReplace:
		return t.replace(p.Path, buildNode(p.Node))

	case vdom.PatchUpdateText:
		n, err := t.resolve(p.Path)
		if err != nil {
			return err
		}
		if n.Kind != vdom.KindText {
			return ErrNotText
		}
		n.Text = p.Value
		return nil

	case vdom.PatchSetAttribute:
		n, err := t.resolve(p.Path)
		if err != nil {
			return err
		}
		if n.Kind != vdom.KindElement {
			return ErrNotElement
		}
		if p.Value == "" {
			n.removeAttr(p.Key)
		} else {
			n.setAttr(p.Key, p.Value)
		}
		return nil

	case vdom.PatchAppend:
		n, err := t.resolve(p.Path)
		if err != nil {
			return err
		}
		if n.Kind != vdom.KindElement {
			return ErrNotElement
		}
		if child := buildNode(p.Node); child != nil {
			n.Children = append(n.Children, child)
		}
		return nil

	case vdom.PatchRemove:
		return t.remove(p.Path)

	default:
		return fmt.Errorf("livetree: unsupported op %s", p.Op)
	}
}

// resolve walks the path from the root.
func (t *Tree) resolve(path vdom.Path) (*Node, error) {
	if len(path) == 0 || path[0] != 0 || t.root == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	n := t.root
	for _, idx := range path[1:] {
		if idx < 0 || idx >= len(n.Children) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
		n = n.Children[idx]
	}
	return n, nil
}

func (t *Tree) replace(path vdom.Path, node *Node) error {
	if len(path) == 1 && path[0] == 0 {
		t.root = node
		return nil
	}
	parentPath, idx, ok := path.Parent()
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	parent, err := t.resolve(parentPath)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(parent.Children) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	if node == nil {
		parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
		return nil
	}
	parent.Children[idx] = node
	return nil
}

func (t *Tree) remove(path vdom.Path) error {
	if len(path) == 1 && path[0] == 0 {
		if t.root == nil {
			return fmt.Errorf("%w: %s", ErrRootRemoval, path)
		}
		t.root = nil
		return nil
	}
	parentPath, idx, ok := path.Parent()
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	parent, err := t.resolve(parentPath)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(parent.Children) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	return nil
}

// Snapshot converts the live tree back to a VNode.
func (t *Tree) Snapshot() *vdom.VNode {
	return snapshot(t.root)
}

func snapshot(n *Node) *vdom.VNode {
	if n == nil {
		return nil
	}
	v := &vdom.VNode{
		Kind: n.Kind,
		Tag:  n.Tag,
		Text: n.Text,
	}
	if len(n.Attrs) > 0 {
		v.Attrs = make([]vdom.Attr, len(n.Attrs))
		copy(v.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		v.Children = append(v.Children, snapshot(child))
	}
	return v
}

// String renders the tree as indented lines, one node per line.
func (t *Tree) String() string {
	var sb strings.Builder
	writeNode(&sb, t.root, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Kind == vdom.KindText {
		fmt.Fprintf(sb, "%q\n", n.Text)
		return
	}
	sb.WriteString("<" + n.Tag)
	for _, a := range n.Attrs {
		fmt.Fprintf(sb, " %s=%q", a.Key, a.Value)
	}
	sb.WriteString(">\n")
	for _, child := range n.Children {
		writeNode(sb, child, depth+1)
	}
}

// Attr returns the value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) setAttr(key, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, vdom.Attr{Key: key, Value: value})
}

func (n *Node) removeAttr(key string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// EqualIgnoringAttrOrder reports whether a and b describe the same tree when
// attributes are compared as sets. Attributes with an empty value count as
// absent.
func EqualIgnoringAttrOrder(a, b *vdom.VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if !sameAttrs(a.Attrs, b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !EqualIgnoringAttrOrder(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func sameAttrs(a, b []vdom.Attr) bool {
	am := attrMap(a)
	bm := attrMap(b)
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		if bm[k] != v {
			return false
		}
	}
	return true
}

func attrMap(attrs []vdom.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Value == "" {
			continue
		}
		m[a.Key] = a.Value
	}
	return m
}
