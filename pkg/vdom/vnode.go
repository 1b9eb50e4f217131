package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is a virtual tree node. Treat VNodes as immutable once built.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Attrs    []Attr   // Ordered attributes
	Children []*VNode // Ordered child nodes
	Text     string   // For KindText
}

// Attr is a single attribute. An empty Value asks the consumer to remove the
// attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Element creates an element node from an explicit attribute list and
// children. Nil children are dropped.
func Element(tag string, attrs []Attr, children ...*VNode) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}
	for _, a := range attrs {
		node.setAttr(a)
	}
	for _, child := range children {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// Attr returns the value of the first attribute with the given key.
func (v *VNode) Attr(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, a := range v.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// setAttr sets an attribute, replacing an existing key in place.
func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	for i := range v.Attrs {
		if v.Attrs[i].Key == a.Key {
			v.Attrs[i].Value = a.Value
			return
		}
	}
	v.Attrs = append(v.Attrs, a)
}

// Clone returns a deep copy of the tree.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	out := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Text: v.Text,
	}
	if len(v.Attrs) > 0 {
		out.Attrs = make([]Attr, len(v.Attrs))
		copy(out.Attrs, v.Attrs)
	}
	if len(v.Children) > 0 {
		out.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Equal reports whether two trees are structurally identical, including
// attribute order.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the tree.
func CountNodes(v *VNode) int {
	if v == nil {
		return 0
	}
	n := 1
	for _, child := range v.Children {
		n += CountNodes(child)
	}
	return n
}
