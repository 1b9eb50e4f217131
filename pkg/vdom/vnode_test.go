package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{VKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElementConstructor(t *testing.T) {
	node := Element("div",
		[]Attr{{Key: "class", Value: "a"}, {Key: "id", Value: "x"}, {Key: "class", Value: "b"}},
		Text("one"), nil, Text("two"),
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("unexpected node %+v", node)
	}
	if len(node.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %v", node.Attrs)
	}
	if v, _ := node.Attr("class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}
	if node.Attrs[0].Key != "class" {
		t.Errorf("duplicate key should keep first position, got %v", node.Attrs)
	}
	if len(node.Children) != 2 {
		t.Errorf("nil child should be dropped, got %d children", len(node.Children))
	}
}

func TestVNodeAttrMissing(t *testing.T) {
	if _, ok := Div().Attr("class"); ok {
		t.Error("expected missing attribute")
	}
	var nilNode *VNode
	if _, ok := nilNode.Attr("class"); ok {
		t.Error("nil node should have no attributes")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Div(Class("a"), Span(Text("x")))
	clone := orig.Clone()

	if !Equal(orig, clone) {
		t.Fatal("clone should equal original")
	}

	clone.Attrs[0].Value = "changed"
	clone.Children[0].Children[0].Text = "changed"

	if v, _ := orig.Attr("class"); v != "a" {
		t.Error("clone shares attribute storage")
	}
	if orig.Children[0].Children[0].Text != "x" {
		t.Error("clone shares children")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", Div(), nil, false},
		{"same", Div(Class("a"), Text("x")), Div(Class("a"), Text("x")), true},
		{"tag", Div(), Span(), false},
		{"text", Text("a"), Text("b"), false},
		{"attr value", Div(Class("a")), Div(Class("b")), false},
		{"attr order", Div(Class("a"), ID("b")), Div(ID("b"), Class("a")), false},
		{"children", Div(Text("a")), Div(Text("a"), Text("b")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountNodes(t *testing.T) {
	tree := Div(Ul(Li(Text("a")), Li(Text("b"))), P())
	if got := CountNodes(tree); got != 7 {
		t.Errorf("CountNodes = %d, want 7", got)
	}
	if CountNodes(nil) != 0 {
		t.Error("CountNodes(nil) should be 0")
	}
}
