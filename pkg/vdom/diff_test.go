package vdom

import "testing"

func assertPatches(t *testing.T, got []Patch, want []Patch) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d patches, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Op != w.Op || !g.Path.Equal(w.Path) || g.Key != w.Key || g.Value != w.Value || !Equal(g.Node, w.Node) {
			t.Errorf("patch %d = %v, want %v", i, g, w)
		}
	}
}

func TestDiffBothNil(t *testing.T) {
	if patches := Diff(nil, nil); len(patches) != 0 {
		t.Errorf("Expected 0 patches, got %d", len(patches))
	}
}

func TestDiffMountFromNil(t *testing.T) {
	next := Div(Text("hi"))
	assertPatches(t, Diff(nil, next), []Patch{
		{Op: PatchReplace, Path: Path{0}, Node: next},
	})
}

func TestDiffRootRemoved(t *testing.T) {
	assertPatches(t, Diff(Div(), nil), []Patch{
		{Op: PatchRemove, Path: Path{0}},
	})
}

func TestDiffIdenticalTreeIsEmpty(t *testing.T) {
	build := func() *VNode {
		return Div(Class("app"), ID("root"),
			H1(Text("Title")),
			Ul(
				Li(Class("item"), Text("one")),
				Li(Class("item"), Text("two")),
			),
			P(Text("footer")),
		)
	}

	tree := build()
	if patches := Diff(tree, tree); len(patches) != 0 {
		t.Errorf("Diff(t, t) = %v, want none", patches)
	}
	if patches := Diff(build(), build()); len(patches) != 0 {
		t.Errorf("Diff of equal trees = %v, want none", patches)
	}
}

func TestDiffTextChange(t *testing.T) {
	assertPatches(t, Diff(Text("a"), Text("b")), []Patch{
		{Op: PatchUpdateText, Path: Path{0}, Value: "b"},
	})
}

func TestDiffTextUnchanged(t *testing.T) {
	if patches := Diff(Text("Hello"), Text("Hello")); len(patches) != 0 {
		t.Errorf("Expected 0 patches for unchanged text, got %d", len(patches))
	}
}

func TestDiffKindChange(t *testing.T) {
	next := Div(Text("Hello"))
	assertPatches(t, Diff(Text("Hello"), next), []Patch{
		{Op: PatchReplace, Path: Path{0}, Node: next},
	})

	back := Text("Hello")
	assertPatches(t, Diff(next, back), []Patch{
		{Op: PatchReplace, Path: Path{0}, Node: back},
	})
}

func TestDiffTagChange(t *testing.T) {
	next := Span(Class("x"), Text("child"))
	// The whole subtree is replaced; children are not diffed.
	assertPatches(t, Diff(Div(Class("x"), Text("child")), next), []Patch{
		{Op: PatchReplace, Path: Path{0}, Node: next},
	})
}

func TestDiffAttributeChanged(t *testing.T) {
	prev := Element("div", []Attr{{Key: "class", Value: "a"}})
	next := Element("div", []Attr{{Key: "class", Value: "b"}})

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: "b"},
	})
}

func TestDiffAttributeAdded(t *testing.T) {
	assertPatches(t, Diff(Div(), Div(Class("new"))), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: "new"},
	})
}

func TestDiffAttributeDroppedUsesEmptyValue(t *testing.T) {
	assertPatches(t, Diff(Div(Class("old")), Div()), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: ""},
	})
}

func TestDiffAttributeExplicitEmptyValue(t *testing.T) {
	prev := Button(Disabled(true))
	next := Button(Disabled(false))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "disabled", Value: ""},
	})

	// Dropping an attribute that was already cleared emits nothing.
	if patches := Diff(next, Button()); len(patches) != 0 {
		t.Errorf("expected no patches, got %v", patches)
	}
}

func TestDiffMultipleAttributeChangesOrdered(t *testing.T) {
	prev := Div(Class("old"), ID("test"))
	next := Div(TitleAttr("hello"), Class("new"))

	// New/changed attributes in next's order, then removals in prev's order.
	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "title", Value: "hello"},
		{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: "new"},
		{Op: PatchSetAttribute, Path: Path{0}, Key: "id", Value: ""},
	})
}

func TestDiffAppendTrailingChild(t *testing.T) {
	third := Li(Text("c"))
	prev := Ul(Li(Text("a")), Li(Text("b")))
	next := Ul(Li(Text("a")), Li(Text("b")), third)

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchAppend, Path: Path{0}, Node: third},
	})
}

func TestDiffAppendAddressesParentPath(t *testing.T) {
	added := Span(Text("new"))
	prev := Div(P(Text("x")), Div())
	next := Div(P(Text("x")), Div(added))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchAppend, Path: Path{0, 1}, Node: added},
	})
}

func TestDiffRemoveTrailingChildrenHighestFirst(t *testing.T) {
	prev := Ul(Li(Text("a")), Li(Text("b")), Li(Text("c")), Li(Text("d")))
	next := Ul(Li(Text("a")), Li(Text("b")))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchRemove, Path: Path{0, 3}},
		{Op: PatchRemove, Path: Path{0, 2}},
	})
}

func TestDiffNestedPaths(t *testing.T) {
	prev := Div(
		Section(H1(Text("Old title")), P(Class("lead"), Text("body"))),
	)
	next := Div(
		Section(H1(Text("New title")), P(Class("lead big"), Text("body"))),
	)

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchUpdateText, Path: Path{0, 0, 0, 0}, Value: "New title"},
		{Op: PatchSetAttribute, Path: Path{0, 0, 1}, Key: "class", Value: "lead big"},
	})
}

func TestDiffPreOrderAttributesBeforeChildren(t *testing.T) {
	prev := Div(Class("a"), Span(Class("x")), Text("t"))
	next := Div(Class("b"), Span(Class("y")), Text("u"))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: "b"},
		{Op: PatchSetAttribute, Path: Path{0, 0}, Key: "class", Value: "y"},
		{Op: PatchUpdateText, Path: Path{0, 1}, Value: "u"},
	})
}

// Children are matched by index, so inserting at the front rewrites every
// following sibling and appends the last one.
func TestDiffInsertInMiddleCascades(t *testing.T) {
	prev := Ul(Li(Text("a")), Li(Text("b")), Li(Text("c")))
	next := Ul(Li(Text("new")), Li(Text("a")), Li(Text("b")), Li(Text("c")))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchUpdateText, Path: Path{0, 0, 0}, Value: "new"},
		{Op: PatchUpdateText, Path: Path{0, 1, 0}, Value: "a"},
		{Op: PatchUpdateText, Path: Path{0, 2, 0}, Value: "b"},
		{Op: PatchAppend, Path: Path{0}, Node: Li(Text("c"))},
	})
}

func TestDiffRemoveFromMiddleCascades(t *testing.T) {
	prev := Ul(Li(Class("a")), Li(Class("b")), Li(Class("c")))
	next := Ul(Li(Class("a")), Li(Class("c")))

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchSetAttribute, Path: Path{0, 1}, Key: "class", Value: "c"},
		{Op: PatchRemove, Path: Path{0, 2}},
	})
}

func TestDiffMixedChildKinds(t *testing.T) {
	replacement := Strong(Text("bold"))
	prev := P(Text("plain "), Text("tail"))
	next := P(Text("plain "), replacement)

	assertPatches(t, Diff(prev, next), []Patch{
		{Op: PatchReplace, Path: Path{0, 1}, Node: replacement},
	})
}

func TestDiffPathsAreIndependent(t *testing.T) {
	prev := Div(Span(Text("a")), Span(Text("b")))
	next := Div(Span(Text("x")), Span(Text("y")))

	patches := Diff(prev, next)
	if len(patches) != 2 {
		t.Fatalf("expected 2 patches, got %d", len(patches))
	}

	patches[0].Path[1] = 99
	if patches[1].Path[1] != 1 {
		t.Errorf("patch paths share storage: %v", patches[1].Path)
	}
}
