package vdom

import "testing"

func TestPatchOpString(t *testing.T) {
	ops := []PatchOp{PatchReplace, PatchUpdateText, PatchSetAttribute, PatchAppend, PatchRemove}
	for _, op := range ops {
		parsed, err := ParsePatchOp(op.String())
		if err != nil {
			t.Fatalf("ParsePatchOp(%q): %v", op.String(), err)
		}
		if parsed != op {
			t.Errorf("round trip of %v gave %v", op, parsed)
		}
	}

	if PatchOp(0).String() != "Unknown" {
		t.Error("expected Unknown")
	}
	if _, err := ParsePatchOp("Move"); err == nil {
		t.Error("expected error for unknown op")
	}
}

func TestPathChildCopies(t *testing.T) {
	root := Path{0}
	a := root.Child(1)
	b := root.Child(2)

	if a.String() != "0.1" || b.String() != "0.2" {
		t.Errorf("unexpected paths %s %s", a, b)
	}
	if len(root) != 1 {
		t.Errorf("receiver modified: %v", root)
	}
}

func TestPathParent(t *testing.T) {
	parent, idx, ok := Path{0, 3, 2}.Parent()
	if !ok || !parent.Equal(Path{0, 3}) || idx != 2 {
		t.Errorf("Parent() = %v %d %v", parent, idx, ok)
	}

	if _, _, ok := (Path{0}).Parent(); ok {
		t.Error("root has no parent")
	}
}

func TestPatchString(t *testing.T) {
	tests := []struct {
		patch Patch
		want  string
	}{
		{Patch{Op: PatchUpdateText, Path: Path{0, 1}, Value: "hi"}, `UpdateText(0.1, "hi")`},
		{Patch{Op: PatchSetAttribute, Path: Path{0}, Key: "class", Value: ""}, `SetAttribute(0, "class", "")`},
		{Patch{Op: PatchAppend, Path: Path{0}, Node: Li()}, `Append(0, <li>)`},
		{Patch{Op: PatchReplace, Path: Path{0, 2}, Node: Text("x")}, `Replace(0.2, "x")`},
		{Patch{Op: PatchRemove, Path: Path{0, 4}}, `Remove(0.4)`},
	}

	for _, tt := range tests {
		if got := tt.patch.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
