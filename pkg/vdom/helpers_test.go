package vdom

import "testing"

func TestText(t *testing.T) {
	node := Text("Hello, World!")

	if node.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", node.Kind)
	}
	if node.Text != "Hello, World!" {
		t.Errorf("Text = %v, want 'Hello, World!'", node.Text)
	}
}

func TestTextf(t *testing.T) {
	node := Textf("Count: %d", 42)

	if node.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", node.Kind)
	}
	if node.Text != "Count: 42" {
		t.Errorf("Text = %v, want 'Count: 42'", node.Text)
	}
}

func TestIf(t *testing.T) {
	node := Span(Text("x"))

	if got := If(true, node); got != node {
		t.Error("If(true) should return the node")
	}
	if got := If(false, node); got != nil {
		t.Error("If(false) should return nil")
	}
}

func TestIfElse(t *testing.T) {
	a, b := Text("a"), Text("b")

	if IfElse(true, a, b) != a {
		t.Error("IfElse(true) should return the first node")
	}
	if IfElse(false, a, b) != b {
		t.Error("IfElse(false) should return the second node")
	}
}

func TestWhen(t *testing.T) {
	called := false
	fn := func() *VNode {
		called = true
		return Text("lazy")
	}

	if When(false, fn) != nil || called {
		t.Error("When(false) should not call fn")
	}
	if got := When(true, fn); got == nil || got.Text != "lazy" || !called {
		t.Error("When(true) should return fn's node")
	}
}

func TestConditionalChildIsDropped(t *testing.T) {
	node := Div(If(false, P(Text("hidden"))), P(Text("shown")))

	if len(node.Children) != 1 {
		t.Fatalf("Children = %d, want 1", len(node.Children))
	}
	if node.Children[0].Children[0].Text != "shown" {
		t.Errorf("unexpected child %v", node.Children[0])
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	nodes := Range(items, func(item string, index int) *VNode {
		return Li(Data("index", Textf("%d", index).Text), Text(item))
	})

	if len(nodes) != 3 {
		t.Fatalf("nodes len = %v, want 3", len(nodes))
	}

	for i, node := range nodes {
		if node.Tag != "li" {
			t.Errorf("nodes[%d].Tag = %v, want li", i, node.Tag)
		}
		if len(node.Children) != 1 {
			t.Errorf("nodes[%d].Children len = %v, want 1", i, len(node.Children))
		}
		if node.Children[0].Text != items[i] {
			t.Errorf("nodes[%d] text = %v, want %v", i, node.Children[0].Text, items[i])
		}
	}
}

func TestRangeWithNilFiltered(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	nodes := Range(items, func(item int, index int) *VNode {
		if item%2 == 0 {
			return nil
		}
		return Li(Textf("%d", item))
	})

	if len(nodes) != 3 {
		t.Errorf("nodes len = %v, want 3 (odd numbers only)", len(nodes))
	}
}

func TestRepeat(t *testing.T) {
	nodes := Repeat(5, func(i int) *VNode {
		return Li(Textf("Item %d", i))
	})

	if len(nodes) != 5 {
		t.Fatalf("nodes len = %v, want 5", len(nodes))
	}

	for i, node := range nodes {
		if node.Children[0].Text != Textf("Item %d", i).Text {
			t.Errorf("nodes[%d] text mismatch", i)
		}
	}
}

func TestRepeatNonPositive(t *testing.T) {
	for _, n := range []int{0, -5} {
		nodes := Repeat(n, func(i int) *VNode {
			return Li()
		})
		if nodes != nil {
			t.Errorf("Repeat(%d) should return nil, got len %d", n, len(nodes))
		}
	}
}
