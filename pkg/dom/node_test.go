package dom

import (
	"testing"

	"github.com/matzehuels/tooltipper/pkg/geom"
)

func TestAbsoluteOffsets(t *testing.T) {
	doc := New(320, 480)
	parent := doc.Element("parent", WithOffset(40, 30))
	child := doc.Element("child", WithPosition(Absolute), WithOffset(5, 7), WithSize(10, 10))
	doc.Root().Append(parent.Append(child))

	if got, want := child.DocumentOffset(), (geom.Offset{Top: 45, Left: 37}); got != want {
		t.Errorf("DocumentOffset() = %v, want %v", got, want)
	}
	if got, want := child.RelativePosition(), (geom.Offset{Top: 5, Left: 7}); got != want {
		t.Errorf("RelativePosition() = %v, want %v", got, want)
	}

	child.SetPosition(-10, 0)
	if got, want := child.DocumentOffset(), (geom.Offset{Top: 30, Left: 30}); got != want {
		t.Errorf("after SetPosition DocumentOffset() = %v, want %v", got, want)
	}
}

func TestHiddenAndDetachedGeometry(t *testing.T) {
	doc := New(320, 480)
	box := doc.Element("box", WithOffset(10, 10), WithSize(100, 40), WithMargin(4))
	doc.Root().Append(box)

	if got := box.OuterWidth(true); got != 108 {
		t.Errorf("OuterWidth(true) = %d, want 108", got)
	}
	if got := box.OuterWidth(false); got != 100 {
		t.Errorf("OuterWidth(false) = %d, want 100", got)
	}

	box.Hide()
	if box.OuterWidth(true) != 0 || box.OuterHeight() != 0 || box.DocumentOffset() != (geom.Offset{}) {
		t.Error("hidden node should report zero geometry")
	}
	if box.Rect().Width != 100 {
		t.Error("Rect() ignores visibility")
	}

	box.Show()
	box.Detach()
	if box.Attached() || box.Visible() {
		t.Error("detached node should be neither attached nor visible")
	}
	if box.OuterHeight() != 0 {
		t.Error("detached node should report zero height")
	}
}

func TestHiddenAncestor(t *testing.T) {
	doc := New(320, 480)
	wrap := doc.Element("wrap", Hidden())
	leaf := doc.Element("leaf", WithSize(5, 5))
	doc.Root().Append(wrap.Append(leaf))

	if leaf.Visible() {
		t.Error("leaf under hidden ancestor should not be visible")
	}
	if leaf.Hidden() {
		t.Error("leaf's own flag should be clear")
	}
}

func TestMatchesAndChildOffset(t *testing.T) {
	doc := New(320, 480)
	panel := doc.Element("panel")
	ptr := doc.Element("ptr", WithClass("tooltip__pointer"))
	other := doc.Element("other", WithClass("body"))
	panel.Append(ptr, other)

	for _, sel := range []string{".tooltip__pointer", "#ptr", "ptr", "tooltip__pointer"} {
		if !ptr.Matches(sel) {
			t.Errorf("Matches(%q) = false", sel)
		}
	}
	if ptr.Matches(".body") || ptr.Matches("#other") {
		t.Error("unexpected match")
	}

	panel.SetChildOffset(".tooltip__pointer", 42)
	if ptr.offset.Left != 42 || other.offset.Left != 0 {
		t.Errorf("child offsets = (%d,%d), want (42,0)", ptr.offset.Left, other.offset.Left)
	}
}

func TestAppendMovesNode(t *testing.T) {
	doc := New(320, 480)
	a := doc.Element("a")
	b := doc.Element("b")
	n := doc.Element("n")
	doc.Root().Append(a, b)
	a.Append(n)
	b.Append(n)

	if n.Parent() != b || len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Error("Append should move the node to its new parent")
	}
	if doc.GetElementByID("n") != n {
		t.Error("moved node should stay registered")
	}
}
