package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/page"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

func TestClickBubblesUntilStopped(t *testing.T) {
	doc := New(100, 100)
	outer := doc.Element("outer")
	inner := doc.Element("inner")
	doc.Root().Append(outer.Append(inner))

	var order []string
	doc.OnClick(inner, func(*tooltip.Event) { order = append(order, "inner") })
	doc.OnClick(outer, func(ev *tooltip.Event) {
		order = append(order, "outer")
		ev.StopPropagation()
	})
	doc.OnOutsideClick(func(*tooltip.Event) { order = append(order, "outside") })

	ev := doc.Click(inner)
	if !ev.Stopped() {
		t.Error("event should be stopped")
	}
	if ev.Target != inner {
		t.Errorf("Target = %v, want inner", ev.Target)
	}
	if diff := cmp.Diff([]string{"inner", "outer"}, order); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestUnstoppedClickReachesOutside(t *testing.T) {
	doc := New(100, 100)
	n := doc.Element("n")
	doc.Root().Append(n)

	var outside int
	doc.OnClick(n, func(*tooltip.Event) {})
	doc.OnOutsideClick(func(*tooltip.Event) { outside++ })

	doc.Click(n)
	doc.ClickOutside()
	if outside != 2 {
		t.Errorf("outside deliveries = %d, want 2", outside)
	}
}

func TestCancelDuringDelivery(t *testing.T) {
	doc := New(100, 100)
	var second tooltip.Subscription
	var calls []string
	doc.OnOutsideClick(func(*tooltip.Event) {
		calls = append(calls, "first")
		second.Cancel()
	})
	second = doc.OnOutsideClick(func(*tooltip.Event) { calls = append(calls, "second") })

	doc.ClickOutside()
	if diff := cmp.Diff([]string{"first"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if _, outside, _ := doc.ListenerCounts(); outside != 1 {
		t.Errorf("outside listeners = %d, want 1", outside)
	}
}

func TestSubscriptionsCancel(t *testing.T) {
	doc := New(100, 100)
	n := doc.Element("n")
	doc.Root().Append(n)

	subs := []tooltip.Subscription{
		doc.OnClick(n, func(*tooltip.Event) {}),
		doc.OnClick(n, func(*tooltip.Event) {}),
		doc.OnOutsideClick(func(*tooltip.Event) {}),
		doc.OnResize(func() {}),
	}
	if c, o, r := doc.ListenerCounts(); c != 2 || o != 1 || r != 1 {
		t.Fatalf("ListenerCounts() = (%d,%d,%d), want (2,1,1)", c, o, r)
	}
	for _, s := range subs {
		s.Cancel()
		s.Cancel()
	}
	if c, o, r := doc.ListenerCounts(); c+o+r != 0 {
		t.Errorf("ListenerCounts() = (%d,%d,%d), want none", c, o, r)
	}
}

type foreign struct{}

func (foreign) DocumentOffset() geom.Offset { return geom.Offset{} }
func (foreign) OuterWidth(bool) int         { return 0 }

func TestOnClickForeignElementIsInert(t *testing.T) {
	doc := New(100, 100)
	sub := doc.OnClick(foreign{}, func(*tooltip.Event) { t.Error("foreign element received a click") })
	sub.Cancel()
	if c, _, _ := doc.ListenerCounts(); c != 0 {
		t.Errorf("click listeners = %d, want 0", c)
	}
}

func TestResizeNotifies(t *testing.T) {
	doc := New(320, 480)
	var widths []int
	doc.OnResize(func() { widths = append(widths, doc.Width()) })

	doc.Resize(600, 400)
	if diff := cmp.Diff([]int{600}, widths); diff != "" {
		t.Errorf("widths mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Viewport(); got != (geom.Size{Width: 600, Height: 400}) {
		t.Errorf("Viewport() = %+v", got)
	}
	if doc.Height() != 400 {
		t.Errorf("Height() = %d, want 400", doc.Height())
	}
}

func TestContainersAndTriggers(t *testing.T) {
	doc := New(320, 480)
	a := doc.Element("a", WithClass(page.ContainerClass), WithAttr(page.NameAttr, "help"))
	b := doc.Element("b", WithClass(page.ContainerClass, "wide"), WithAttr(page.NameAttr, "rates"))
	t1 := doc.Element("t1", WithAttr(page.TargetAttr, "help"))
	t2 := doc.Element("t2", WithAttr(page.TargetAttr, "rates"))
	t3 := doc.Element("t3", WithAttr(page.TargetAttr, "help"))
	doc.Root().Append(a, t1, doc.Element("wrap").Append(t2, t3), b)

	panels := doc.Containers()
	if len(panels) != 2 || panels[0].Name() != "help" || panels[1].Name() != "rates" {
		t.Errorf("Containers() = %v", panels)
	}

	help := doc.Triggers("help")
	if len(help) != 2 || help[0] != tooltip.Element(t1) || help[1] != tooltip.Element(t3) {
		t.Errorf("Triggers(help) = %v, want [t1 t3]", help)
	}
	if got := doc.Triggers("missing"); len(got) != 0 {
		t.Errorf("Triggers(missing) = %v, want none", got)
	}

	t3.Detach()
	if got := doc.Triggers("help"); len(got) != 1 {
		t.Errorf("detached trigger still listed: %v", got)
	}
	if doc.GetElementByID("t3") != nil {
		t.Error("GetElementByID should not return detached nodes")
	}
}

func TestHitTest(t *testing.T) {
	doc := New(320, 480)
	link := doc.Element("link", WithOffset(100, 100), WithSize(50, 20))
	panel := doc.Element("panel", WithPosition(Absolute), WithOffset(90, 90), WithSize(100, 20))
	ghost := doc.Element("ghost", WithOffset(0, 0), WithSize(320, 480), Hidden())
	doc.Root().Append(ghost, panel, link)

	tests := []struct {
		name      string
		top, left int
		want      *Node
	}{
		{"absolute above static", 105, 110, panel},
		{"static below panel", 115, 110, link},
		{"exclusive right edge", 105, 190, nil},
		{"miss", 300, 300, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.HitTest(tt.top, tt.left); got != tt.want {
				t.Errorf("HitTest(%d,%d) = %v, want %v", tt.top, tt.left, got, tt.want)
			}
		})
	}

	if got := doc.ClickAt(300, 300); got != doc.Root() {
		t.Errorf("ClickAt miss = %v, want root", got)
	}
}
