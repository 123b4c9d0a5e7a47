package dom

import (
	"slices"

	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/page"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

type listener struct {
	fn        func(*tooltip.Event)
	cancelled bool
}

// Document is a tree of nodes plus the event plumbing around it.
// It is not safe for concurrent use.
type Document struct {
	root     *Node
	byID     map[string]*Node
	viewport geom.Size

	clicks  map[*Node][]*listener
	outside []*listener
	resize  []*listener
}

// New returns an empty document with the given viewport size.
func New(width, height int) *Document {
	d := &Document{
		byID:     map[string]*Node{},
		viewport: geom.Size{Width: width, Height: height},
		clicks:   map[*Node][]*listener{},
	}
	d.root = &Node{doc: d, id: "root", attrs: map[string]string{}}
	return d
}

// Root returns the document root. Clicks that reach it are outside clicks.
func (d *Document) Root() *Node { return d.root }

// Element creates a detached node. Attach it with Node.Append.
func (d *Document) Element(id string, opts ...NodeOption) *Node {
	n := &Node{doc: d, id: id, attrs: map[string]string{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// GetElementByID returns the attached node with id, or nil.
func (d *Document) GetElementByID(id string) *Node {
	n := d.byID[id]
	if n == nil || !n.Attached() {
		return nil
	}
	return n
}

// Walk visits attached nodes in document order, root excluded.
func (d *Document) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		for _, c := range n.children {
			fn(c)
			visit(c)
		}
	}
	visit(d.root)
}

// QueryClass returns attached nodes carrying class, in document order.
func (d *Document) QueryClass(class string) []*Node {
	var out []*Node
	d.Walk(func(n *Node) {
		if n.HasClass(class) {
			out = append(out, n)
		}
	})
	return out
}

// QueryAttr returns attached nodes whose attribute key equals value.
func (d *Document) QueryAttr(key, value string) []*Node {
	var out []*Node
	d.Walk(func(n *Node) {
		if v, ok := n.attrs[key]; ok && v == value {
			out = append(out, n)
		}
	})
	return out
}

// Containers implements page.Document.
func (d *Document) Containers() []tooltip.Panel {
	nodes := d.QueryClass(page.ContainerClass)
	panels := make([]tooltip.Panel, len(nodes))
	for i, n := range nodes {
		panels[i] = n
	}
	return panels
}

// Triggers implements page.Document.
func (d *Document) Triggers(name string) []tooltip.Element {
	nodes := d.QueryAttr(page.TargetAttr, name)
	els := make([]tooltip.Element, len(nodes))
	for i, n := range nodes {
		els[i] = n
	}
	return els
}

// =============================================================================
// Viewport
// =============================================================================

// Width implements tooltip.Viewport.
func (d *Document) Width() int { return d.viewport.Width }

// Height returns the viewport height.
func (d *Document) Height() int { return d.viewport.Height }

// Viewport returns the viewport size.
func (d *Document) Viewport() geom.Size { return d.viewport }

// Resize changes the viewport and notifies resize listeners.
func (d *Document) Resize(width, height int) {
	d.viewport = geom.Size{Width: width, Height: height}
	d.deliver(d.resize, nil)
}

// =============================================================================
// Events
// =============================================================================

// OnClick implements tooltip.Events. Elements that are not nodes of this
// document never receive clicks; the returned subscription is inert.
func (d *Document) OnClick(el tooltip.Element, fn func(*tooltip.Event)) tooltip.Subscription {
	n, ok := el.(*Node)
	if !ok || n.doc != d {
		return tooltip.SubscriptionFunc(nil)
	}
	l := &listener{fn: fn}
	d.clicks[n] = append(d.clicks[n], l)
	return tooltip.SubscriptionFunc(func() {
		l.cancelled = true
		d.clicks[n] = remove(d.clicks[n], l)
		if len(d.clicks[n]) == 0 {
			delete(d.clicks, n)
		}
	})
}

// OnOutsideClick implements tooltip.Events.
func (d *Document) OnOutsideClick(fn func(*tooltip.Event)) tooltip.Subscription {
	l := &listener{fn: fn}
	d.outside = append(d.outside, l)
	return tooltip.SubscriptionFunc(func() {
		l.cancelled = true
		d.outside = remove(d.outside, l)
	})
}

// OnResize implements tooltip.Events.
func (d *Document) OnResize(fn func()) tooltip.Subscription {
	l := &listener{fn: func(*tooltip.Event) { fn() }}
	d.resize = append(d.resize, l)
	return tooltip.SubscriptionFunc(func() {
		l.cancelled = true
		d.resize = remove(d.resize, l)
	})
}

// Click dispatches a click on n, bubbling towards the root. It returns the
// event so callers can tell whether it was stopped.
func (d *Document) Click(n *Node) *tooltip.Event {
	ev := &tooltip.Event{Target: n}
	for cur := n; cur != nil && cur != d.root; cur = cur.parent {
		d.deliver(d.clicks[cur], ev)
		if ev.Stopped() {
			return ev
		}
	}
	d.deliver(d.outside, ev)
	return ev
}

// ClickOutside dispatches a click on the document root.
func (d *Document) ClickOutside() *tooltip.Event {
	return d.Click(d.root)
}

// ClickAt hit-tests (top, left) and clicks the node found there, or the root.
// It returns the node that received the click.
func (d *Document) ClickAt(top, left int) *Node {
	n := d.HitTest(top, left)
	if n == nil {
		n = d.root
	}
	d.Click(n)
	return n
}

// HitTest returns the topmost visible node containing (top, left).
// Absolute nodes paint above static ones; later nodes paint above earlier ones.
func (d *Document) HitTest(top, left int) *Node {
	var static, absolute []*Node
	d.Walk(func(n *Node) {
		if !n.Visible() || n.size.Empty() {
			return
		}
		if n.position == Absolute {
			absolute = append(absolute, n)
		} else {
			static = append(static, n)
		}
	})
	for _, layer := range [][]*Node{absolute, static} {
		for i := len(layer) - 1; i >= 0; i-- {
			if layer[i].Rect().Contains(top, left) {
				return layer[i]
			}
		}
	}
	return nil
}

// ListenerCounts reports active click, outside-click and resize listeners.
func (d *Document) ListenerCounts() (clicks, outside, resize int) {
	for _, ls := range d.clicks {
		clicks += len(ls)
	}
	return clicks, len(d.outside), len(d.resize)
}

func (d *Document) deliver(ls []*listener, ev *tooltip.Event) {
	for _, l := range slices.Clone(ls) {
		if !l.cancelled {
			l.fn(ev)
		}
	}
}

func remove(ls []*listener, l *listener) []*listener {
	return slices.DeleteFunc(ls, func(x *listener) bool { return x == l })
}
