package dom

import (
	"slices"
	"strings"

	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/page"
)

// Position selects how a node's offset is interpreted.
type Position uint8

const (
	// Static nodes store their document offset directly.
	Static Position = iota
	// Absolute nodes store an offset relative to their parent's document offset.
	Absolute
)

// Node is an element in a Document.
type Node struct {
	doc      *Document
	id       string
	classes  []string
	attrs    map[string]string
	text     string
	parent   *Node
	children []*Node

	position Position
	offset   geom.Offset
	size     geom.Size
	margin   int
	hidden   bool
}

// NodeOption configures a node created by Document.Element.
type NodeOption func(*Node)

// WithClass adds CSS-like classes.
func WithClass(classes ...string) NodeOption {
	return func(n *Node) { n.classes = append(n.classes, classes...) }
}

// WithAttr sets an attribute.
func WithAttr(key, value string) NodeOption {
	return func(n *Node) { n.attrs[key] = value }
}

// WithText sets the node's text content.
func WithText(text string) NodeOption {
	return func(n *Node) { n.text = text }
}

// WithSize sets the border-box size.
func WithSize(width, height int) NodeOption {
	return func(n *Node) { n.size = geom.Size{Width: width, Height: height} }
}

// WithOffset sets the offset (document-relative for static nodes).
func WithOffset(top, left int) NodeOption {
	return func(n *Node) { n.offset = geom.Offset{Top: top, Left: left} }
}

// WithMargin sets a uniform horizontal margin.
func WithMargin(px int) NodeOption {
	return func(n *Node) { n.margin = px }
}

// WithPosition sets the positioning scheme.
func WithPosition(p Position) NodeOption {
	return func(n *Node) { n.position = p }
}

// Hidden creates the node hidden.
func Hidden() NodeOption {
	return func(n *Node) { n.hidden = true }
}

// ID returns the node's id.
func (n *Node) ID() string { return n.id }

func (n *Node) String() string { return "#" + n.id }

// Text returns the node's text content.
func (n *Node) Text() string { return n.text }

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(key, value string) { n.attrs[key] = value }

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Matches reports whether the node matches a ".class" or "#id" selector.
// A bare word matches either.
func (n *Node) Matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "."):
		return n.HasClass(selector[1:])
	case strings.HasPrefix(selector, "#"):
		return n.id == selector[1:]
	default:
		return n.id == selector || n.HasClass(selector)
	}
}

// Name returns the tooltip name attribute; it makes a container a tooltip.Panel.
func (n *Node) Name() string {
	v, _ := n.Attr(page.NameAttr)
	return v
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Append attaches children to n, detaching them from any previous parent.
// It returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
		if c.id != "" {
			n.doc.byID[c.id] = c
		}
	}
	return n
}

// Detach removes n from its parent. Detached nodes report zero geometry.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	n.parent.children = slices.DeleteFunc(n.parent.children, func(c *Node) bool { return c == n })
	n.parent = nil
	if n.doc.byID[n.id] == n {
		delete(n.doc.byID, n.id)
	}
}

// Attached reports whether n is reachable from the document root.
func (n *Node) Attached() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.root {
			return true
		}
	}
	return false
}

// Visible reports whether n is attached and neither it nor an ancestor is hidden.
func (n *Node) Visible() bool {
	if !n.Attached() {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur.hidden {
			return false
		}
	}
	return true
}

// Hidden reports the node's own hidden flag.
func (n *Node) Hidden() bool { return n.hidden }

// Show clears the hidden flag.
func (n *Node) Show() { n.hidden = false }

// Hide sets the hidden flag.
func (n *Node) Hide() { n.hidden = true }

// DocumentOffset returns the border-box offset from the document origin.
func (n *Node) DocumentOffset() geom.Offset {
	if !n.Visible() {
		return geom.Offset{}
	}
	return n.documentOffset()
}

func (n *Node) documentOffset() geom.Offset {
	if n.position == Absolute && n.parent != nil {
		return n.parent.documentOffset().Add(n.offset)
	}
	return n.offset
}

// RelativePosition returns the offset inside the node's positioning context.
func (n *Node) RelativePosition() geom.Offset {
	if !n.Visible() {
		return geom.Offset{}
	}
	return n.offset
}

// SetPosition moves the node within its positioning context.
func (n *Node) SetPosition(top, left int) {
	n.offset = geom.Offset{Top: top, Left: left}
}

// SetChildOffset sets the left offset of every child matching selector.
func (n *Node) SetChildOffset(selector string, left int) {
	for _, c := range n.children {
		if c.Matches(selector) {
			c.offset.Left = left
		}
	}
}

// OuterWidth returns the border-box width, plus both margins if asked.
func (n *Node) OuterWidth(includeMargin bool) int {
	if !n.Visible() {
		return 0
	}
	if includeMargin {
		return n.size.Width + 2*n.margin
	}
	return n.size.Width
}

// OuterHeight returns the border-box height.
func (n *Node) OuterHeight() int {
	if !n.Visible() {
		return 0
	}
	return n.size.Height
}

// Rect returns the document rect regardless of visibility.
func (n *Node) Rect() geom.Rect {
	return geom.Rect{Offset: n.documentOffset(), Size: n.size}
}

// Position returns the positioning scheme.
func (n *Node) Position() Position { return n.position }
