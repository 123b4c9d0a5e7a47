package tooltip

import (
	"fmt"

	"github.com/matzehuels/tooltipper/pkg/geom"
)

// Element is a trigger as seen by placement.
// Detached or hidden elements should report zero offsets and widths.
type Element interface {
	DocumentOffset() geom.Offset
	OuterWidth(includeMargin bool) int
}

// Surface is the presentation capability of a panel.
type Surface interface {
	Show()
	Hide()
	OuterWidth(includeMargin bool) int
	OuterHeight() int
	DocumentOffset() geom.Offset
	RelativePosition() geom.Offset
	SetPosition(top, left int)
	SetChildOffset(selector string, left int)
}

// Panel is a surface carrying the logical name its triggers target.
type Panel interface {
	Surface
	Name() string
}

// Viewport reports the visible width used for edge clamping.
type Viewport interface {
	Width() int
}

// Subscription is a handle on an installed event listener.
// Cancel must be safe to call more than once.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Cancel calls f.
func (f SubscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}

// Event is a click delivered by an Events implementation.
type Event struct {
	Target  Element
	stopped bool
}

// StopPropagation prevents the click from reaching ancestors and the
// document root, so it never counts as an outside click.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// Events delivers host input to controllers.
type Events interface {
	// OnClick subscribes fn to clicks on el.
	OnClick(el Element, fn func(*Event)) Subscription

	// OnOutsideClick subscribes fn to clicks that reach the document root
	// without being stopped.
	OnOutsideClick(fn func(*Event)) Subscription

	// OnResize subscribes fn to viewport size changes.
	OnResize(fn func()) Subscription
}

// describe names an element for logs and hooks.
func describe(el Element) string {
	switch v := el.(type) {
	case nil:
		return ""
	case interface{ ID() string }:
		return v.ID()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%T", el)
}
