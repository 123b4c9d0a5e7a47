// Package tooltip implements click-triggered tooltip panels: viewport-aware
// placement and the open/close lifecycle.
//
// # Overview
//
// A [Controller] owns one panel bound to one or more trigger elements that
// share the panel's logical name. Clicking a trigger opens the panel above it,
// horizontally centred, with a pointer indicator under the trigger. Clicking
// anywhere else closes it. Resizing the viewport while open recomputes the
// position.
//
// Every controller on a page shares one [Registry]. The registry holds the
// single open controller, and opening another one closes it first, so at most
// one panel is ever visible.
//
// # Collaborators
//
// The package never touches a real rendering surface or event loop. Callers
// supply:
//
//   - [Panel]: the panel's presentation surface plus its logical name
//   - [Element]: trigger geometry
//   - [Viewport]: current viewport width
//   - [Events]: click, outside-click and resize subscriptions
//
// The dom package provides a headless implementation of all four.
//
// # Placement
//
// [Place] is a pure function from trigger/panel/viewport geometry to a
// [Placement]. The panel sits VerticalPadding above the trigger, centred on
// it; the left edge clamp runs first, then the right edge clamp against the
// already clamped value. When a clamp moves the panel, the pointer is moved
// so it stays under the trigger's centre.
//
//	cfg, _ := tooltip.Resolve(tooltip.WithProfile(tooltip.ProfileClassic))
//	p := tooltip.Place(tooltip.Geometry{
//	    TargetLeft: 5, TargetWidth: 20,
//	    PanelWidth: 100, ViewportWidth: 320,
//	}, cfg)
//	// p.Left == 10, p.PointerLeft == 5
//
// # Concurrency
//
// Controllers and the registry are not safe for concurrent use. All calls are
// expected on the single goroutine that delivers UI events.
package tooltip
