// Package pkg provides the core libraries for Tooltipper, a click-triggered
// tooltip widget that runs against a headless page model.
//
// # Overview
//
// A tooltip panel is named by a data attribute, opened by clicking any
// trigger that targets it and positioned above the trigger with a small
// pointer aimed at the trigger's center. At most one tooltip is open per
// page, and a click anywhere outside closes it. The pkg directory is
// organized into these areas:
//
//  1. [geom] - Integer rectangles, offsets and sizes in document pixels
//  2. [tooltip] - Placement, configuration profiles, the per-panel
//     controller and the Open-Tooltip Registry
//  3. [dom] - A minimal headless document with click propagation and resize
//  4. [page] - Discovers panels and triggers in a document and binds them
//  5. [session] - Fixture loading (TOML, YAML, JSON) and scripted replays
//  6. [render] - Text, SVG and JSON renderings of a session snapshot
//  7. [cache] - Result caches (null, memory, file, Redis)
//  8. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// The typical data flow:
//
//	Fixture file (.toml / .yaml / .json)
//	         ↓
//	    [session] package (build document, replay steps)
//	         ↓
//	    [page] + [tooltip] packages (bind, open, place, close)
//	         ↓
//	    [render] package (snapshot → text / SVG / JSON)
//
// # Quick Start
//
// Compute a placement directly:
//
//	cfg, _ := tooltip.Resolve(tooltip.WithProfile(tooltip.ProfileClassic))
//	p := tooltip.Place(tooltip.Geometry{
//	    TargetTop: 200, TargetLeft: 300, TargetWidth: 20,
//	    PanelWidth: 100, PanelHeight: 40, ViewportWidth: 320,
//	}, cfg)
//	// p.Top == 150, p.Left == 210, p.PointerLeft == 100, p.Clamp == tooltip.ClampRight
//
// Replay a fixture and render it:
//
//	f, _ := session.Load("examples/pages/help.toml")
//	s, _ := session.New(f)
//	steps, _ := session.ParseSteps([]string{"click:help-right"})
//	_ = s.Run(ctx, steps)
//	fmt.Println(render.RenderText(s.State()))
//
// # Testing
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/tooltip/...        # Placement and state machine
//	go test -run Example ./pkg/...   # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/geom
// [tooltip]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/tooltip
// [dom]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/dom
// [page]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/page
// [session]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/session
// [render]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tooltipper/pkg/buildinfo
package pkg
