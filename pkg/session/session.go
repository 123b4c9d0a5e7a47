// Package session turns a fixture into a live headless page and replays
// scripted user actions against it.
//
// A Session owns one dom.Document and the page.Page bound to it, so every
// session has its own Open-Tooltip Registry. Sessions are not safe for
// concurrent use; the HTTP API builds one per request.
//
//	f, err := session.Load("examples/pages/help.toml")
//	if err != nil {
//	    return err
//	}
//	s, err := session.New(f, session.WithLogger(logger))
//	if err != nil {
//	    logger.Warn("page has binding problems", "err", err)
//	}
//	steps, _ := session.ParseSteps([]string{"click:help-left", "resize:200"})
//	if err := s.Run(ctx, steps); err != nil {
//	    return err
//	}
//	state := s.State()
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tooltipper/pkg/dom"
	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/page"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// PointerClass is the class given to each panel's pointer child.
const PointerClass = "tooltip__pointer"

// Option configures New.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTooltipOptions adds tooltip options applied to every panel after the
// fixture's own configuration.
func WithTooltipOptions(opts ...tooltip.Option) Option {
	return func(s *Session) { s.extra = append(s.extra, opts...) }
}

// Session is a bound page built from a fixture.
type Session struct {
	id      string
	fixture *Fixture
	doc     *dom.Document
	page    *page.Page
	logger  *log.Logger
	extra   []tooltip.Option

	panels   []*dom.Node
	triggers []*dom.Node
	steps    int
}

// New builds the document described by f and binds its tooltips.
//
// Binding problems (a panel without a name, duplicate names, bad per-panel
// config) are returned as an error, but the session is still usable and
// every valid panel is bound. Callers decide whether to treat them as fatal.
func New(f *Fixture, opts ...Option) (*Session, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidFixture, "fixture is nil")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:      uuid.NewString(),
		fixture: f,
		doc:     dom.New(f.Viewport.Width, f.Viewport.Height),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id[:8])
	if err := s.checkPointerIDs(); err != nil {
		return nil, err
	}

	for i, spec := range f.Panels {
		s.panels = append(s.panels, s.buildPanel(i, spec))
	}
	for _, spec := range f.Triggers {
		n := s.doc.Element(spec.ID,
			dom.WithAttr(page.TargetAttr, spec.Target),
			dom.WithText(spec.Label),
			dom.WithOffset(spec.Top, spec.Left),
			dom.WithSize(spec.Width, spec.Height),
		)
		s.doc.Root().Append(n)
		s.triggers = append(s.triggers, n)
	}

	setupOpts := []page.Option{
		page.WithLogger(s.logger),
		page.WithDefaults(append([]tooltip.Option{tooltip.WithOverrides(f.Config)}, s.extra...)...),
	}
	for _, spec := range f.Panels {
		if spec.Name != "" {
			setupOpts = append(setupOpts, page.WithPanelOptions(spec.Name, tooltip.WithOverrides(spec.Config)))
		}
	}

	p, err := page.Setup(s.doc, page.Env{Events: s.doc, Viewport: s.doc}, setupOpts...)
	s.page = p
	s.logger.Debug("session ready", "panels", len(s.panels), "triggers", len(s.triggers), "bound", len(p.Names()))
	return s, err
}

// buildPanel creates the container, its pointer child and, when the panel
// has an origin, the static offset parent it is positioned in.
func (s *Session) buildPanel(i int, spec PanelSpec) *dom.Node {
	id := fmt.Sprintf("tooltip-%d", i)
	if spec.Name != "" && s.doc.GetElementByID("tooltip-"+spec.Name) == nil {
		id = "tooltip-" + spec.Name
	}

	opts := []dom.NodeOption{
		dom.WithClass(page.ContainerClass),
		dom.WithText(spec.Text),
		dom.WithSize(spec.Width, spec.Height),
		dom.WithMargin(spec.Margin),
		dom.WithPosition(dom.Absolute),
	}
	if spec.Name != "" {
		opts = append(opts, dom.WithAttr(page.NameAttr, spec.Name))
	}
	panel := s.doc.Element(id, opts...)

	cfg := s.panelConfig(spec)
	ptrOpts := []dom.NodeOption{
		dom.WithPosition(dom.Absolute),
		dom.WithOffset(spec.Height, 0),
		dom.WithSize(cfg.TriangleWidth, geom.HalfFloor(cfg.TriangleWidth)),
	}
	ptrID := id + "-pointer"
	switch sel := cfg.PointerSelector; {
	case strings.HasPrefix(sel, "#"):
		ptrID = sel[1:]
	case strings.HasPrefix(sel, "."):
		ptrOpts = append(ptrOpts, dom.WithClass(sel[1:]))
	default:
		ptrOpts = append(ptrOpts, dom.WithClass(PointerClass))
	}
	panel.Append(s.doc.Element(ptrID, ptrOpts...))

	parent := s.doc.Root()
	if spec.OriginTop != 0 || spec.OriginLeft != 0 {
		origin := s.doc.Element(id+"-origin", dom.WithOffset(spec.OriginTop, spec.OriginLeft))
		parent.Append(origin)
		parent = origin
	}
	parent.Append(panel)
	return panel
}

// checkPointerIDs rejects an "#id" pointer selector that would give two
// nodes the same id: one shared by several panels, or one naming a trigger.
func (s *Session) checkPointerIDs() error {
	owner := map[string]int{}
	for i, spec := range s.fixture.Panels {
		sel := s.panelConfig(spec).PointerSelector
		if !strings.HasPrefix(sel, "#") {
			continue
		}
		if j, taken := owner[sel[1:]]; taken {
			return errors.New(errors.ErrCodeInvalidFixture,
				"panel[%d] and panel[%d] share pointer_selector %q; an id selector can address one panel only", j, i, sel)
		}
		owner[sel[1:]] = i
	}
	for _, t := range s.fixture.Triggers {
		if i, taken := owner[t.ID]; taken {
			return errors.New(errors.ErrCodeInvalidFixture,
				"trigger %q has the id panel[%d] uses for its pointer", t.ID, i)
		}
	}
	return nil
}

// panelConfig resolves the panel's configuration for building its pointer.
// Errors are ignored here; binding reports them.
func (s *Session) panelConfig(spec PanelSpec) tooltip.Config {
	opts := append([]tooltip.Option{tooltip.WithOverrides(s.fixture.Config)}, s.extra...)
	opts = append(opts, tooltip.WithOverrides(spec.Config))
	cfg, err := tooltip.Resolve(opts...)
	if err != nil {
		cfg, _ = tooltip.Profile(tooltip.DefaultProfile)
	}
	return cfg
}

// Apply performs one step.
func (s *Session) Apply(step Step) error {
	switch step.Kind {
	case StepClick:
		n := s.doc.GetElementByID(step.Target)
		if n == nil {
			return errors.New(errors.ErrCodeNotFound, "no element with id %q", step.Target)
		}
		ev := s.doc.Click(n)
		s.logger.Debug("click", "target", step.Target, "stopped", ev.Stopped())
	case StepOutside:
		s.doc.ClickOutside()
		s.logger.Debug("outside click")
	case StepResize:
		h := step.Height
		if h == 0 {
			h = s.doc.Height()
		}
		s.doc.Resize(step.Width, h)
		s.logger.Debug("resize", "width", step.Width, "height", h)
	default:
		return errors.New(errors.ErrCodeInvalidStep, "unknown step kind %q", step.Kind)
	}
	s.steps++
	return nil
}

// Run applies steps in order, stopping at the first failure or when ctx is
// cancelled.
func (s *Session) Run(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	return nil
}

// ClickAt clicks whatever is at (top, left) and returns the node's id, or
// "root" for empty space.
func (s *Session) ClickAt(top, left int) string {
	n := s.doc.ClickAt(top, left)
	s.steps++
	return n.ID()
}

// Resize changes the viewport size.
func (s *Session) Resize(width, height int) {
	s.doc.Resize(width, height)
	s.steps++
}

// Close unbinds every tooltip.
func (s *Session) Close() {
	s.page.Teardown()
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Fixture returns the fixture the session was built from.
func (s *Session) Fixture() *Fixture { return s.fixture }

// Document returns the underlying document.
func (s *Session) Document() *dom.Document { return s.doc }

// Page returns the bound page.
func (s *Session) Page() *page.Page { return s.page }
