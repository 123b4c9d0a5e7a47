package tooltip

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/observability"
)

// Deps are the page-level collaborators every controller needs.
type Deps struct {
	Registry *Registry
	Events   Events
	Viewport Viewport

	// Logger receives debug output; nil means log.Default().
	Logger *log.Logger
}

// Controller manages one panel's visibility and position relative to the
// trigger that opened it.
//
// Invariant: ActiveTrigger() != nil exactly when IsOpen().
type Controller struct {
	id       string
	name     string
	panel    Panel
	triggers []Element
	cfg      Config

	registry *Registry
	events   Events
	viewport Viewport
	logger   *log.Logger

	open   bool
	active Element
	last   Placement

	clicks  []Subscription
	resize  Subscription
	outside Subscription
}

// Bind associates panel with its triggers and installs a click subscription
// on every trigger plus one resize subscription.
//
// Options are merged over the profile defaults (see Resolve). A panel with an
// empty name is a configuration error; a panel with no triggers is not.
func Bind(panel Panel, triggers []Element, deps Deps, opts ...Option) (*Controller, error) {
	if panel == nil {
		return nil, errors.New(errors.ErrCodeInvalidBinding, "panel is nil")
	}
	name := panel.Name()
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidBinding, "panel has no logical name")
	}
	if deps.Registry == nil || deps.Events == nil || deps.Viewport == nil {
		return nil, errors.New(errors.ErrCodeInvalidBinding, "tooltip %q: registry, events and viewport are required", name)
	}

	cfg, err := Resolve(opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "tooltip %q", name)
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		id:       uuid.NewString(),
		name:     name,
		panel:    panel,
		triggers: append([]Element(nil), triggers...),
		cfg:      cfg,
		registry: deps.Registry,
		events:   deps.Events,
		viewport: deps.Viewport,
	}
	c.logger = logger.With("tooltip", name)

	for _, t := range c.triggers {
		c.clicks = append(c.clicks, c.events.OnClick(t, c.clickHandler(t)))
	}
	c.resize = c.events.OnResize(c.onResize)

	if len(c.triggers) == 0 {
		c.logger.Debug("bound without triggers")
	} else {
		c.logger.Debug("bound", "triggers", len(c.triggers), "id", c.id)
	}
	observability.Tooltip().OnBind(name, len(c.triggers))
	return c, nil
}

func (c *Controller) clickHandler(t Element) func(*Event) {
	return func(ev *Event) {
		if err := c.Open(t); err != nil {
			c.logger.Warn("open failed", "err", err)
		}
		ev.StopPropagation()
	}
}

func (c *Controller) onResize() {
	if c.open {
		c.Reposition()
	}
}

func (c *Controller) onOutsideClick(*Event) {
	c.logger.Debug("outside click")
	c.Close()
}

// Open shows the panel for trigger, closing whichever tooltip is open.
//
// The sequence is fixed: registry closure, state update, show, placement,
// outside-click arming. Opening an already open controller re-runs all of it.
func (c *Controller) Open(trigger Element) error {
	if !c.bound(trigger) {
		return errors.New(errors.ErrCodeInvalidTrigger, "tooltip %q: %q is not a bound trigger", c.name, describe(trigger))
	}

	c.registry.RegisterOpen(c)
	c.open = true
	c.active = trigger
	c.panel.Show()
	c.place()

	if c.outside != nil {
		c.outside.Cancel()
	}
	c.outside = c.events.OnOutsideClick(c.onOutsideClick)

	c.logger.Debug("opened", "trigger", describe(trigger))
	observability.Tooltip().OnOpen(c.name, describe(trigger))
	return nil
}

// Close hides the panel. Closing a closed controller only re-hides it.
func (c *Controller) Close() {
	c.panel.Hide()
	if !c.open {
		return
	}

	c.open = false
	c.active = nil
	if c.outside != nil {
		c.outside.Cancel()
		c.outside = nil
	}
	c.registry.Release(c)

	c.logger.Debug("closed")
	observability.Tooltip().OnClose(c.name)
}

// Reposition recomputes and applies placement for the active trigger.
// It reports false and does nothing when the controller is closed.
func (c *Controller) Reposition() (Placement, bool) {
	if !c.open || c.active == nil {
		return Placement{}, false
	}
	return c.place(), true
}

// Unbind closes the controller and cancels every subscription it installed.
// The controller must not be used afterwards.
func (c *Controller) Unbind() {
	c.Close()
	for _, s := range c.clicks {
		s.Cancel()
	}
	c.clicks = nil
	if c.resize != nil {
		c.resize.Cancel()
		c.resize = nil
	}
	c.logger.Debug("unbound")
}

func (c *Controller) place() Placement {
	g := Geometry{
		TargetTop:     c.active.DocumentOffset().Top,
		TargetLeft:    c.active.DocumentOffset().Left,
		TargetWidth:   c.active.OuterWidth(false),
		PanelWidth:    c.panel.OuterWidth(true),
		PanelHeight:   c.panel.OuterHeight(),
		ViewportWidth: c.viewport.Width(),
	}
	p := Place(g, c.cfg)

	pos := ToSurface(p, c.panel.DocumentOffset(), c.panel.RelativePosition())
	c.panel.SetPosition(pos.Top, pos.Left)
	c.panel.SetChildOffset(c.cfg.PointerSelector, p.PointerLeft)
	c.last = p

	c.logger.Debug("placed", "top", p.Top, "left", p.Left, "pointer", p.PointerLeft, "clamp", p.Clamp)
	observability.Tooltip().OnPlace(c.name, p.Clamp.String())
	return p
}

func (c *Controller) bound(el Element) bool {
	if el == nil {
		return false
	}
	for _, t := range c.triggers {
		if t == el {
			return true
		}
	}
	return false
}

// Name returns the panel's logical name.
func (c *Controller) Name() string { return c.name }

// ID returns the instance ID used in logs.
func (c *Controller) ID() string { return c.id }

// IsOpen reports whether the panel is shown.
func (c *Controller) IsOpen() bool { return c.open }

// ActiveTrigger returns the trigger that opened the panel, or nil when closed.
func (c *Controller) ActiveTrigger() Element { return c.active }

// Config returns the merged configuration.
func (c *Controller) Config() Config { return c.cfg }

// Panel returns the bound panel.
func (c *Controller) Panel() Panel { return c.panel }

// Triggers returns a copy of the bound triggers.
func (c *Controller) Triggers() []Element {
	return append([]Element(nil), c.triggers...)
}

// LastPlacement returns the most recently applied placement. It is only
// meaningful while the controller is open.
func (c *Controller) LastPlacement() Placement { return c.last }
