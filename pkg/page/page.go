// Package page binds every tooltip panel of a document by attribute
// convention and keeps the name → controller mapping for the page session.
//
// A panel is an element with class [ContainerClass] and a [NameAttr]
// attribute; its triggers are the elements whose [TargetAttr] equals that
// name. Several triggers may share one panel.
//
//	p, err := page.Setup(doc, page.Env{Events: doc, Viewport: doc},
//	    page.WithDefaults(tooltip.WithProfile(tooltip.ProfileCallout)),
//	    page.WithLogger(logger),
//	)
//	if err != nil {
//	    logger.Warn("some tooltips were not bound", "err", err)
//	}
//	help, _ := p.Lookup("help")
package page

import (
	stderrors "errors"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// Binding convention.
const (
	ContainerClass = "tooltip__container"
	NameAttr       = "data-tooltip__name"
	TargetAttr     = "data-tooltip__target"
)

// Document is the element discovery the page needs.
type Document interface {
	// Containers returns every panel element in document order.
	Containers() []tooltip.Panel

	// Triggers returns the elements targeting name, in document order.
	Triggers(name string) []tooltip.Element
}

// Env carries the host collaborators shared by all controllers.
type Env struct {
	Events   tooltip.Events
	Viewport tooltip.Viewport
}

// Option configures Setup.
type Option func(*setupConfig)

type setupConfig struct {
	defaults []tooltip.Option
	panels   map[string][]tooltip.Option
	logger   *log.Logger
}

// WithDefaults sets tooltip options applied to every panel.
func WithDefaults(opts ...tooltip.Option) Option {
	return func(c *setupConfig) { c.defaults = append(c.defaults, opts...) }
}

// WithPanelOptions sets tooltip options for the panel called name. They are
// applied after the defaults.
func WithPanelOptions(name string, opts ...tooltip.Option) Option {
	return func(c *setupConfig) { c.panels[name] = append(c.panels[name], opts...) }
}

// WithLogger sets the logger handed to controllers.
func WithLogger(l *log.Logger) Option {
	return func(c *setupConfig) { c.logger = l }
}

// Page owns the registry and controllers of one page session.
type Page struct {
	registry    *tooltip.Registry
	controllers map[string]*tooltip.Controller
	logger      *log.Logger
}

// Setup binds every container in doc. Containers without a name and
// duplicate names are configuration errors: they are skipped and reported in
// the returned error, while every valid container is still bound. The
// returned Page is never nil.
func Setup(doc Document, env Env, opts ...Option) (*Page, error) {
	cfg := setupConfig{panels: map[string][]tooltip.Option{}, logger: log.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Page{
		registry:    tooltip.NewRegistry(),
		controllers: map[string]*tooltip.Controller{},
		logger:      cfg.logger,
	}
	deps := tooltip.Deps{
		Registry: p.registry,
		Events:   env.Events,
		Viewport: env.Viewport,
		Logger:   cfg.logger,
	}

	var errs []error
	for i, panel := range doc.Containers() {
		name := panel.Name()
		if name == "" {
			errs = append(errs, errors.New(errors.ErrCodeInvalidBinding, "container #%d has no %s attribute", i, NameAttr))
			continue
		}
		if err := errors.ValidateName("tooltip name", name); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeInvalidBinding, err, "container #%d", i))
			continue
		}
		if _, dup := p.controllers[name]; dup {
			errs = append(errs, errors.New(errors.ErrCodeDuplicateName, "tooltip %q is declared more than once", name))
			continue
		}

		panel.Hide()
		tipOpts := append(append([]tooltip.Option(nil), cfg.defaults...), cfg.panels[name]...)
		c, err := tooltip.Bind(panel, doc.Triggers(name), deps, tipOpts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p.controllers[name] = c
	}

	for name := range cfg.panels {
		if _, ok := p.controllers[name]; !ok {
			p.logger.Warn("options given for unknown tooltip", "tooltip", name)
		}
	}

	p.logger.Debug("page bound", "tooltips", len(p.controllers), "errors", len(errs))
	return p, stderrors.Join(errs...)
}

// Lookup returns the controller bound to name.
func (p *Page) Lookup(name string) (*tooltip.Controller, bool) {
	c, ok := p.controllers[name]
	return c, ok
}

// Names returns the bound tooltip names in sorted order.
func (p *Page) Names() []string {
	names := make([]string, 0, len(p.controllers))
	for name := range p.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the open controller, or nil.
func (p *Page) Current() *tooltip.Controller {
	c, _ := p.registry.Current().(*tooltip.Controller)
	return c
}

// Open opens the named tooltip for trigger.
func (p *Page) Open(name string, trigger tooltip.Element) error {
	c, ok := p.Lookup(name)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no tooltip named %q", name)
	}
	return c.Open(trigger)
}

// CloseAll closes whichever tooltip is open.
func (p *Page) CloseAll() {
	if c := p.Current(); c != nil {
		c.Close()
	}
}

// Teardown unbinds every controller, as on page unload.
func (p *Page) Teardown() {
	for _, name := range p.Names() {
		p.controllers[name].Unbind()
	}
	p.controllers = map[string]*tooltip.Controller{}
	p.logger.Debug("page torn down")
}
