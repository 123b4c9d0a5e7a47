package tooltip

import (
	"sort"

	"github.com/matzehuels/tooltipper/pkg/errors"
)

// Profile names for the built-in configurations.
const (
	ProfileClassic  = "classic"  // small inline help tooltips
	ProfileCallout  = "callout"  // larger callouts with a wider pointer
	ProfileTerminal = "terminal" // cell units for terminal rendering
)

// DefaultProfile is used when no profile is named.
const DefaultProfile = ProfileClassic

// DefaultPointerSelector addresses the pointer indicator inside a panel.
const DefaultPointerSelector = ".tooltip__pointer"

// Config holds the placement settings of one tooltip.
type Config struct {
	// PagePadding is the minimum gap between the panel and the viewport edges.
	PagePadding int `json:"page_padding" toml:"page_padding" yaml:"page_padding"`

	// VerticalPadding is the gap between the panel's bottom and the trigger's top.
	VerticalPadding int `json:"vertical_padding" toml:"vertical_padding" yaml:"vertical_padding"`

	// TriangleWidth is the width of the pointer indicator.
	TriangleWidth int `json:"triangle_width" toml:"triangle_width" yaml:"triangle_width"`

	// BorderWidth is accepted for compatibility; placement ignores it.
	BorderWidth int `json:"border_width" toml:"border_width" yaml:"border_width"`

	// PointerSelector selects the pointer child passed to Surface.SetChildOffset.
	PointerSelector string `json:"pointer_selector" toml:"pointer_selector" yaml:"pointer_selector"`
}

var profiles = map[string]Config{
	ProfileClassic: {
		PagePadding:     10,
		VerticalPadding: 10,
		TriangleWidth:   6,
		BorderWidth:     1,
		PointerSelector: DefaultPointerSelector,
	},
	ProfileCallout: {
		PagePadding:     10,
		VerticalPadding: 22,
		TriangleWidth:   12,
		BorderWidth:     1,
		PointerSelector: DefaultPointerSelector,
	},
	ProfileTerminal: {
		PagePadding:     2,
		VerticalPadding: 1,
		TriangleWidth:   1,
		PointerSelector: DefaultPointerSelector,
	},
}

// Profile returns the named built-in configuration.
func Profile(name string) (Config, bool) {
	cfg, ok := profiles[name]
	return cfg, ok
}

// Profiles returns the built-in profile names in sorted order.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that all distances are non-negative.
func (c Config) Validate() error {
	checks := []struct {
		field string
		v     int
	}{
		{"page_padding", c.PagePadding},
		{"vertical_padding", c.VerticalPadding},
		{"triangle_width", c.TriangleWidth},
		{"border_width", c.BorderWidth},
	}
	for _, check := range checks {
		if err := errors.ValidateNonNegative(check.field, check.v); err != nil {
			return err
		}
	}
	return nil
}

// Overrides is a partial Config. Nil fields keep the underlying value.
// Fixture files and API requests decode into Overrides so that only the
// settings they name replace profile defaults.
type Overrides struct {
	Profile         string  `json:"profile,omitempty" toml:"profile" yaml:"profile"`
	PagePadding     *int    `json:"page_padding,omitempty" toml:"page_padding" yaml:"page_padding"`
	VerticalPadding *int    `json:"vertical_padding,omitempty" toml:"vertical_padding" yaml:"vertical_padding"`
	TriangleWidth   *int    `json:"triangle_width,omitempty" toml:"triangle_width" yaml:"triangle_width"`
	BorderWidth     *int    `json:"border_width,omitempty" toml:"border_width" yaml:"border_width"`
	PointerSelector *string `json:"pointer_selector,omitempty" toml:"pointer_selector" yaml:"pointer_selector"`
}

// Option adjusts a Config during Resolve.
type Option func(*settings)

type settings struct {
	profile string
	edits   []func(*Config)
}

// WithProfile selects the base profile. Later options still override it.
func WithProfile(name string) Option {
	return func(s *settings) { s.profile = name }
}

// WithPagePadding sets the minimum gap to the viewport edges.
func WithPagePadding(px int) Option {
	return edit(func(c *Config) { c.PagePadding = px })
}

// WithVerticalPadding sets the gap between trigger and panel.
func WithVerticalPadding(px int) Option {
	return edit(func(c *Config) { c.VerticalPadding = px })
}

// WithTriangleWidth sets the pointer indicator width.
func WithTriangleWidth(px int) Option {
	return edit(func(c *Config) { c.TriangleWidth = px })
}

// WithBorderWidth sets the reserved border width.
func WithBorderWidth(px int) Option {
	return edit(func(c *Config) { c.BorderWidth = px })
}

// WithPointerSelector sets the selector used to move the pointer indicator.
func WithPointerSelector(sel string) Option {
	return edit(func(c *Config) { c.PointerSelector = sel })
}

// WithOverrides applies every non-nil field of o. A non-empty o.Profile
// selects the base profile.
func WithOverrides(o Overrides) Option {
	return func(s *settings) {
		if o.Profile != "" {
			s.profile = o.Profile
		}
		s.edits = append(s.edits, func(c *Config) {
			if o.PagePadding != nil {
				c.PagePadding = *o.PagePadding
			}
			if o.VerticalPadding != nil {
				c.VerticalPadding = *o.VerticalPadding
			}
			if o.TriangleWidth != nil {
				c.TriangleWidth = *o.TriangleWidth
			}
			if o.BorderWidth != nil {
				c.BorderWidth = *o.BorderWidth
			}
			if o.PointerSelector != nil {
				c.PointerSelector = *o.PointerSelector
			}
		})
	}
}

func edit(fn func(*Config)) Option {
	return func(s *settings) { s.edits = append(s.edits, fn) }
}

// Resolve merges options over a profile. The profile is chosen by the last
// WithProfile/WithOverrides naming one, or DefaultProfile. Explicit settings
// are applied in order on top of it, so they always win over the profile.
func Resolve(opts ...Option) (Config, error) {
	s := settings{profile: DefaultProfile}
	for _, opt := range opts {
		opt(&s)
	}

	cfg, ok := Profile(s.profile)
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown profile %q (available: %v)", s.profile, Profiles())
	}
	for _, fn := range s.edits {
		fn(&cfg)
	}
	if cfg.PointerSelector == "" {
		cfg.PointerSelector = DefaultPointerSelector
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
