package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// Format is a fixture file encoding.
type Format string

// Supported fixture formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultViewport is used when a fixture leaves the viewport unset.
var DefaultViewport = geom.Size{Width: 320, Height: 480}

// Fixture describes a page: its viewport, tooltip panels and triggers.
//
//	profile = "callout"
//
//	[viewport]
//	width = 320
//	height = 480
//
//	[[panel]]
//	name = "help"
//	text = "Rates are updated hourly."
//	width = 100
//	height = 40
//
//	[[trigger]]
//	id = "help-link"
//	target = "help"
//	top = 200
//	left = 5
//	width = 20
//	height = 10
type Fixture struct {
	Viewport geom.Size         `json:"viewport" toml:"viewport" yaml:"viewport"`
	Profile  string            `json:"profile,omitempty" toml:"profile" yaml:"profile"`
	Config   tooltip.Overrides `json:"config" toml:"config" yaml:"config"`
	Panels   []PanelSpec       `json:"panel" toml:"panel" yaml:"panel"`
	Triggers []TriggerSpec     `json:"trigger" toml:"trigger" yaml:"trigger"`
}

// PanelSpec is one tooltip container.
type PanelSpec struct {
	Name   string `json:"name" toml:"name" yaml:"name"`
	Text   string `json:"text,omitempty" toml:"text" yaml:"text"`
	Width  int    `json:"width" toml:"width" yaml:"width"`
	Height int    `json:"height" toml:"height" yaml:"height"`
	Margin int    `json:"margin,omitempty" toml:"margin" yaml:"margin"`

	// OriginTop and OriginLeft place the panel's offset parent. A panel
	// positions itself relative to it.
	OriginTop  int `json:"origin_top,omitempty" toml:"origin_top" yaml:"origin_top"`
	OriginLeft int `json:"origin_left,omitempty" toml:"origin_left" yaml:"origin_left"`

	Config tooltip.Overrides `json:"config" toml:"config" yaml:"config"`
}

// TriggerSpec is one trigger element.
type TriggerSpec struct {
	ID     string `json:"id" toml:"id" yaml:"id"`
	Target string `json:"target" toml:"target" yaml:"target"`
	Label  string `json:"label,omitempty" toml:"label" yaml:"label"`
	Top    int    `json:"top" toml:"top" yaml:"top"`
	Left   int    `json:"left" toml:"left" yaml:"left"`
	Width  int    `json:"width" toml:"width" yaml:"width"`
	Height int    `json:"height" toml:"height" yaml:"height"`
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported fixture extension %q (use .toml, .yaml or .json)", filepath.Ext(path))
	}
}

// Load reads and validates a fixture file.
func Load(path string) (*Fixture, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "fixture %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read fixture %s", path)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a fixture. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Parse(data []byte, format Format) (*Fixture, error) {
	var f Fixture
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFixture, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFixture, "unknown keys: %v", undecoded)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFixture, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFixture, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported fixture format %q", format)
	}

	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) applyDefaults() {
	if f.Viewport.Width == 0 && f.Viewport.Height == 0 {
		f.Viewport = DefaultViewport
	}
	if f.Config.Profile == "" {
		f.Config.Profile = f.Profile
	}
}

// Validate checks structural problems that would make the page meaningless:
// a non-positive viewport, negative sizes, and missing or duplicate trigger
// ids. Tooltip binding problems (unnamed or duplicate panels) are left to
// page setup, which reports them without refusing the page.
func (f *Fixture) Validate() error {
	if f.Viewport.Width <= 0 || f.Viewport.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFixture, "viewport must be positive, got %dx%d", f.Viewport.Width, f.Viewport.Height)
	}
	for i, p := range f.Panels {
		if p.Width < 0 || p.Height < 0 || p.Margin < 0 {
			return errors.New(errors.ErrCodeInvalidFixture, "panel #%d (%q): negative size", i, p.Name)
		}
	}
	seen := make(map[string]bool, len(f.Triggers))
	for i, t := range f.Triggers {
		if err := errors.ValidateName("trigger id", t.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFixture, err, "trigger #%d", i)
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidFixture, "trigger id %q is used more than once", t.ID)
		}
		seen[t.ID] = true
		if t.Width < 0 || t.Height < 0 {
			return errors.New(errors.ErrCodeInvalidFixture, "trigger %q: negative size", t.ID)
		}
	}
	return nil
}
