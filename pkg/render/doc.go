// Package render turns a session snapshot into output.
//
// # Formats
//
//   - [RenderJSON]: the snapshot as JSON, for scripts and the HTTP API
//   - [RenderSVG]: a drawing of the viewport with triggers, the open panel
//     and its pointer, plus the page-padding guides that clamping respects
//   - [RenderText]: a character grid; the terminal demo draws its frames
//     with it
//
// [Render] dispatches on a [Format] name.
//
//	st := s.State()
//	svg := render.RenderSVG(st, render.WithScale(2))
//	txt := render.RenderText(st, render.WithCellSize(8, 16))
package render

import (
	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/session"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatText Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatSVG, FormatText}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseFormat validates a format name. An empty name selects JSON.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, svg or text)", name)
}

// Render renders st in format f with default options.
func Render(f Format, st session.State) ([]byte, error) {
	switch f {
	case FormatJSON:
		return RenderJSON(st)
	case FormatSVG:
		return RenderSVG(st), nil
	case FormatText:
		return []byte(RenderText(st)), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}
