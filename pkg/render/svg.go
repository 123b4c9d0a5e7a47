package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/session"
)

const svgCSS = `
    .viewport { fill: #fafafa; stroke: #888; }
    .guide { stroke: #e57373; stroke-dasharray: 4 3; }
    .trigger { fill: #e3f2fd; stroke: #1e88e5; }
    .trigger.active { fill: #1e88e5; }
    .panel { fill: #263238; stroke: #000; }
    .panel.closed { fill: none; stroke: #bbb; stroke-dasharray: 3 3; }
    .pointer { fill: #263238; }
    text { font-family: sans-serif; font-size: 10px; }
    .panel-text { fill: #fff; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	closed bool
	guides bool
	title  string
}

func WithScale(s float64) SVGOption    { return func(r *svgRenderer) { r.scale = s } }
func WithClosedPanels() SVGOption      { return func(r *svgRenderer) { r.closed = true } }
func WithoutGuides() SVGOption         { return func(r *svgRenderer) { r.guides = false } }
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws the viewport, every trigger and the open panel with its
// pointer. Coordinates are document pixels multiplied by the scale.
func RenderSVG(st session.State, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1, guides: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w, h := r.px(st.Viewport.Width), r.px(st.Viewport.Height)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	fmt.Fprintf(&buf, `  <rect class="viewport" x="0" y="0" width="%.1f" height="%.1f"/>`+"\n", w, h)

	open, isOpen := st.OpenPanel()
	if r.guides && isOpen {
		pad := r.px(open.Config.PagePadding)
		fmt.Fprintf(&buf, `  <line class="guide" x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", pad, pad, h)
		fmt.Fprintf(&buf, `  <line class="guide" x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", w-pad, w-pad, h)
	}

	for _, t := range st.Triggers {
		class := "trigger"
		if isOpen && open.ActiveTrigger == t.ID {
			class += " active"
		}
		fmt.Fprintf(&buf, `  <rect id="%s" class="%s" data-target="%s" %s/>`+"\n",
			escapeXML(t.ID), class, escapeXML(t.Target), r.rectAttrs(t.Rect))
		if t.Label != "" {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
				r.px(t.Rect.CenterX()), r.px(t.Rect.Top)-2, escapeXML(t.Label))
		}
	}

	for _, p := range st.Panels {
		switch {
		case p.Open:
			r.renderPanel(&buf, p)
		case r.closed && p.Bound:
			fmt.Fprintf(&buf, `  <rect id="%s" class="panel closed" data-tooltip-name="%s" %s/>`+"\n",
				escapeXML(p.ID), escapeXML(p.Name), r.rectAttrs(p.Rect))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderPanel(buf *bytes.Buffer, p session.PanelState) {
	fmt.Fprintf(buf, `  <g class="tooltip" data-tooltip-name="%s" data-clamp="%s">`+"\n", escapeXML(p.Name), p.Clamp)
	fmt.Fprintf(buf, `    <rect id="%s" class="panel" rx="3" %s/>`+"\n", escapeXML(p.ID), r.rectAttrs(p.Rect))
	if p.Text != "" {
		fmt.Fprintf(buf, `    <text class="panel-text" x="%.1f" y="%.1f">%s</text>`+"\n",
			r.px(p.Rect.Left)+4, r.px(p.Rect.Top)+12, escapeXML(p.Text))
	}

	tw := max(p.PointerWidth, 1)
	x0 := r.px(p.Rect.Left + p.PointerLeft)
	x1 := r.px(p.Rect.Left + p.PointerLeft + tw)
	tip := r.px(p.Rect.Left+p.PointerLeft) + r.px(tw)/2
	y0 := r.px(p.Rect.Bottom())
	y1 := y0 + r.px(max(geom.HalfFloor(tw), 1))
	fmt.Fprintf(buf, `    <polygon class="pointer" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n", x0, y0, x1, y0, tip, y1)
	buf.WriteString("  </g>\n")
}

func (r svgRenderer) px(v int) float64 { return float64(v) * r.scale }

func (r svgRenderer) rectAttrs(rect geom.Rect) string {
	return fmt.Sprintf(`x="%.1f" y="%.1f" width="%.1f" height="%.1f"`,
		r.px(rect.Left), r.px(rect.Top), r.px(rect.Width), r.px(rect.Height))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
