package tooltip

import "github.com/matzehuels/tooltipper/pkg/geom"

// Geometry is the input to Place. Target coordinates are document-relative.
type Geometry struct {
	TargetTop   int `json:"target_top"`
	TargetLeft  int `json:"target_left"`
	TargetWidth int `json:"target_width"`

	// PanelWidth is the panel's outer width including margins.
	PanelWidth  int `json:"panel_width"`
	PanelHeight int `json:"panel_height"`

	ViewportWidth int `json:"viewport_width"`
}

// TargetCenter returns the trigger's floored horizontal centre.
func (g Geometry) TargetCenter() int {
	return g.TargetLeft + geom.HalfFloor(g.TargetWidth)
}

// Clamp records which viewport edge clamps moved the panel.
type Clamp uint8

const (
	ClampNone  Clamp = 0
	ClampLeft  Clamp = 1 << 0
	ClampRight Clamp = 1 << 1
)

// String returns "none", "left", "right" or "both".
func (c Clamp) String() string {
	switch c {
	case ClampNone:
		return "none"
	case ClampLeft:
		return "left"
	case ClampRight:
		return "right"
	case ClampLeft | ClampRight:
		return "both"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c Clamp) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Placement is the computed document-relative panel position and the
// pointer's offset from the panel's left edge.
type Placement struct {
	Top         int   `json:"top"`
	Left        int   `json:"left"`
	PointerLeft int   `json:"pointer_left"`
	Clamp       Clamp `json:"clamp"`
}

// Offset returns the panel's top-left corner.
func (p Placement) Offset() geom.Offset {
	return geom.Offset{Top: p.Top, Left: p.Left}
}

// Place computes where a panel goes for the given geometry.
//
// The panel is put VerticalPadding above the trigger and centred on it, and
// the pointer is centred under the panel. Then, in this order:
//
//  1. if left < PagePadding the panel is pinned to PagePadding;
//  2. if left+PanelWidth >= ViewportWidth-PagePadding (using the left value
//     from step 1) the panel is pinned to the right edge.
//
// Whenever a clamp fires the pointer is recomputed as targetCenter-left so it
// stays under the trigger. A panel wider than the viewport triggers both
// clamps and ends up right-pinned.
func Place(g Geometry, cfg Config) Placement {
	top := g.TargetTop - g.PanelHeight - cfg.VerticalPadding
	left := g.TargetLeft + geom.HalfFloor(g.TargetWidth) - geom.HalfFloor(g.PanelWidth)
	pointer := geom.HalfFloor(g.PanelWidth) - geom.HalfFloor(cfg.TriangleWidth)
	center := g.TargetCenter()
	clamp := ClampNone

	if left < cfg.PagePadding {
		left = cfg.PagePadding
		pointer = center - left
		clamp |= ClampLeft
	}

	if right := left + g.PanelWidth; right >= g.ViewportWidth-cfg.PagePadding {
		left = g.ViewportWidth - (g.PanelWidth + cfg.PagePadding)
		pointer = center - left
		clamp |= ClampRight
	}

	return Placement{Top: top, Left: left, PointerLeft: pointer, Clamp: clamp}
}

// ToSurface converts a document-relative placement into the coordinates the
// surface's SetPosition expects. current is the panel's present document
// offset and relative its present position inside its offset parent; the
// result moves the panel by the difference, whatever its positioning context.
func ToSurface(p Placement, current, relative geom.Offset) geom.Offset {
	return p.Offset().Sub(current).Add(relative)
}
