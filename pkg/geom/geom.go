// Package geom provides integer pixel geometry shared by the tooltip core,
// the headless document and the renderers.
//
// All values are whole pixels (or terminal cells). Coordinates are
// document-relative unless a type documents otherwise: Top grows downwards,
// Left grows rightwards.
package geom

import "fmt"

// Offset is a position expressed as distances from the top and left edges.
type Offset struct {
	Top  int `json:"top" toml:"top" yaml:"top"`
	Left int `json:"left" toml:"left" yaml:"left"`
}

// Add returns o shifted by d.
func (o Offset) Add(d Offset) Offset {
	return Offset{Top: o.Top + d.Top, Left: o.Left + d.Left}
}

// Sub returns the delta that moves d onto o.
func (o Offset) Sub(d Offset) Offset {
	return Offset{Top: o.Top - d.Top, Left: o.Left - d.Left}
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d)", o.Top, o.Left)
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width" toml:"width" yaml:"width"`
	Height int `json:"height" toml:"height" yaml:"height"`
}

// Empty reports whether the size covers no area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	Offset
	Size
}

// NewRect builds a rect from its top-left corner and dimensions.
func NewRect(top, left, width, height int) Rect {
	return Rect{Offset: Offset{Top: top, Left: left}, Size: Size{Width: width, Height: height}}
}

// Right returns the first column past the rect.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the first row past the rect.
func (r Rect) Bottom() int { return r.Top + r.Height }

// CenterX returns the floored horizontal centre.
func (r Rect) CenterX() int { return r.Left + HalfFloor(r.Width) }

// Contains reports whether the point (top, left) lies inside r.
// The right and bottom edges are exclusive.
func (r Rect) Contains(top, left int) bool {
	return top >= r.Top && top < r.Bottom() && left >= r.Left && left < r.Right()
}

// HalfFloor returns floor(n/2), rounding towards negative infinity for
// negative n where Go's integer division would round towards zero.
func HalfFloor(n int) int {
	if n < 0 && n%2 != 0 {
		return n/2 - 1
	}
	return n / 2
}
