package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, unclamped
	colorYellow = lipgloss.Color("220") // Amber - warnings, one edge clamped
	colorRed    = lipgloss.Color("167") // Soft red - errors, both edges clamped
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// clampStyle colours a clamp by how far the panel had to move: untouched,
// pinned to one edge, or wider than the usable viewport.
func clampStyle(c tooltip.Clamp) lipgloss.Style {
	switch c {
	case tooltip.ClampNone:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case tooltip.ClampLeft | tooltip.ClampRight:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorYellow)
	}
}

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines to one writer. Commands print through
// the CLI's output so tests can capture it.
type printer struct {
	w io.Writer
}

func (c *CLI) ui() printer { return printer{w: c.out} }

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) error(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// placement prints a computed placement as aligned key/value lines.
func (p printer) placement(pl tooltip.Placement, profile string) {
	p.keyValue("top", strconv.Itoa(pl.Top))
	p.keyValue("left", strconv.Itoa(pl.Left))
	p.keyValue("pointer left", strconv.Itoa(pl.PointerLeft))
	p.line(styleKey.Render("clamp") + " " + clampStyle(pl.Clamp).Render(pl.Clamp.String()))
	p.keyValue("profile", profile)
}

// runStats prints what a simulation did on a single line.
func (p printer) runStats(steps int, open string, cached bool) {
	parts := []string{fmt.Sprintf("%d steps", steps)}
	if open != "" {
		parts = append(parts, "open: "+open)
	} else {
		parts = append(parts, "nothing open")
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	sep := StyleDim.Render(" · ")
	for i, part := range parts {
		parts[i] = StyleDim.Render(part)
	}
	p.line("  " + strings.Join(parts, sep) + sep + statusStyle.Render(status))
}
