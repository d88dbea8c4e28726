package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with extended semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgDark      = lipgloss.Color("#1E1F29")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Primary accent colors
	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")
	ColorPink    = lipgloss.Color("#FF79C6")
)

// Theme bundles the palette the viewer renders with. Two variants: the
// default dark "dusk" and a light "noon".
type Theme struct {
	Name string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Subtext    lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// DuskTheme is the default dark theme.
func DuskTheme() Theme {
	return Theme{
		Name:       "dusk",
		Background: ColorBgDark,
		Surface:    ColorBg,
		Text:       ColorText,
		Subtext:    ColorSubtext,
		Muted:      ColorMuted,
		Accent:     ColorPrimary,
		Info:       ColorInfo,
		Success:    ColorSuccess,
		Warning:    ColorWarning,
		Danger:     ColorDanger,
	}
}

// NoonTheme is the light variant.
func NoonTheme() Theme {
	return Theme{
		Name:       "noon",
		Background: lipgloss.Color("#F8F8F2"),
		Surface:    lipgloss.Color("#EFEFE9"),
		Text:       lipgloss.Color("#282A36"),
		Subtext:    lipgloss.Color("#44475A"),
		Muted:      lipgloss.Color("#6272A4"),
		Accent:     lipgloss.Color("#7C3AED"),
		Info:       lipgloss.Color("#0E7490"),
		Success:    lipgloss.Color("#15803D"),
		Warning:    lipgloss.Color("#B45309"),
		Danger:     lipgloss.Color("#B91C1C"),
	}
}

// ThemeByName resolves a preference value to a theme, defaulting to dusk.
func ThemeByName(name string) Theme {
	if name == "noon" {
		return NoonTheme()
	}
	return DuskTheme()
}

// SectionColor returns a section's accent, falling back to the theme
// accent when the portfolio author set none.
func (t Theme) SectionColor(token string) lipgloss.Color {
	if token == "" {
		return t.Accent
	}
	return lipgloss.Color(token)
}

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For overlays and the detail split
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// RenderModeBadge returns the styled badge for a presentation mode tab.
func RenderModeBadge(label string, active bool, t Theme) string {
	if active {
		return lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Accent).
			Bold(true).
			Padding(0, 1).
			Render(label)
	}
	return lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1).
		Render(label)
}

// RenderProgressBar renders a horizontal bar for a value between 0 and 1.
func RenderProgressBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(t.Accent).Render(bar)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// RenderSubtleDivider renders a more subtle divider using dots
func RenderSubtleDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("·", width))
}
