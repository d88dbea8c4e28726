package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpBinding is one row of the help table.
type helpBinding struct {
	keys string
	desc string
}

var helpSections = []struct {
	title    string
	bindings []helpBinding
}{
	{
		title: "Navigate",
		bindings: []helpBinding{
			{"[ / ]", "previous / next section"},
			{"g / G", "first / last section"},
			{"/", "jump to section or project"},
			{"enter", "open detail for active section"},
			{"click", "focus section under cursor"},
			{"drag", "pan the view (canvas)"},
		},
	},
	{
		title: "View",
		bindings: []helpBinding{
			{"tab", "cycle presentation mode"},
			{"1 / 2 / 3", "scroll / canvas / timeline"},
			{"+ / -", "zoom in / out"},
			{"0", "reset zoom"},
			{"arrows, hjkl", "pan or step sections"},
			{"wheel", "scroll the view"},
		},
	},
	{
		title: "Tools",
		bindings: []helpBinding{
			{"e", "effects and theme settings"},
			{"x", "export canvas snapshot (SVG + PNG)"},
			{"y", "copy project link (in detail)"},
			{"?", "toggle this help"},
			{"q", "quit"},
		},
	},
}

// HelpOverlayModel renders the key binding reference.
type HelpOverlayModel struct {
	theme         Theme
	width, height int
}

func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{theme: theme, width: 80, height: 24}
}

func (h *HelpOverlayModel) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h *HelpOverlayModel) SetTheme(t Theme) { h.theme = t }

func (h HelpOverlayModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(h.theme.Accent)
	keyStyle := lipgloss.NewStyle().Foreground(h.theme.Info).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(h.theme.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keys"))
	sb.WriteString("\n")
	for _, sec := range helpSections {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(h.theme.Subtext).Render(sec.title))
		sb.WriteString("\n")
		for _, b := range sec.bindings {
			sb.WriteString("  ")
			sb.WriteString(keyStyle.Render(b.keys))
			sb.WriteString(descStyle.Render(b.desc))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(h.theme.Muted).Render("esc or ? to close"))

	panel := FocusedPanelStyle.
		BorderForeground(h.theme.Accent).
		Padding(1, 3).
		Render(sb.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, panel)
}
