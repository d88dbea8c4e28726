package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// renderScroll draws the reading view: sections stacked as panels in
// registry order, scrolled by the viewport's vertical offset. The
// world-space offset maps proportionally onto the stacked column so
// the same store drives both this and the canvas view.
func (m Model) renderScroll() string {
	panels := make([]string, 0, m.registry.Len())
	active := m.store.State().Active
	innerW := m.width - 6
	if innerW < 20 {
		innerW = 20
	}

	for i := 0; i < m.registry.Len(); i++ {
		sec := m.registry.At(i)
		color := m.theme.SectionColor(sec.Color)

		style := PanelStyle.Width(innerW).BorderForeground(m.theme.Muted)
		title := lipgloss.NewStyle().Bold(true).Foreground(color)
		bodyStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
		if sec.ID == active {
			style = FocusedPanelStyle.Width(innerW).BorderForeground(color)
		}
		if !m.reveal.Revealed(sec.ID) {
			// Sections fade in once enough of them has been on screen.
			title = title.Foreground(m.theme.Muted)
			bodyStyle = bodyStyle.Foreground(m.theme.Muted)
		}

		body := bodyStyle.Render(wordwrap.String(sec.Body, innerW-2))
		content := title.Render(sec.Label) + "\n\n" + body
		if projects := m.portfolio.ProjectsFor(sec.ID); len(projects) > 0 {
			var sb strings.Builder
			for _, pr := range projects {
				sb.WriteString("\n  • " + pr.Title)
				if pr.Year != 0 {
					sb.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).
						Render(" (" + strconv.Itoa(pr.Year) + ")"))
				}
			}
			content += "\n" + sb.String()
		}
		panels = append(panels, style.Render(content))
	}

	column := strings.Join(panels, "\n")
	lines := strings.Split(column, "\n")

	// Map the world Y offset onto the stacked column.
	row := 0
	if span := m.worldHeight(); span > 0 {
		row = int(m.store.State().Offset.Y / span * float64(len(lines)))
	}
	h := m.contentHeight()
	if row > len(lines)-h {
		row = len(lines) - h
	}
	if row < 0 {
		row = 0
	}

	end := row + h
	if end > len(lines) {
		end = len(lines)
	}
	view := strings.Join(lines[row:end], "\n")
	for i := end - row; i < h; i++ {
		view += "\n"
	}
	return view
}

func (m Model) worldHeight() float64 {
	b := m.registry.Bounds()
	return b.Max.Y - b.Min.Y
}
