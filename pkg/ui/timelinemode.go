package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"lightbox/pkg/nav"
)

// renderTimeline draws the filmstrip view: one frame per section in
// registry order with a playhead that glides between frames while a
// transition runs.
func (m Model) renderTimeline() string {
	n := m.registry.Len()
	if n == 0 {
		return ""
	}
	st := m.store.State()

	frameW := m.width/n - 1
	if frameW < 8 {
		frameW = 8
	}

	frames := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sec := m.registry.At(i)
		color := m.theme.SectionColor(sec.Color)

		style := PanelStyle.Width(frameW - 2).Height(3).BorderForeground(m.theme.Muted)
		label := lipgloss.NewStyle().Foreground(m.theme.Subtext)
		if sec.ID == st.Active {
			style = FocusedPanelStyle.Width(frameW - 2).Height(3).BorderForeground(color)
			label = label.Foreground(color).Bold(true)
		}
		caption := truncate.StringWithTail(sec.Label, uint(frameW-4), "…")
		count := strings.Repeat("▪", min(len(m.portfolio.ProjectsFor(sec.ID)), frameW-4))
		frames = append(frames, style.Render(label.Render(caption)+"\n"+
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(count)))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, frames...)

	// Playhead position in frame units, eased by the live transition.
	pos := float64(m.frameIndex(st.Active))
	if st.Phase == nav.PhaseTransitioning {
		from := float64(m.frameIndex(st.From))
		to := float64(m.frameIndex(st.To))
		pos = from + (to-from)*st.Progress
	}
	head := int(pos*float64(frameW) + float64(frameW)/2)
	if head >= m.width {
		head = m.width - 1
	}
	if head < 0 {
		head = 0
	}
	track := strings.Repeat("─", head) + "◆"
	if head < m.width-1 {
		track += strings.Repeat("─", m.width-head-1)
	}
	playhead := lipgloss.NewStyle().Foreground(m.theme.Accent).Render(track)

	detail := m.renderTimelineDetail()

	h := m.contentHeight()
	view := strip + "\n" + playhead + "\n" + detail
	lines := strings.Count(view, "\n") + 1
	for ; lines < h; lines++ {
		view += "\n"
	}
	return view
}

func (m Model) frameIndex(id string) int {
	if i := m.registry.IndexOf(id); i >= 0 {
		return i
	}
	return 0
}

// renderTimelineDetail shows the active section's body and captures
// under the strip.
func (m Model) renderTimelineDetail() string {
	sec, ok := m.registry.Get(m.store.State().Active)
	if !ok {
		return ""
	}
	color := m.theme.SectionColor(sec.Color)
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(sec.Label)

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(RenderSubtleDivider(m.width))
	sb.WriteString("\n")
	sb.WriteString(truncate.StringWithTail(sec.Body, uint(m.width-2), "…"))

	for _, pr := range m.portfolio.ProjectsFor(sec.ID) {
		sb.WriteString("\n  ▸ ")
		sb.WriteString(pr.Title)
		if exif := pr.Capture.Summary(); exif != "" {
			sb.WriteString("\n      ")
			sb.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).
				Render(exif))
		}
	}
	return sb.String()
}
