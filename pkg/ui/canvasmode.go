package ui

import (
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"lightbox/pkg/nav"
)

// renderCanvas draws the spatial view: every section boxed at its
// world position, projected through the viewport offset and zoom.
func (m Model) renderCanvas() string {
	grid := newCellGrid(m.width, m.contentHeight(), m.theme.Muted)
	st := m.store.State()

	// The highlighted box hands over at the eased midpoint of a
	// transition, so the focus ring tracks the motion.
	highlight := st.Active
	if st.Phase == nav.PhaseTransitioning {
		highlight = st.From
		if st.Progress >= 0.5 {
			highlight = st.To
		}
	}

	for i := 0; i < m.registry.Len(); i++ {
		sec := m.registry.At(i)
		rect, ok := m.registry.SectionRect(sec.ID)
		if !ok {
			continue
		}

		sx := int((rect.Min.X - st.Offset.X) * st.Zoom)
		sy := int((rect.Min.Y - st.Offset.Y) * st.Zoom)
		sw := int((rect.Max.X - rect.Min.X) * st.Zoom)
		sh := int((rect.Max.Y - rect.Min.Y) * st.Zoom)
		if sx+sw < 0 || sy+sh < 0 || sx >= m.width || sy >= m.contentHeight() {
			continue
		}

		active := sec.ID == highlight
		color := m.theme.SectionColor(sec.Color)
		if !active && !m.reveal.Revealed(sec.ID) {
			// Unrevealed sections stay dim until they earn their frame.
			color = m.theme.Muted
		}
		grid.box(sx, sy, sw, sh, color, active)

		label := truncate.StringWithTail(sec.Label, uint(max(sw-4, 0)), "…")
		grid.text(sx+2, sy, " "+label+" ", color, true)

		if st.Zoom >= 0.75 {
			m.fillBody(grid, sec.Body, sx, sy, sw, sh)
		}
	}
	return grid.render()
}

// fillBody writes the first wrapped lines of a section body inside its
// box interior.
func (m Model) fillBody(grid *cellGrid, body string, sx, sy, sw, sh int) {
	innerW := sw - 4
	innerH := sh - 2
	if innerW < 4 || innerH < 1 {
		return
	}
	wrapped := wordwrap.String(body, innerW)
	row := 0
	start := 0
	for i := 0; i <= len(wrapped) && row < innerH; i++ {
		if i == len(wrapped) || wrapped[i] == '\n' {
			line := truncate.StringWithTail(wrapped[start:i], uint(innerW), "…")
			grid.text(sx+2, sy+1+row, line, m.theme.Text, false)
			start = i + 1
			row++
		}
	}
}
