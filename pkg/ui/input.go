package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"lightbox/pkg/nav"
)

// arrowPanStep is the per-keypress pan distance in cells.
const arrowPanStep = 4

// wheelPanStep is the per-notch wheel pan distance in cells.
const wheelPanStep = 3

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow keys first.
	switch m.overlay {
	case overlayHelp:
		switch msg.String() {
		case "esc", "q", "?":
			m.overlay = overlayNone
		}
		return m, nil
	case overlayJump:
		return m.updateJump(msg)
	case overlayEffects:
		if msg.String() == "esc" {
			m.overlay = overlayNone
			return m, nil
		}
		return m.updateEffectsPanel(msg)
	case overlayDetail:
		switch msg.String() {
		case "esc", "q":
			m.overlay = overlayNone
			return m, nil
		case "y":
			return m, m.copySectionLink()
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.overlay = overlayHelp
		return m, nil

	case "/":
		m.overlay = overlayJump
		m.jump.Open(m.index)
		return m, nil

	case "e":
		m.overlay = overlayEffects
		m.panel.Open(m.effects)
		return m, nil

	case "enter":
		return m.openDetail(m.store.State().Active)

	case "tab":
		m.mode = (m.mode + 1) % 3
		return m, m.rememberMode()
	case "1":
		m.mode = ModeScroll
		return m, m.rememberMode()
	case "2":
		m.mode = ModeCanvas
		return m, m.rememberMode()
	case "3":
		m.mode = ModeTimeline
		return m, m.rememberMode()

	case "[":
		return m, m.jumpNeighbor(false)
	case "]":
		return m, m.jumpNeighbor(true)
	case "g":
		if m.registry.Len() > 0 {
			return m, m.jumpTo(m.registry.First().ID)
		}
		return m, nil
	case "G":
		if m.registry.Len() > 0 {
			return m, m.jumpTo(m.registry.At(m.registry.Len() - 1).ID)
		}
		return m, nil

	case "+", "=":
		m.store.SetZoom(m.store.State().Zoom * 1.25)
		m.reveal.Observe(m.store.ViewRect())
		return m, nil
	case "-":
		m.store.SetZoom(m.store.State().Zoom / 1.25)
		m.reveal.Observe(m.store.ViewRect())
		return m, nil
	case "0":
		m.store.SetZoom(1.0)
		return m, nil

	case "x":
		return m, m.exportSnapshot()

	case "up", "k":
		return m.manualPan(0, -arrowPanStep)
	case "down", "j":
		return m.manualPan(0, arrowPanStep)
	case "left", "h":
		if m.mode == ModeCanvas {
			return m.manualPan(-arrowPanStep, 0)
		}
		return m, m.jumpNeighbor(false)
	case "right", "l":
		if m.mode == ModeCanvas {
			return m.manualPan(arrowPanStep, 0)
		}
		return m, m.jumpNeighbor(true)
	}
	return m, nil
}

// manualPan applies a keyboard pan. Manual movement takes priority over
// whatever animation is in flight.
func (m Model) manualPan(dx, dy float64) (tea.Model, tea.Cmd) {
	m.store.Invalidate()
	if m.store.PanBy(dx, dy) {
		m.reveal.Observe(m.store.ViewRect())
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay != overlayNone {
		if m.overlay == overlayDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	now := time.Now()
	pos := r2.Vec{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.wheelPan(-wheelPanStep)
		case tea.MouseButtonWheelDown:
			return m.wheelPan(wheelPanStep)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				// Header row: clicks navigate, never start a drag.
				for _, b := range m.headerRegions() {
					if msg.X >= b.x0 && msg.X <= b.x1 {
						return m, m.jumpTo(b.sectionID)
					}
				}
				return m, nil
			}
			m.gestures.Begin(pos, now, nav.BeginOptions{Text: m.mode == ModeScroll})
		}
		return m, nil

	case tea.MouseActionMotion:
		delta, panning := m.gestures.Move(pos, now)
		if !panning {
			return m, nil
		}
		if !m.dragging {
			m.dragging = true
			m.store.Invalidate()
		}
		// Dragging moves the content with the pointer, so the viewport
		// shifts the opposite way.
		if m.store.PanBy(-delta.X, -delta.Y) {
			m.reveal.Observe(m.store.ViewRect())
		}
		return m, nil

	case tea.MouseActionRelease:
		m.dragging = false
		res := m.gestures.End(now)
		switch res.Kind {
		case nav.GestureTap:
			return m.tapAt(msg.X, msg.Y)
		case nav.GesturePan:
			m.momentum.Start(r2.Vec{X: -res.Velocity.X, Y: -res.Velocity.Y}, now)
			return m, m.ensureTicking()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) wheelPan(dy float64) (tea.Model, tea.Cmd) {
	m.store.Invalidate()
	var moved bool
	if m.mode == ModeTimeline {
		moved = m.store.PanBy(dy, 0)
	} else {
		moved = m.store.PanBy(0, dy)
	}
	if moved {
		m.reveal.Observe(m.store.ViewRect())
	}
	return m, nil
}

// tapAt resolves a tap in the content area to a section and navigates
// to it. Taps on empty canvas are ignored.
func (m Model) tapAt(x, y int) (tea.Model, tea.Cmd) {
	if y < 1 {
		return m, nil
	}
	st := m.store.State()
	world := r2.Vec{
		X: st.Offset.X + float64(x)/st.Zoom,
		Y: st.Offset.Y + float64(y-1)/st.Zoom,
	}
	for i := 0; i < m.registry.Len(); i++ {
		sec := m.registry.At(i)
		rect, ok := m.registry.SectionRect(sec.ID)
		if ok && rect.Contains(world) {
			if sec.ID == st.Active {
				return m.openDetail(sec.ID)
			}
			return m, m.jumpTo(sec.ID)
		}
	}
	return m, nil
}

func (m *Model) rememberMode() tea.Cmd {
	m.effects.Mode = m.mode.String()
	if m.prefStore != nil {
		if err := m.prefStore.SaveEffects(m.effects); err != nil {
			return m.flashStatus("prefs not saved")
		}
	}
	return nil
}
