package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"lightbox/pkg/search"
)

const jumpMaxResults = 12

// JumpModel is the fuzzy jump overlay: a query input over the section
// and project index, enter navigates to the selected hit.
type JumpModel struct {
	theme         Theme
	input         textinput.Model
	index         *search.Index
	results       []search.Result
	cursor        int
	width, height int
}

func NewJumpModel(theme Theme) JumpModel {
	ti := textinput.New()
	ti.Placeholder = "section or project"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return JumpModel{theme: theme, input: ti, width: 80, height: 24}
}

func (j *JumpModel) SetTheme(t Theme) { j.theme = t }

func (j *JumpModel) SetSize(w, h int) {
	j.width = w
	j.height = h
}

// Open resets the overlay against the current index.
func (j *JumpModel) Open(index *search.Index) {
	j.index = index
	j.input.SetValue("")
	j.input.Focus()
	j.cursor = 0
	j.results = index.Query("")
	j.clip()
}

func (j *JumpModel) clip() {
	if len(j.results) > jumpMaxResults {
		j.results = j.results[:jumpMaxResults]
	}
	if j.cursor >= len(j.results) {
		j.cursor = len(j.results) - 1
	}
	if j.cursor < 0 {
		j.cursor = 0
	}
}

// selected returns the section ID of the highlighted result.
func (j JumpModel) selected() (string, bool) {
	if j.cursor < 0 || j.cursor >= len(j.results) {
		return "", false
	}
	return j.results[j.cursor].Section, true
}

// updateJump handles keys while the jump overlay is open.
func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		return m, nil
	case "enter":
		id, ok := m.jump.selected()
		m.overlay = overlayNone
		if !ok {
			return m, nil
		}
		return m, m.jumpTo(id)
	case "up", "ctrl+p":
		if m.jump.cursor > 0 {
			m.jump.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.jump.cursor < len(m.jump.results)-1 {
			m.jump.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.jump.input, cmd = m.jump.input.Update(msg)
	m.jump.results = m.jump.index.Query(m.jump.input.Value())
	m.jump.cursor = 0
	m.jump.clip()
	return m, cmd
}

func (j JumpModel) View() string {
	var sb strings.Builder
	sb.WriteString(j.input.View())
	sb.WriteString("\n")
	sb.WriteString(RenderSubtleDivider(44))
	sb.WriteString("\n")

	if len(j.results) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(j.theme.Muted).Render("no matches"))
	}
	for i, res := range j.results {
		line := res.Title
		if res.Kind == search.KindProject {
			line += lipgloss.NewStyle().Foreground(j.theme.Muted).Render("  › " + res.Section)
		}
		line = truncate.StringWithTail(line, 42, "…")
		if i == j.cursor {
			sb.WriteString(lipgloss.NewStyle().Foreground(j.theme.Accent).Bold(true).Render("▸ " + line))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(j.theme.Text).Render("  " + line))
		}
		if i < len(j.results)-1 {
			sb.WriteString("\n")
		}
	}

	panel := FocusedPanelStyle.
		BorderForeground(j.theme.Accent).
		Padding(0, 1).
		Width(48).
		Render(sb.String())
	return lipgloss.Place(j.width, j.height, lipgloss.Center, lipgloss.Center, panel)
}
