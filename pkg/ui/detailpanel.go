package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lightbox/pkg/model"
)

// DetailModel is the full-screen reading panel for one section: its
// body rendered as markdown plus the projects filed under it.
type DetailModel struct {
	theme         Theme
	viewport      viewport.Model
	section       model.Section
	projects      []model.Project
	width, height int
	renderErr     error
}

func NewDetailModel(theme Theme) DetailModel {
	vp := viewport.New(80, 20)
	return DetailModel{theme: theme, viewport: vp, width: 80, height: 24}
}

func (d *DetailModel) SetTheme(t Theme) { d.theme = t }

func (d *DetailModel) SetSize(w, h int) {
	d.width = w
	d.height = h
	d.viewport.Width = w - 4
	d.viewport.Height = h - 6
	if d.section.ID != "" {
		d.refill()
	}
}

// Open loads a section and its projects into the panel.
func (d *DetailModel) Open(sec model.Section, projects []model.Project) {
	d.section = sec
	d.projects = projects
	d.viewport.GotoTop()
	d.refill()
}

// refill re-renders the markdown at the current width.
func (d *DetailModel) refill() {
	var md strings.Builder
	md.WriteString(d.section.Body)
	for _, pr := range d.projects {
		md.WriteString("\n\n## ")
		md.WriteString(pr.Title)
		if pr.Year != 0 {
			md.WriteString(fmt.Sprintf(" (%d)", pr.Year))
		}
		md.WriteString("\n\n")
		if pr.Medium != "" {
			md.WriteString("*" + pr.Medium + "*\n\n")
		}
		md.WriteString(pr.Body)
		if exif := pr.Capture.Summary(); exif != "" {
			md.WriteString("\n\n`" + exif + "`")
		}
		if pr.Link != "" {
			md.WriteString("\n\n" + pr.Link)
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(d.viewport.Width),
	)
	if err != nil {
		d.renderErr = err
		d.viewport.SetContent(md.String())
		return
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		d.renderErr = err
		d.viewport.SetContent(md.String())
		return
	}
	d.renderErr = nil
	d.viewport.SetContent(out)
}

func (d DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d DetailModel) View() string {
	color := d.theme.SectionColor(d.section.Color)
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(d.section.Label)
	pct := fmt.Sprintf("%3.0f%%", d.viewport.ScrollPercent()*100)
	pad := d.width - 4 - runewidth.StringWidth(d.section.Label) - runewidth.StringWidth(pct)
	if pad < 1 {
		pad = 1
	}
	header := title + strings.Repeat(" ", pad) +
		lipgloss.NewStyle().Foreground(d.theme.Muted).Render(pct)

	footer := lipgloss.NewStyle().Foreground(d.theme.Muted).
		Render("↑/↓ scroll  y copy link  esc close")

	body := header + "\n" + RenderSubtleDivider(d.width-4) + "\n" +
		d.viewport.View() + "\n" + footer

	return FocusedPanelStyle.
		BorderForeground(color).
		Width(d.width - 2).
		Render(body)
}

// openDetail switches to the detail overlay for a section.
func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	sec, ok := m.registry.Get(id)
	if !ok {
		return m, nil
	}
	m.detail.Open(sec, m.portfolio.ProjectsFor(id))
	m.overlay = overlayDetail
	return m, nil
}

// copySectionLink puts the first project link of the open section on
// the system clipboard.
func (m *Model) copySectionLink() tea.Cmd {
	for _, pr := range m.detail.projects {
		if pr.Link == "" {
			continue
		}
		if err := clipboard.WriteAll(pr.Link); err != nil {
			return m.flashStatus(fmt.Sprintf("copy failed: %v", err))
		}
		return m.flashStatus("link copied: " + pr.Link)
	}
	return m.flashStatus("no link to copy")
}
