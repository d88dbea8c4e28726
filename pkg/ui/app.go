package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"lightbox/pkg/export"
	"lightbox/pkg/model"
	"lightbox/pkg/nav"
	"lightbox/pkg/prefs"
	"lightbox/pkg/search"
)

// Mode is the active presentation mode. All three share the same
// navigation core; only the rendering differs.
type Mode int

const (
	ModeScroll Mode = iota
	ModeCanvas
	ModeTimeline
)

// String returns the preference value for a mode.
func (m Mode) String() string {
	switch m {
	case ModeCanvas:
		return "canvas"
	case ModeTimeline:
		return "timeline"
	default:
		return "scroll"
	}
}

// ModeByName resolves a preference value to a mode, defaulting to scroll.
func ModeByName(name string) Mode {
	switch name {
	case "canvas":
		return ModeCanvas
	case "timeline":
		return ModeTimeline
	default:
		return ModeScroll
	}
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayJump
	overlayEffects
	overlayDetail
)

// frameMsg drives animation stepping while a transition or fling is live.
type frameMsg time.Time

// ReloadMsg delivers a freshly loaded portfolio from the file watcher.
type ReloadMsg struct {
	Portfolio model.Portfolio
}

// statusExpireMsg clears a transient status message.
type statusExpireMsg uint64

const frameInterval = time.Second / 60

// navButton is a header hit region for click-to-navigate.
type navButton struct {
	x0, x1    int // inclusive column range on the header row
	sectionID string
}

// Model is the root bubbletea model.
type Model struct {
	portfolio model.Portfolio
	registry  *nav.Registry
	store     *nav.Store
	trans     *nav.Transitioner
	momentum  *nav.Momentum
	gestures  *nav.Classifier
	reveal    *nav.RevealTracker
	index     *search.Index

	prefStore *prefs.Store // nil when prefs are unavailable
	effects   prefs.Effects
	theme     Theme

	mode    Mode
	overlay overlayKind

	detail DetailModel
	jump   JumpModel
	panel  EffectsPanelModel
	help   HelpOverlayModel

	width, height int
	ticking       bool
	dragging      bool

	status    string
	statusSeq uint64

	exportBase string // base path for snapshot exports
}

// NewModel assembles the viewer. prefStore may be nil (prefs unavailable);
// the viewer then runs on defaults and skips persistence.
func NewModel(p model.Portfolio, prefStore *prefs.Store) (Model, error) {
	reg, err := nav.NewRegistry(p.Sections)
	if err != nil {
		return Model{}, fmt.Errorf("build section registry: %w", err)
	}

	effects := prefs.Effects{
		TransitionDuration: prefs.DefaultTransitionMS * time.Millisecond,
		Friction:           prefs.DefaultFriction,
		DragThreshold:      prefs.DefaultDragThreshold,
		RevealFraction:     prefs.DefaultRevealFraction,
		Theme:              prefs.DefaultTheme,
		Mode:               prefs.DefaultMode,
	}
	if prefStore != nil {
		effects = prefStore.LoadEffects()
	}

	store := nav.NewStore(reg, 80, 24)
	theme := ThemeByName(effects.Theme)

	m := Model{
		portfolio:  p,
		registry:   reg,
		store:      store,
		trans:      nav.NewTransitioner(store, effects.TransitionDuration),
		momentum:   nav.NewMomentum(store),
		gestures:   nav.NewClassifier(),
		reveal:     nav.NewRevealTracker(reg, effects.RevealFraction),
		index:      search.NewIndex(p),
		prefStore:  prefStore,
		effects:    effects,
		theme:      theme,
		mode:       ModeByName(effects.Mode),
		detail:     NewDetailModel(theme),
		jump:       NewJumpModel(theme),
		panel:      NewEffectsPanelModel(effects, theme),
		help:       NewHelpOverlayModel(theme),
		width:      80,
		height:     24,
		exportBase: "lightbox-canvas",
	}
	m.momentum.SetFriction(effects.Friction)
	m.gestures.SetThreshold(effects.DragThreshold)
	m.reveal.Observe(store.ViewRect())
	return m, nil
}

// SetMode picks the starting presentation mode, overriding the saved
// preference.
func (m *Model) SetMode(mode Mode) { m.mode = mode }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case ReloadMsg:
		return m.handleReload(msg.Portfolio)

	case statusExpireMsg:
		if uint64(msg) == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// Overlay-owned messages (form internals, viewport scrolling).
	switch m.overlay {
	case overlayEffects:
		return m.updateEffectsPanel(msg)
	case overlayDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.store.SetViewSize(float64(msg.Width), float64(m.contentHeight()))
	m.reveal.Observe(m.store.ViewRect())
	m.detail.SetSize(msg.Width, msg.Height)
	m.jump.SetSize(msg.Width, msg.Height)
	m.panel.SetSize(msg.Width, msg.Height)
	m.help.SetSize(msg.Width, msg.Height)
	return m, nil
}

// contentHeight is the rows available to the mode view: total minus the
// header and status rows.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 3 {
		h = 3
	}
	return h
}

// handleFrame steps the live animations and reschedules while any of
// them still wants frames.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	more := false
	if m.trans.Step(now) {
		more = true
	}
	if m.momentum.Step(now) {
		more = true
	}
	m.reveal.Observe(m.store.ViewRect())

	if !more {
		m.ticking = false
		return m, nil
	}
	return m, frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ensureTicking arms the frame loop if it is not already running.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return frameTick()
}

// jumpTo navigates to a section, honoring reduce-motion, and arms the
// frame loop for the transition. Unknown IDs surface a status warning
// and leave the viewport alone.
func (m *Model) jumpTo(id string) tea.Cmd {
	if m.effects.ReduceMotion {
		if err := m.store.Snap(id); err != nil {
			return m.flashStatus(fmt.Sprintf("cannot jump: %v", err))
		}
		m.reveal.Observe(m.store.ViewRect())
		return nil
	}
	if err := m.trans.JumpTo(id, time.Now()); err != nil {
		return m.flashStatus(fmt.Sprintf("cannot jump: %v", err))
	}
	return m.ensureTicking()
}

func (m *Model) jumpNeighbor(next bool) tea.Cmd {
	active := m.activeOrTarget()
	var sec model.Section
	var ok bool
	if next {
		sec, ok = m.registry.Next(active)
	} else {
		sec, ok = m.registry.Prev(active)
	}
	if !ok {
		return nil
	}
	return m.jumpTo(sec.ID)
}

// activeOrTarget returns the transition target when one is in flight so
// rapid neighbor jumps chain instead of re-targeting the old section.
func (m Model) activeOrTarget() string {
	st := m.store.State()
	if st.Phase == nav.PhaseTransitioning && st.To != "" {
		return st.To
	}
	return st.Active
}

func (m *Model) flashStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusExpireMsg(seq)
	})
}

func (m Model) handleReload(p model.Portfolio) (tea.Model, tea.Cmd) {
	reg, err := nav.NewRegistry(p.Sections)
	if err != nil {
		return m, m.flashStatus(fmt.Sprintf("reload failed: %v", err))
	}

	prevActive := m.store.State().Active
	m.portfolio = p
	m.registry = reg
	m.store = nav.NewStore(reg, float64(m.width), float64(m.contentHeight()))
	m.trans = nav.NewTransitioner(m.store, m.effects.TransitionDuration)
	m.momentum = nav.NewMomentum(m.store)
	m.momentum.SetFriction(m.effects.Friction)
	m.reveal = nav.NewRevealTracker(reg, m.effects.RevealFraction)
	m.index = search.NewIndex(p)
	m.ticking = false

	// Stay on the same section when it survives the edit.
	if _, ok := reg.Get(prevActive); ok {
		_ = m.store.Snap(prevActive)
	}
	m.reveal.Observe(m.store.ViewRect())
	return m, m.flashStatus("portfolio reloaded")
}

func (m *Model) exportSnapshot() tea.Cmd {
	snap := export.Snapshot{
		Title:    m.portfolio.Title,
		Registry: m.registry,
		Active:   m.store.State().Active,
	}
	if err := snap.WriteFiles(m.exportBase); err != nil {
		return m.flashStatus(fmt.Sprintf("export failed: %v", err))
	}
	return m.flashStatus(fmt.Sprintf("wrote %s.svg and %s.png", m.exportBase, m.exportBase))
}

// applyEffects pushes a new effects configuration into the running
// components and persists it.
func (m *Model) applyEffects(e prefs.Effects) tea.Cmd {
	m.effects = e
	m.theme = ThemeByName(e.Theme)
	m.trans.SetDuration(e.TransitionDuration)
	m.momentum.SetFriction(e.Friction)
	m.gestures.SetThreshold(e.DragThreshold)
	m.reveal = nav.NewRevealTracker(m.registry, e.RevealFraction)
	m.reveal.Observe(m.store.ViewRect())
	m.detail.SetTheme(m.theme)
	m.jump.SetTheme(m.theme)
	m.panel.SetTheme(m.theme)
	m.help.SetTheme(m.theme)

	if m.prefStore != nil {
		if err := m.prefStore.SaveEffects(e); err != nil {
			return m.flashStatus(fmt.Sprintf("prefs not saved: %v", err))
		}
	}
	return m.flashStatus("effects applied")
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.overlay {
	case overlayHelp:
		return m.help.View()
	case overlayJump:
		return m.jump.View()
	case overlayEffects:
		return m.panel.View()
	case overlayDetail:
		return m.detail.View()
	}

	header := m.renderHeader()
	var body string
	switch m.mode {
	case ModeCanvas:
		body = m.renderCanvas()
	case ModeTimeline:
		body = m.renderTimeline()
	default:
		body = m.renderScroll()
	}
	return header + "\n" + body + "\n" + m.renderStatus()
}

// headerRegions lays out the clickable section buttons. Both the
// header renderer and the mouse handler derive hit regions from this,
// keeping click targets aligned with what is drawn.
func (m Model) headerRegions() []navButton {
	x := m.headerButtonStart()
	regions := make([]navButton, 0, m.registry.Len())
	for i := 0; i < m.registry.Len(); i++ {
		sec := m.registry.At(i)
		w := lipgloss.Width(" " + sec.Label + " ")
		regions = append(regions, navButton{x0: x, x1: x + w - 1, sectionID: sec.ID})
		x += w
	}
	return regions
}

func (m Model) headerButtonStart() int {
	left := m.portfolio.Title + " "
	x := lipgloss.Width(left)
	for md := ModeScroll; md <= ModeTimeline; md++ {
		x += lipgloss.Width(RenderModeBadge(md.String(), md == m.mode, m.theme))
	}
	return x + 1
}

// renderHeader draws the title, mode tabs, and the section buttons.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).Render(m.portfolio.Title)

	tabs := ""
	for md := ModeScroll; md <= ModeTimeline; md++ {
		tabs += RenderModeBadge(md.String(), md == m.mode, m.theme)
	}

	active := m.store.State().Active
	btns := ""
	for i := 0; i < m.registry.Len(); i++ {
		sec := m.registry.At(i)
		label := " " + sec.Label + " "
		style := lipgloss.NewStyle().Foreground(m.theme.Subtext)
		if sec.ID == active {
			style = style.Foreground(m.theme.SectionColor(sec.Color)).Bold(true).Underline(true)
		}
		btns += style.Render(label)
	}

	line := title + " " + tabs + " " + btns
	return truncate.StringWithTail(line, uint(m.width), "…")
}

func (m Model) renderStatus() string {
	st := m.store.State()
	left := fmt.Sprintf(" %s  zoom %.2g", st.Active, st.Zoom)
	if st.Phase == nav.PhaseTransitioning {
		left = fmt.Sprintf(" %s → %s %s", st.From, st.To,
			RenderProgressBar(st.Progress, 10, m.theme))
	}
	if m.status != "" {
		left += "  " + lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.status)
	}
	right := "?: help  /: jump  e: effects  q: quit "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.StringWithTail(left, uint(m.width), "…")
	}
	bar := left + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
		fmt.Sprintf("%*s", gap, "")) + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right)
	return bar
}
