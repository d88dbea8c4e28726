package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lightbox/pkg/model"
	"lightbox/pkg/nav"
)

func testPortfolio() model.Portfolio {
	return model.Portfolio{
		Title: "Field Notes",
		Sections: []model.Section{
			{ID: "hero", Label: "Hero", Body: "welcome", X: 0, Y: 0, W: 56, H: 18},
			{ID: "about", Label: "About", Body: "who", X: 60, Y: 0, W: 56, H: 18},
			{ID: "work", Label: "Work", Body: "what", X: 0, Y: 22, W: 56, H: 18},
			{ID: "contact", Label: "Contact", Body: "where", X: 60, Y: 22, W: 56, H: 18},
		},
		Projects: []model.Project{
			{Title: "Dunes", Section: "work", Year: 2024, Link: "https://example.com/dunes"},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(testPortfolio(), nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModeByName(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"scroll", ModeScroll},
		{"canvas", ModeCanvas},
		{"timeline", ModeTimeline},
		{"", ModeScroll},
		{"bogus", ModeScroll},
	}
	for _, tt := range tests {
		if got := ModeByName(tt.name); got != tt.want {
			t.Errorf("ModeByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeScroll, ModeCanvas, ModeTimeline} {
		if got := ModeByName(mode.String()); got != mode {
			t.Errorf("round trip %v = %v", mode, got)
		}
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.mode != ModeScroll {
		t.Errorf("mode = %v, want scroll", m.mode)
	}
	if got := m.store.State().Active; got != "hero" {
		t.Errorf("active = %q, want hero", got)
	}
	if m.overlay != overlayNone {
		t.Errorf("overlay = %v, want none", m.overlay)
	}
}

func TestTabCyclesModes(t *testing.T) {
	m := newTestModel(t)
	want := []Mode{ModeCanvas, ModeTimeline, ModeScroll}
	for _, w := range want {
		tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = tm.(Model)
		if m.mode != w {
			t.Fatalf("mode = %v, want %v", m.mode, w)
		}
	}
}

func TestNumberKeysPickModes(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		key  rune
		want Mode
	}{
		{'2', ModeCanvas},
		{'3', ModeTimeline},
		{'1', ModeScroll},
	}
	for _, tt := range tests {
		tm, _ := m.Update(keyRune(tt.key))
		m = tm.(Model)
		if m.mode != tt.want {
			t.Errorf("key %q: mode = %v, want %v", tt.key, m.mode, tt.want)
		}
	}
}

func TestNextSectionStartsTransition(t *testing.T) {
	m := newTestModel(t)
	tm, cmd := m.Update(keyRune(']'))
	m = tm.(Model)

	st := m.store.State()
	if st.Phase != nav.PhaseTransitioning {
		t.Fatalf("phase = %v, want transitioning", st.Phase)
	}
	if st.To != "about" {
		t.Errorf("transition target = %q, want about", st.To)
	}
	if cmd == nil {
		t.Error("expected a frame tick command")
	}
	if !m.ticking {
		t.Error("frame loop should be armed")
	}
}

func TestReduceMotionSnapsInstead(t *testing.T) {
	m := newTestModel(t)
	m.effects.ReduceMotion = true

	tm, _ := m.Update(keyRune(']'))
	m = tm.(Model)

	st := m.store.State()
	if st.Phase != nav.PhaseIdle {
		t.Fatalf("phase = %v, want idle", st.Phase)
	}
	if st.Active != "about" {
		t.Errorf("active = %q, want about", st.Active)
	}
}

func TestNeighborJumpChainsDuringTransition(t *testing.T) {
	m := newTestModel(t)

	tm, _ := m.Update(keyRune(']'))
	m = tm.(Model)
	tm, _ = m.Update(keyRune(']'))
	m = tm.(Model)

	// Second press while the first transition runs targets the section
	// after the in-flight target, not after the old active.
	if got := m.store.State().To; got != "work" {
		t.Errorf("transition target = %q, want work", got)
	}
}

func TestTapOnSectionNavigates(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeCanvas

	press := tea.MouseMsg{X: 70, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 70, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	tm, _ := m.Update(press)
	m = tm.(Model)
	tm, _ = m.Update(release)
	m = tm.(Model)

	if got := m.store.State().To; got != "about" {
		t.Errorf("tap target = %q, want about", got)
	}
}

func TestTapOnActiveSectionOpensDetail(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeCanvas

	// (10, 5) lands inside hero, which is already active.
	press := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	tm, _ := m.Update(press)
	m = tm.(Model)
	tm, _ = m.Update(release)
	m = tm.(Model)

	if m.overlay != overlayDetail {
		t.Errorf("overlay = %v, want detail", m.overlay)
	}
}

func TestDragPansViewport(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeCanvas

	msgs := []tea.MouseMsg{
		{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: 30, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		{X: 20, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
	}
	for _, msg := range msgs {
		tm, _ := m.Update(msg)
		m = tm.(Model)
	}

	// Dragging left moves the viewport right.
	if got := m.store.State().Offset.X; got <= 0 {
		t.Errorf("offset.X = %v, want > 0", got)
	}
	if !m.dragging {
		t.Error("drag flag should be set while panning")
	}
}

func TestWheelScrollsViewport(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeCanvas

	wheel := tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	tm, _ := m.Update(wheel)
	m = tm.(Model)

	if got := m.store.State().Offset.Y; got != wheelPanStep {
		t.Errorf("offset.Y = %v, want %v", got, float64(wheelPanStep))
	}
}

func TestWheelIsHorizontalInTimeline(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeTimeline

	wheel := tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	tm, _ := m.Update(wheel)
	m = tm.(Model)

	st := m.store.State()
	if st.Offset.X != wheelPanStep {
		t.Errorf("offset.X = %v, want %v", st.Offset.X, float64(wheelPanStep))
	}
	if st.Offset.Y != 0 {
		t.Errorf("offset.Y = %v, want 0", st.Offset.Y)
	}
}

func TestHeaderClickJumps(t *testing.T) {
	m := newTestModel(t)
	regions := m.headerRegions()
	if len(regions) != 4 {
		t.Fatalf("regions = %d, want 4", len(regions))
	}

	click := tea.MouseMsg{X: regions[2].x0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	tm, _ := m.Update(click)
	m = tm.(Model)

	if got := m.store.State().To; got != regions[2].sectionID {
		t.Errorf("click target = %q, want %q", got, regions[2].sectionID)
	}
}

func TestHeaderRegionsDoNotOverlap(t *testing.T) {
	m := newTestModel(t)
	regions := m.headerRegions()
	for i := 1; i < len(regions); i++ {
		if regions[i].x0 <= regions[i-1].x1 {
			t.Errorf("region %d starts at %d, overlaps previous end %d",
				i, regions[i].x0, regions[i-1].x1)
		}
	}
}

func TestOverlayToggles(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want overlayKind
	}{
		{keyRune('?'), overlayHelp},
		{keyRune('/'), overlayJump},
		{keyRune('e'), overlayEffects},
	}
	for _, tt := range tests {
		m := newTestModel(t)
		tm, _ := m.Update(tt.key)
		m = tm.(Model)
		if m.overlay != tt.want {
			t.Fatalf("overlay = %v, want %v", m.overlay, tt.want)
		}

		tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = tm.(Model)
		if m.overlay != overlayNone {
			t.Errorf("esc should close overlay %v", tt.want)
		}
	}
}

func TestEnterOpensDetailForActive(t *testing.T) {
	m := newTestModel(t)
	tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tm.(Model)

	if m.overlay != overlayDetail {
		t.Fatalf("overlay = %v, want detail", m.overlay)
	}
	if m.detail.section.ID != "hero" {
		t.Errorf("detail section = %q, want hero", m.detail.section.ID)
	}
}

func TestReloadKeepsActiveWhenPossible(t *testing.T) {
	m := newTestModel(t)
	m.effects.ReduceMotion = true
	tm, _ := m.Update(keyRune(']'))
	m = tm.(Model)

	tm, _ = m.Update(ReloadMsg{Portfolio: testPortfolio()})
	m = tm.(Model)
	if got := m.store.State().Active; got != "about" {
		t.Errorf("active after reload = %q, want about", got)
	}
}

func TestReloadFallsBackWhenSectionGone(t *testing.T) {
	m := newTestModel(t)
	m.effects.ReduceMotion = true
	tm, _ := m.Update(keyRune(']'))
	m = tm.(Model)

	p := testPortfolio()
	p.Sections = p.Sections[:1] // only hero survives
	tm, _ = m.Update(ReloadMsg{Portfolio: p})
	m = tm.(Model)

	if got := m.store.State().Active; got != "hero" {
		t.Errorf("active after shrinking reload = %q, want hero", got)
	}
	if m.registry.Len() != 1 {
		t.Errorf("registry size = %d, want 1", m.registry.Len())
	}
}

func TestFrameLoopStopsWhenIdle(t *testing.T) {
	m := newTestModel(t)
	m.ticking = true

	tm, cmd := m.handleFrame(time.Now())
	m = tm.(Model)

	if m.ticking {
		t.Error("frame loop should stop with nothing animating")
	}
	if cmd != nil {
		t.Error("idle frame should not reschedule")
	}
}

func TestResizePropagates(t *testing.T) {
	m := newTestModel(t)
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = tm.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	if m.contentHeight() != 38 {
		t.Errorf("contentHeight = %d, want 38", m.contentHeight())
	}
}
