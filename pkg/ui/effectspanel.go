package ui

import (
	"errors"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lightbox/pkg/prefs"
)

// effectsFields holds the form-bound values. It lives behind a pointer
// so the huh field bindings stay valid across model copies.
type effectsFields struct {
	durationMS   string
	friction     string
	threshold    string
	reveal       string
	themeName    string
	mode         string
	reduceMotion bool
}

// EffectsPanelModel hosts the settings form: motion, gesture, and
// theme knobs bound to string fields, validated and converted back to
// an Effects value on submit.
type EffectsPanelModel struct {
	theme         Theme
	form          *huh.Form
	vals          *effectsFields
	width, height int
}

func NewEffectsPanelModel(e prefs.Effects, theme Theme) EffectsPanelModel {
	p := EffectsPanelModel{theme: theme, width: 80, height: 24}
	p.bind(e)
	return p
}

func (p *EffectsPanelModel) SetTheme(t Theme) { p.theme = t }

func (p *EffectsPanelModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// bind loads an effects value into fresh form fields and rebuilds the
// form around them.
func (p *EffectsPanelModel) bind(e prefs.Effects) {
	v := &effectsFields{
		durationMS:   strconv.Itoa(int(e.TransitionDuration / time.Millisecond)),
		friction:     strconv.FormatFloat(e.Friction, 'f', 2, 64),
		threshold:    strconv.FormatFloat(e.DragThreshold, 'f', 1, 64),
		reveal:       strconv.FormatFloat(e.RevealFraction, 'f', 2, 64),
		themeName:    e.Theme,
		mode:         e.Mode,
		reduceMotion: e.ReduceMotion,
	}
	p.vals = v

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Transition duration (ms)").
				Value(&v.durationMS).
				Validate(validateIntRange(50, 2000)),
			huh.NewInput().
				Title("Momentum friction").
				Value(&v.friction).
				Validate(validateFloatRange(0.5, 0.99)),
			huh.NewInput().
				Title("Drag threshold (cells)").
				Value(&v.threshold).
				Validate(validateFloatRange(1, 20)),
			huh.NewInput().
				Title("Reveal fraction").
				Value(&v.reveal).
				Validate(validateFloatRange(0.01, 1)),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("dusk", "noon")...).
				Value(&v.themeName),
			huh.NewSelect[string]().
				Title("Startup mode").
				Options(huh.NewOptions("scroll", "canvas", "timeline")...).
				Value(&v.mode),
			huh.NewConfirm().
				Title("Reduce motion").
				Affirmative("On").
				Negative("Off").
				Value(&v.reduceMotion),
		),
	).WithShowHelp(true)
}

// Open resets the form to the live effects and starts it.
func (p *EffectsPanelModel) Open(e prefs.Effects) {
	p.bind(e)
	p.form.Init()
}

// effects converts the submitted fields back into an Effects value.
// Validation already constrained them; parse errors fall back to the
// defaults.
func (p *EffectsPanelModel) effects() prefs.Effects {
	v := p.vals
	e := prefs.Effects{
		TransitionDuration: prefs.DefaultTransitionMS * time.Millisecond,
		Friction:           prefs.DefaultFriction,
		DragThreshold:      prefs.DefaultDragThreshold,
		RevealFraction:     prefs.DefaultRevealFraction,
		Theme:              v.themeName,
		Mode:               v.mode,
		ReduceMotion:       v.reduceMotion,
	}
	if ms, err := strconv.Atoi(v.durationMS); err == nil {
		e.TransitionDuration = time.Duration(ms) * time.Millisecond
	}
	if f, err := strconv.ParseFloat(v.friction, 64); err == nil {
		e.Friction = f
	}
	if f, err := strconv.ParseFloat(v.threshold, 64); err == nil {
		e.DragThreshold = f
	}
	if f, err := strconv.ParseFloat(v.reveal, 64); err == nil {
		e.RevealFraction = f
	}
	return e
}

// updateEffectsPanel routes messages into the form and applies the
// result on completion.
func (m Model) updateEffectsPanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.panel.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.panel.form = f
	}

	switch m.panel.form.State {
	case huh.StateCompleted:
		m.overlay = overlayNone
		return m, tea.Batch(cmd, m.applyEffects(m.panel.effects()))
	case huh.StateAborted:
		m.overlay = overlayNone
		return m, cmd
	}
	return m, cmd
}

func (p EffectsPanelModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.theme.Accent).Render("Effects")
	panel := FocusedPanelStyle.
		BorderForeground(p.theme.Accent).
		Padding(1, 2).
		Render(title + "\n\n" + p.form.View())
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, panel)
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return errors.New("out of range " + strconv.Itoa(lo) + ".." + strconv.Itoa(hi))
		}
		return nil
	}
}

func validateFloatRange(lo, hi float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if f < lo || f > hi {
			return errors.New("out of range")
		}
		return nil
	}
}
