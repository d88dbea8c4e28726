package nav

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Phase is the transition phase of the viewport.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
)

// String returns the display name of the phase.
func (p Phase) String() string {
	if p == PhaseTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Zoom limits. The spec leaves the range open; these match what stays
// legible in a terminal grid.
const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// ViewportState is a read-only snapshot of the viewport. Renderers consume
// snapshots and compare Revision to decide whether to redo layout work.
type ViewportState struct {
	Offset   r2.Vec  // content coordinate of the top-left visible point
	Zoom     float64 // scale factor, 1.0 = one canvas cell per terminal cell
	Active   string  // active section ID
	Phase    Phase
	From     string  // source section during a transition
	To       string  // target section during a transition
	Progress float64 // raw transition progress 0..1
	Revision uint64  // bumped on every successful mutation
}

// Store owns the single ViewportState instance for a session. All mutation
// goes through its entry points; renderers only ever see snapshots. It is
// not safe for concurrent use; the event loop is the single writer.
type Store struct {
	reg   *Registry
	view  r2.Vec // viewport size in terminal cells
	state ViewportState
	gen   uint64 // animation generation; bumping it orphans in-flight steppers
	subs  []func(prev, cur string)
}

// NewStore creates the session viewport: active section is the first in
// the registry, offset framed on it, zoom 1.0.
func NewStore(reg *Registry, viewW, viewH float64) *Store {
	s := &Store{
		reg:  reg,
		view: r2.Vec{X: viewW, Y: viewH},
	}
	first := reg.First()
	s.state = ViewportState{
		Zoom:   1.0,
		Active: first.ID,
	}
	s.state.Offset = s.Clamp(r2.Vec{X: first.X, Y: first.Y})
	return s
}

// State returns a snapshot of the current viewport state.
func (s *Store) State() ViewportState { return s.state }

// Registry returns the section registry the store clamps against.
func (s *Store) Registry() *Registry { return s.reg }

// SetViewSize updates the viewport dimensions (terminal resize) and
// re-clamps the offset against the new visible span.
func (s *Store) SetViewSize(w, h float64) {
	s.view = r2.Vec{X: w, Y: h}
	if c := s.Clamp(s.state.Offset); c != s.state.Offset {
		s.state.Offset = c
		s.state.Revision++
	}
}

// ViewSize returns the viewport dimensions in terminal cells.
func (s *Store) ViewSize() (w, h float64) { return s.view.X, s.view.Y }

// Clamp truncates a candidate offset to the content bounds minus the
// visible span. Out-of-range values are truncated, never rejected.
func (s *Store) Clamp(v r2.Vec) r2.Vec {
	b := s.reg.Bounds()
	span := s.visibleSpan()
	maxX := b.Max.X - span.X
	maxY := b.Max.Y - span.Y
	// Content smaller than the viewport pins to the content origin.
	if maxX < b.Min.X {
		maxX = b.Min.X
	}
	if maxY < b.Min.Y {
		maxY = b.Min.Y
	}
	return r2.Vec{
		X: min(max(v.X, b.Min.X), maxX),
		Y: min(max(v.Y, b.Min.Y), maxY),
	}
}

// visibleSpan is the content-space extent covered by the viewport at the
// current zoom.
func (s *Store) visibleSpan() r2.Vec {
	z := s.state.Zoom
	if z <= 0 {
		z = 1
	}
	return r2.Vec{X: s.view.X / z, Y: s.view.Y / z}
}

// ViewRect returns the content-space rectangle currently visible, used by
// the reveal tracker and renderers.
func (s *Store) ViewRect() Rect {
	span := s.visibleSpan()
	return Rect{Min: s.state.Offset, Max: s.state.Offset.Add(span)}
}

// PanBy shifts the offset by a delta, clamped to content bounds. Returns
// whether the offset actually moved; a fully truncated delta is a no-op
// and does not bump the revision.
func (s *Store) PanBy(dx, dy float64) bool {
	return s.PanTo(s.state.Offset.X+dx, s.state.Offset.Y+dy)
}

// PanTo moves the offset to an absolute position, clamped.
func (s *Store) PanTo(x, y float64) bool {
	c := s.Clamp(r2.Vec{X: x, Y: y})
	if c == s.state.Offset {
		return false
	}
	s.state.Offset = c
	s.state.Revision++
	return true
}

// SetZoom sets the scale factor, clamped to [MinZoom, MaxZoom], and
// re-clamps the offset since the visible span changed.
func (s *Store) SetZoom(scale float64) {
	z := min(max(scale, MinZoom), MaxZoom)
	if z == s.state.Zoom {
		return
	}
	s.state.Zoom = z
	s.state.Offset = s.Clamp(s.state.Offset)
	s.state.Revision++
}

// Snap jumps to a section instantly with no animation (reduce-motion
// path). Any in-flight animation is orphaned.
func (s *Store) Snap(id string) error {
	sec, ok := s.reg.Get(id)
	if !ok {
		return &InvalidSectionError{ID: id}
	}
	s.Invalidate()
	prev := s.state.Active
	s.state.Offset = s.Clamp(r2.Vec{X: sec.X, Y: sec.Y})
	s.state.Active = id
	s.state.Phase = PhaseIdle
	s.state.From, s.state.To = "", ""
	s.state.Progress = 0
	s.state.Revision++
	s.notify(prev, id)
	return nil
}

// OnSectionChange registers a callback fired when the active section
// changes (transition completion or snap). Dependent visual systems such
// as ambient coloring and the metadata panel hang off this.
func (s *Store) OnSectionChange(fn func(prev, cur string)) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(prev, cur string) {
	if prev == cur {
		return
	}
	for _, fn := range s.subs {
		fn(prev, cur)
	}
}

// Generation returns the current animation generation. Steppers snapshot
// it at start and stop themselves once it moves on.
func (s *Store) Generation() uint64 { return s.gen }

// Invalidate advances the animation generation, cancelling any in-flight
// momentum or transition at its next step.
func (s *Store) Invalidate() uint64 {
	s.gen++
	return s.gen
}

// beginTransition flips the store into the transitioning phase. Called
// only by the Transitioner.
func (s *Store) beginTransition(from, to string) {
	s.state.Phase = PhaseTransitioning
	s.state.From = from
	s.state.To = to
	s.state.Progress = 0
	s.state.Revision++
}

// setInterpolated applies one transition frame. Offset arrives already
// eased; it is still clamped so a mid-transition resize cannot escape
// bounds.
func (s *Store) setInterpolated(offset r2.Vec, zoom, progress float64) {
	s.state.Zoom = min(max(zoom, MinZoom), MaxZoom)
	s.state.Offset = s.Clamp(offset)
	s.state.Progress = progress
	s.state.Revision++
}

// completeTransition lands the viewport on the target section.
func (s *Store) completeTransition() {
	prev := s.state.Active
	cur := s.state.To
	s.state.Active = cur
	s.state.Phase = PhaseIdle
	s.state.From, s.state.To = "", ""
	s.state.Progress = 0
	s.state.Revision++
	s.notify(prev, cur)
}
