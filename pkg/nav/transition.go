package nav

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultTransitionDuration is the fixed length of a section transition.
const DefaultTransitionDuration = 400 * time.Millisecond

// FocusZoom is the zoom level a transition settles on, so a jump always
// lands on a readable framing regardless of how far out the user was.
const FocusZoom = 1.0

// Transitioner animates the viewport between sections: Idle ->
// Transitioning -> Idle, fixed duration, cubic ease-in-out applied in
// time. A JumpTo received mid-transition interrupts: the path is
// recomputed from the live interpolated position, never the original
// source, so there is no visible snap-back.
type Transitioner struct {
	store    *Store
	duration time.Duration

	gen      uint64
	startAt  time.Time
	from     r2.Vec
	fromZoom float64
	to       r2.Vec
	toZoom   float64
	active   bool
}

// NewTransitioner creates a transition controller for the store. A
// non-positive duration falls back to the default.
func NewTransitioner(store *Store, duration time.Duration) *Transitioner {
	if duration <= 0 {
		duration = DefaultTransitionDuration
	}
	return &Transitioner{store: store, duration: duration}
}

// Duration returns the configured transition length.
func (t *Transitioner) Duration() time.Duration { return t.duration }

// SetDuration adjusts the transition length for subsequent jumps.
func (t *Transitioner) SetDuration(d time.Duration) {
	if d > 0 {
		t.duration = d
	}
}

// Active reports whether a transition is in flight.
func (t *Transitioner) Active() bool { return t.active }

// JumpTo starts an animated transition to the named section. An unknown
// ID returns InvalidSectionError and leaves the viewport untouched.
// Starting a jump cancels any in-flight momentum or transition.
func (t *Transitioner) JumpTo(id string, now time.Time) error {
	sec, ok := t.store.Registry().Get(id)
	if !ok {
		return &InvalidSectionError{ID: id}
	}

	st := t.store.State()
	if st.Phase == PhaseIdle && st.Active == id {
		// Already there and settled.
		return nil
	}

	t.gen = t.store.Invalidate()
	t.startAt = now
	// Source is the live position: covers both idle starts and
	// interrupts of a running transition.
	t.from = st.Offset
	t.fromZoom = st.Zoom
	t.to = t.store.Clamp(r2.Vec{X: sec.X, Y: sec.Y})
	t.toZoom = FocusZoom
	t.active = true

	t.store.beginTransition(st.Active, id)
	return nil
}

// Step advances the transition to the given instant. Returns true while
// the animation still wants frames. Stale generations (a newer jump or
// gesture took over) stop silently without touching state.
func (t *Transitioner) Step(now time.Time) bool {
	if !t.active {
		return false
	}
	if t.store.Generation() != t.gen {
		t.active = false
		return false
	}

	p := float64(now.Sub(t.startAt)) / float64(t.duration)
	if p >= 1 {
		t.store.setInterpolated(t.to, t.toZoom, 1)
		t.store.completeTransition()
		t.active = false
		return false
	}
	if p < 0 {
		p = 0
	}

	// Easing applies to time; offset and zoom interpolate linearly in
	// eased time so they stay in lockstep.
	w := easeInOutCubic(p)
	offset := t.from.Add(t.to.Sub(t.from).Scale(w))
	zoom := t.fromZoom + (t.toZoom-t.fromZoom)*w
	t.store.setInterpolated(offset, zoom, p)
	return true
}

func easeInOutCubic(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}
