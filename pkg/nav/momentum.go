package nav

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Momentum defaults. Friction is the per-frame velocity multiplier at the
// reference frame rate; MinSpeed is the cells-per-second floor under which
// the fling stops.
const (
	DefaultFriction = 0.92
	DefaultMinSpeed = 2.0
	referenceFrame  = time.Second / 60
)

// Momentum continues a pan after pointer release, decaying the release
// velocity geometrically each frame until it is negligible or the
// viewport hits content bounds.
type Momentum struct {
	store    *Store
	friction float64
	minSpeed float64

	gen    uint64
	vel    r2.Vec // cells per second
	last   time.Time
	active bool
}

// NewMomentum creates a momentum stepper with default friction.
func NewMomentum(store *Store) *Momentum {
	return &Momentum{
		store:    store,
		friction: DefaultFriction,
		minSpeed: DefaultMinSpeed,
	}
}

// SetFriction overrides the per-frame decay multiplier. Values outside
// (0, 1) are ignored.
func (m *Momentum) SetFriction(f float64) {
	if f > 0 && f < 1 {
		m.friction = f
	}
}

// Active reports whether a fling is in flight.
func (m *Momentum) Active() bool { return m.active }

// Speed returns the current velocity magnitude in cells per second.
func (m *Momentum) Speed() float64 { return r2.Norm(m.vel) }

// Start begins a fling with the given release velocity. It takes over the
// animation generation, cancelling any in-flight transition since a user
// grabbing and throwing the canvas always wins.
func (m *Momentum) Start(vel r2.Vec, now time.Time) {
	if r2.Norm(vel) < m.minSpeed {
		m.active = false
		return
	}
	m.gen = m.store.Invalidate()
	m.vel = vel
	m.last = now
	m.active = true
}

// Step advances the fling to the given instant, returning true while more
// frames are wanted. The fling ends when speed decays under the floor,
// when the viewport stops moving (bounds hit), or when a newer animation
// has taken the generation.
func (m *Momentum) Step(now time.Time) bool {
	if !m.active {
		return false
	}
	if m.store.Generation() != m.gen {
		m.active = false
		return false
	}

	dt := now.Sub(m.last)
	m.last = now
	if dt <= 0 {
		return true
	}

	d := m.vel.Scale(dt.Seconds())
	if !m.store.PanBy(d.X, d.Y) {
		m.active = false
		return false
	}

	// Normalize the geometric decay to the actual frame interval so
	// uneven tick spacing does not change the feel.
	frames := float64(dt) / float64(referenceFrame)
	m.vel = m.vel.Scale(math.Pow(m.friction, frames))

	if r2.Norm(m.vel) < m.minSpeed {
		m.active = false
		return false
	}
	return true
}
