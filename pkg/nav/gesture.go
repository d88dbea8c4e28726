package nav

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Gesture classification defaults. DragThreshold is T1: cumulative
// movement under it stays a click/selection, at or over it becomes a pan.
// VelocityWindow is the trailing window release velocity is measured over.
const (
	DefaultDragThreshold  = 5.0
	DefaultVelocityWindow = 100 * time.Millisecond
)

// GesturePhase is the classifier's state.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureClassifying
	GesturePanning
)

// GestureKind is the final classification of a finished gesture. Every
// gesture resolves to exactly one kind.
type GestureKind int

const (
	GestureNone GestureKind = iota // suppressed (interactive target) or never begun
	GestureTap
	GestureSelect
	GesturePan
)

// GestureResult is what End returns: the classification, the pointer
// position, and, for pans, the release velocity in cells per second.
type GestureResult struct {
	Kind     GestureKind
	Pos      r2.Vec
	Velocity r2.Vec
}

// BeginOptions describe the pointer-down target.
type BeginOptions struct {
	// Interactive marks hits on buttons/links: the gesture is suppressed
	// entirely so panning never swallows their clicks.
	Interactive bool
	// Text marks hits inside selectable text: a sub-threshold release
	// classifies as a selection instead of a tap.
	Text bool
}

type gestureSample struct {
	pos r2.Vec
	at  time.Time
}

// Classifier is the explicit gesture state machine: idle -> classifying ->
// panning, with the terminal tap/select/pan decision made at release.
// Nothing mutates the viewport until movement crosses the threshold, so a
// triple-click text selection can never be misread as a drag.
type Classifier struct {
	threshold float64
	window    time.Duration

	phase   GesturePhase
	start   r2.Vec
	last    r2.Vec
	onText  bool
	samples []gestureSample
}

// NewClassifier creates a classifier with the default threshold and
// velocity window.
func NewClassifier() *Classifier {
	return &Classifier{
		threshold: DefaultDragThreshold,
		window:    DefaultVelocityWindow,
	}
}

// SetThreshold overrides T1. Non-positive values are ignored.
func (c *Classifier) SetThreshold(t float64) {
	if t > 0 {
		c.threshold = t
	}
}

// Phase returns the classifier's current state.
func (c *Classifier) Phase() GesturePhase { return c.phase }

// Begin records pointer-down. State is not mutated here; classification
// waits for movement. A press on an interactive element conflicts with
// panning and the whole gesture is suppressed.
func (c *Classifier) Begin(pos r2.Vec, now time.Time, opts BeginOptions) {
	if err := c.begin(pos, now, opts); err != nil {
		// Conflict: stay idle so Move/End are no-ops. The error never
		// reaches callers; suppression is the whole handling.
		c.phase = GestureIdle
	}
}

func (c *Classifier) begin(pos r2.Vec, now time.Time, opts BeginOptions) error {
	if opts.Interactive {
		return errGestureConflict
	}
	c.phase = GestureClassifying
	c.start = pos
	c.last = pos
	c.onText = opts.Text
	c.samples = c.samples[:0]
	c.samples = append(c.samples, gestureSample{pos: pos, at: now})
	return nil
}

// Move processes pointer motion while pressed. While cumulative distance
// from the press stays under the threshold it returns (zero, false) and
// nothing happens. The crossing move returns the full accumulated delta
// so no motion is lost; subsequent moves return incremental deltas.
func (c *Classifier) Move(pos r2.Vec, now time.Time) (delta r2.Vec, panning bool) {
	switch c.phase {
	case GestureClassifying:
		if r2.Norm(pos.Sub(c.start)) < c.threshold {
			c.last = pos
			c.pushSample(pos, now)
			return r2.Vec{}, false
		}
		c.phase = GesturePanning
		c.last = pos
		c.pushSample(pos, now)
		return pos.Sub(c.start), true

	case GesturePanning:
		d := pos.Sub(c.last)
		c.last = pos
		c.pushSample(pos, now)
		return d, true

	default:
		return r2.Vec{}, false
	}
}

// End processes pointer-up and resets the classifier. A gesture that
// never crossed the threshold is a selection when it began on text,
// otherwise a tap; a pan reports its release velocity measured over the
// trailing window.
func (c *Classifier) End(now time.Time) GestureResult {
	defer func() {
		c.phase = GestureIdle
		c.samples = c.samples[:0]
	}()

	switch c.phase {
	case GestureClassifying:
		kind := GestureTap
		if c.onText {
			kind = GestureSelect
		}
		return GestureResult{Kind: kind, Pos: c.last}

	case GesturePanning:
		return GestureResult{
			Kind:     GesturePan,
			Pos:      c.last,
			Velocity: c.releaseVelocity(now),
		}

	default:
		return GestureResult{Kind: GestureNone}
	}
}

// Cancel aborts any gesture in progress without classification.
func (c *Classifier) Cancel() {
	c.phase = GestureIdle
	c.samples = c.samples[:0]
}

func (c *Classifier) pushSample(pos r2.Vec, now time.Time) {
	c.samples = append(c.samples, gestureSample{pos: pos, at: now})
	// Drop samples older than the velocity window, always keeping one
	// so a dt is available.
	cutoff := now.Add(-c.window)
	i := 0
	for i < len(c.samples)-1 && c.samples[i].at.Before(cutoff) {
		i++
	}
	c.samples = c.samples[i:]
}

func (c *Classifier) releaseVelocity(now time.Time) r2.Vec {
	if len(c.samples) < 2 {
		return r2.Vec{}
	}
	first := c.samples[0]
	lastSample := c.samples[len(c.samples)-1]
	dt := lastSample.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return r2.Vec{}
	}
	return lastSample.pos.Sub(first.pos).Scale(1 / dt)
}
