package nav

// DefaultRevealFraction is the intersection fraction a section must reach
// before it counts as revealed.
const DefaultRevealFraction = 0.10

// RevealTracker reports which sections have ever been visible, for
// one-shot reveal animations. It is deliberately independent of the
// active-section model: many sections can be revealed at once, and a
// revealed section never reverts when scrolled away. Do not conflate the
// two: the active section answers "where is navigation pointed", reveal
// answers "has this section ever earned its entrance animation".
type RevealTracker struct {
	reg      *Registry
	fraction float64
	revealed map[string]bool
}

// NewRevealTracker creates a tracker over the registry's sections. A
// fraction outside (0, 1] falls back to the default.
func NewRevealTracker(reg *Registry, fraction float64) *RevealTracker {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultRevealFraction
	}
	return &RevealTracker{
		reg:      reg,
		fraction: fraction,
		revealed: make(map[string]bool, reg.Len()),
	}
}

// Observe examines the current view rectangle and marks sections whose
// visible fraction meets the threshold. Returns the IDs newly revealed by
// this observation, in registry order.
func (t *RevealTracker) Observe(view Rect) []string {
	var newly []string
	for i := 0; i < t.reg.Len(); i++ {
		s := t.reg.At(i)
		if t.revealed[s.ID] {
			continue
		}
		if t.VisibleFraction(s.ID, view) >= t.fraction {
			t.revealed[s.ID] = true
			newly = append(newly, s.ID)
		}
	}
	return newly
}

// VisibleFraction returns how much of a section's rect intersects the
// view, as a fraction of the section's area. Unknown IDs report 0.
func (t *RevealTracker) VisibleFraction(id string, view Rect) float64 {
	sr, ok := t.reg.SectionRect(id)
	if !ok || sr.Area() == 0 {
		return 0
	}
	return sr.Intersect(view).Area() / sr.Area()
}

// Revealed reports whether a section has ever been revealed. Monotonic:
// once true, always true.
func (t *RevealTracker) Revealed(id string) bool { return t.revealed[id] }

// RevealedCount returns how many sections have been revealed so far.
func (t *RevealTracker) RevealedCount() int { return len(t.revealed) }
