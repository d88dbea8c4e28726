package nav

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// newTestStore builds a store over the 2x2 layout with an 80x24 viewport.
// At zoom 1 the clampable offset range is x in [0,36], y in [0,16].
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(mustRegistry(t), 80, 24)
}

func TestNewStoreDefaults(t *testing.T) {
	s := newTestStore(t)
	st := s.State()

	if st.Active != "hero" {
		t.Errorf("initial Active = %q, want hero", st.Active)
	}
	if st.Phase != PhaseIdle {
		t.Errorf("initial Phase = %v, want idle", st.Phase)
	}
	if st.Zoom != 1.0 {
		t.Errorf("initial Zoom = %v, want 1.0", st.Zoom)
	}
	if got := s.Clamp(st.Offset); got != st.Offset {
		t.Errorf("initial offset %v not clamped (clamp = %v)", st.Offset, got)
	}
}

func TestPanByClampProperty(t *testing.T) {
	s := newTestStore(t)

	// Arbitrary pan sequence, including wildly out-of-range deltas. After
	// every call the offset must satisfy clamp(offset) == offset.
	deltas := [][2]float64{
		{10, 5}, {-300, 0}, {0, 1e6}, {7.5, -3.25}, {1000, 1000},
		{-0.1, -0.1}, {36, 16}, {-1e9, -1e9},
	}
	for i, d := range deltas {
		s.PanBy(d[0], d[1])
		st := s.State()
		if got := s.Clamp(st.Offset); got != st.Offset {
			t.Fatalf("after pan %d (%v): offset %v escaped bounds (clamp = %v)",
				i, d, st.Offset, got)
		}
	}
}

func TestPanByTruncatesAtBounds(t *testing.T) {
	s := newTestStore(t)

	// A huge delta is truncated to the bound, not rejected.
	if !s.PanBy(1e6, 1e6) {
		t.Fatal("PanBy into bounds reported no movement")
	}
	st := s.State()
	if st.Offset != vec(36, 16) {
		t.Errorf("offset after huge pan = %v, want (36,16)", st.Offset)
	}

	// Already pinned: same direction again moves nothing.
	rev := st.Revision
	if s.PanBy(50, 50) {
		t.Error("PanBy at the bound reported movement")
	}
	if s.State().Revision != rev {
		t.Error("no-op pan bumped the revision counter")
	}
}

func TestRevisionMonotonic(t *testing.T) {
	s := newTestStore(t)

	var prev uint64
	mutations := []func(){
		func() { s.PanBy(5, 0) },
		func() { s.PanBy(0, 3) },
		func() { s.SetZoom(2) },
		func() { _ = s.Snap("work") },
	}
	for i, mut := range mutations {
		mut()
		rev := s.State().Revision
		if rev <= prev {
			t.Fatalf("mutation %d: revision %d did not increase past %d", i, rev, prev)
		}
		prev = rev
	}
}

func TestSetZoomClamps(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		in   float64
		want float64
	}{
		{2.0, 2.0},
		{100, MaxZoom},
		{0.01, MinZoom},
		{-1, MinZoom},
	}
	for _, tt := range tests {
		s.SetZoom(tt.in)
		if got := s.State().Zoom; got != tt.want {
			t.Errorf("SetZoom(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZoomOutReclamps(t *testing.T) {
	s := newTestStore(t)
	s.PanBy(36, 16) // pin to the max corner at zoom 1

	// Zooming out widens the visible span; the old offset would show
	// empty space, so it must be pulled back in.
	s.SetZoom(0.5)
	st := s.State()
	if got := s.Clamp(st.Offset); got != st.Offset {
		t.Errorf("offset %v not re-clamped after zoom out (clamp = %v)", st.Offset, got)
	}
}

func TestSnap(t *testing.T) {
	s := newTestStore(t)

	if err := s.Snap("about"); err != nil {
		t.Fatalf("Snap(about) error = %v", err)
	}
	st := s.State()
	if st.Active != "about" || st.Phase != PhaseIdle {
		t.Errorf("after Snap: active=%q phase=%v, want about/idle", st.Active, st.Phase)
	}
}

func TestSnapUnknownSection(t *testing.T) {
	s := newTestStore(t)
	before := s.State()

	err := s.Snap("nonexistent")
	if err == nil {
		t.Fatal("Snap(nonexistent) succeeded, want InvalidSectionError")
	}
	var ise *InvalidSectionError
	if !errors.As(err, &ise) || ise.ID != "nonexistent" {
		t.Errorf("error = %v, want InvalidSectionError{nonexistent}", err)
	}
	if s.State() != before {
		t.Error("failed snap mutated viewport state")
	}
}

func TestSectionChangeNotification(t *testing.T) {
	s := newTestStore(t)

	var gotPrev, gotCur string
	calls := 0
	s.OnSectionChange(func(prev, cur string) {
		gotPrev, gotCur = prev, cur
		calls++
	})

	if err := s.Snap("contact"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || gotPrev != "hero" || gotCur != "contact" {
		t.Errorf("notification = (%q -> %q, %d calls), want hero -> contact, 1 call",
			gotPrev, gotCur, calls)
	}

	// Snapping to the current section must not refire.
	if err := s.Snap("contact"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("self-snap fired notification (calls = %d)", calls)
	}
}

func TestSetViewSizeReclamps(t *testing.T) {
	s := newTestStore(t)
	s.PanBy(36, 16)

	// A larger viewport shrinks the clampable range.
	s.SetViewSize(116, 40)
	st := s.State()
	if st.Offset != vec(0, 0) {
		t.Errorf("offset after full-content viewport = %v, want origin", st.Offset)
	}
}

func TestViewRect(t *testing.T) {
	s := newTestStore(t)
	s.SetZoom(2)

	vr := s.ViewRect()
	w := vr.Max.X - vr.Min.X
	h := vr.Max.Y - vr.Min.Y
	if math.Abs(w-40) > 1e-9 || math.Abs(h-12) > 1e-9 {
		t.Errorf("ViewRect span at zoom 2 = %vx%v, want 40x12", w, h)
	}
}

func TestInvalidateAdvancesGeneration(t *testing.T) {
	s := newTestStore(t)
	g0 := s.Generation()
	g1 := s.Invalidate()
	if g1 <= g0 || s.Generation() != g1 {
		t.Errorf("Invalidate() = %d after %d, Generation() = %d", g1, g0, s.Generation())
	}
}
