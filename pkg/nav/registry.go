// Package nav implements the section-navigation and viewport-position core
// shared by every presentation mode: an ordered section registry, a
// single-writer viewport store, gesture classification, momentum, animated
// transitions between sections, and one-shot reveal tracking.
//
// The package is presentation-agnostic and steps on explicit time.Time
// values, so all animation behavior is unit-testable with a fake clock.
package nav

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"lightbox/pkg/model"
)

// Rect is an axis-aligned rectangle in canvas cell coordinates.
type Rect struct {
	Min, Max r2.Vec
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Area returns the rectangle's area, zero for degenerate rects.
func (r Rect) Area() float64 {
	w := r.Max.X - r.Min.X
	h := r.Max.Y - r.Min.Y
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Intersect returns the overlap of two rectangles. The result may be
// degenerate (Area() == 0) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: r2.Vec{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: r2.Vec{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
	return out
}

// Registry is the static ordered lookup table of sections. It is built
// once from the portfolio and never mutated afterwards.
type Registry struct {
	sections []model.Section
	index    map[string]int
	bounds   Rect
}

// NewRegistry builds a registry from the portfolio's sections. Section
// order is document order; IDs must already be validated unique.
func NewRegistry(sections []model.Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("registry requires at least one section")
	}

	r := &Registry{
		sections: make([]model.Section, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	copy(r.sections, sections)

	for i, s := range r.sections {
		if _, dup := r.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		r.index[s.ID] = i
	}

	r.bounds = sectionRect(r.sections[0])
	for _, s := range r.sections[1:] {
		sr := sectionRect(s)
		r.bounds.Min.X = min(r.bounds.Min.X, sr.Min.X)
		r.bounds.Min.Y = min(r.bounds.Min.Y, sr.Min.Y)
		r.bounds.Max.X = max(r.bounds.Max.X, sr.Max.X)
		r.bounds.Max.Y = max(r.bounds.Max.Y, sr.Max.Y)
	}

	return r, nil
}

func sectionRect(s model.Section) Rect {
	return Rect{
		Min: r2.Vec{X: s.X, Y: s.Y},
		Max: r2.Vec{X: s.X + s.W, Y: s.Y + s.H},
	}
}

// Len returns the number of sections.
func (r *Registry) Len() int { return len(r.sections) }

// At returns the section at ordered index i.
func (r *Registry) At(i int) model.Section { return r.sections[i] }

// Get returns the section with the given ID.
func (r *Registry) Get(id string) (model.Section, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.Section{}, false
	}
	return r.sections[i], true
}

// IndexOf returns the ordered index of a section ID, or -1.
func (r *Registry) IndexOf(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}

// First returns the first section in registry order, the default active
// section at mount.
func (r *Registry) First() model.Section { return r.sections[0] }

// Next returns the section after id in registry order.
func (r *Registry) Next(id string) (model.Section, bool) {
	i, ok := r.index[id]
	if !ok || i+1 >= len(r.sections) {
		return model.Section{}, false
	}
	return r.sections[i+1], true
}

// Prev returns the section before id in registry order.
func (r *Registry) Prev(id string) (model.Section, bool) {
	i, ok := r.index[id]
	if !ok || i == 0 {
		return model.Section{}, false
	}
	return r.sections[i-1], true
}

// IDs returns all section IDs in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.sections))
	for i, s := range r.sections {
		ids[i] = s.ID
	}
	return ids
}

// Bounds returns the content-bounds rectangle: the union of all section
// rects. Pan offsets are clamped against it so the viewport can never
// wander into empty space.
func (r *Registry) Bounds() Rect { return r.bounds }

// SectionRect returns the canvas rectangle occupied by a section.
func (r *Registry) SectionRect(id string) (Rect, bool) {
	s, ok := r.Get(id)
	if !ok {
		return Rect{}, false
	}
	return sectionRect(s), true
}
