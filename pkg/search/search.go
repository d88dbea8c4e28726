// Package search backs the quick-jump overlay: fuzzy matching across
// section labels and project titles.
package search

import (
	"github.com/sahilm/fuzzy"

	"lightbox/pkg/model"
)

// Kind distinguishes what a match points at.
type Kind int

const (
	KindSection Kind = iota
	KindProject
)

// Entry is one jump target in the index.
type Entry struct {
	Kind    Kind
	Section string // section to navigate to
	Title   string // display text, what the query matches against
}

// Result is a ranked match with the rune indexes to highlight.
type Result struct {
	Entry
	Score   int
	Matched []int
}

// Index is the immutable search index over a portfolio. Rebuild it when
// the portfolio reloads.
type Index struct {
	entries []Entry
	titles  []string
}

// NewIndex builds the index: sections first in registry order, then
// projects in document order.
func NewIndex(p model.Portfolio) *Index {
	ix := &Index{}
	for _, s := range p.Sections {
		ix.entries = append(ix.entries, Entry{Kind: KindSection, Section: s.ID, Title: s.Label})
	}
	for _, pr := range p.Projects {
		ix.entries = append(ix.entries, Entry{Kind: KindProject, Section: pr.Section, Title: pr.Title})
	}
	ix.titles = make([]string, len(ix.entries))
	for i, e := range ix.entries {
		ix.titles[i] = e.Title
	}
	return ix
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Query returns ranked matches for the pattern. An empty pattern returns
// every entry in index order with no highlights, so the overlay can show
// the full jump list before typing starts.
func (ix *Index) Query(pattern string) []Result {
	if pattern == "" {
		out := make([]Result, len(ix.entries))
		for i, e := range ix.entries {
			out[i] = Result{Entry: e}
		}
		return out
	}

	matches := fuzzy.Find(pattern, ix.titles)
	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, Result{
			Entry:   ix.entries[m.Index],
			Score:   m.Score,
			Matched: m.MatchedIndexes,
		})
	}
	return out
}
