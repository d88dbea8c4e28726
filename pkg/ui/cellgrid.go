package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellGrid is a fixed-size rune buffer the canvas renderer composites
// into before styling. Styling per cell is a color token; runs of the
// same token on a line collapse into a single styled segment so the
// output stays cheap to emit.
type cellGrid struct {
	w, h   int
	runes  []rune
	colors []lipgloss.Color
	bold   []bool
}

func newCellGrid(w, h int, fill lipgloss.Color) *cellGrid {
	g := &cellGrid{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		colors: make([]lipgloss.Color, w*h),
		bold:   make([]bool, w*h),
	}
	for i := range g.runes {
		g.runes[i] = ' '
		g.colors[i] = fill
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune, c lipgloss.Color, bold bool) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	i := y*g.w + x
	g.runes[i] = r
	g.colors[i] = c
	g.bold[i] = bold
}

func (g *cellGrid) text(x, y int, s string, c lipgloss.Color, bold bool) {
	for _, r := range s {
		g.set(x, y, r, c, bold)
		x++
	}
}

// box draws a rectangular border. Double-line glyphs mark the active
// section; everything else gets single lines.
func (g *cellGrid) box(x, y, w, h int, c lipgloss.Color, double bool) {
	if w < 2 || h < 2 {
		return
	}
	hr, vr := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if double {
		hr, vr = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}
	for i := 1; i < w-1; i++ {
		g.set(x+i, y, hr, c, double)
		g.set(x+i, y+h-1, hr, c, double)
	}
	for j := 1; j < h-1; j++ {
		g.set(x, y+j, vr, c, double)
		g.set(x+w-1, y+j, vr, c, double)
	}
	g.set(x, y, tl, c, double)
	g.set(x+w-1, y, tr, c, double)
	g.set(x, y+h-1, bl, c, double)
	g.set(x+w-1, y+h-1, br, c, double)
}

// render emits the grid as styled lines, coalescing same-style runs.
func (g *cellGrid) render() string {
	var out strings.Builder
	for y := 0; y < g.h; y++ {
		runStart := 0
		row := y * g.w
		for x := 1; x <= g.w; x++ {
			if x < g.w &&
				g.colors[row+x] == g.colors[row+runStart] &&
				g.bold[row+x] == g.bold[row+runStart] {
				continue
			}
			seg := string(g.runes[row+runStart : row+x])
			style := lipgloss.NewStyle().Foreground(g.colors[row+runStart])
			if g.bold[row+runStart] {
				style = style.Bold(true)
			}
			out.WriteString(style.Render(seg))
			runStart = x
		}
		if y < g.h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
