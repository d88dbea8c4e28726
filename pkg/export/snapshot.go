// Package export renders the canvas layout to shareable images: an SVG
// and a PNG of the section map, with the active section marked.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"lightbox/pkg/nav"
)

// DefaultScale is pixels per canvas cell.
const DefaultScale = 8

// Palette fallbacks for sections without a color token.
const (
	bgColor      = "#1E1F29"
	sectionFill  = "#282A36"
	sectionColor = "#BD93F9"
	labelColor   = "#F8F8F2"
)

// Snapshot describes one canvas render.
type Snapshot struct {
	Title    string
	Registry *nav.Registry
	Active   string  // active section ID, outlined in the render
	Scale    float64 // pixels per cell; DefaultScale when zero
}

func (s Snapshot) scale() float64 {
	if s.Scale <= 0 {
		return DefaultScale
	}
	return s.Scale
}

// pixel dimensions of the full canvas, with a one-cell margin.
func (s Snapshot) dimensions() (w, h int, origin nav.Rect) {
	b := s.Registry.Bounds()
	sc := s.scale()
	w = int((b.Max.X-b.Min.X)*sc + 2*sc)
	h = int((b.Max.Y-b.Min.Y)*sc + 2*sc)
	return w, h, b
}

// WriteSVG renders the section map as SVG.
func (s Snapshot) WriteSVG(w io.Writer) error {
	pw, ph, b := s.dimensions()
	sc := s.scale()

	canvas := svg.New(w)
	canvas.Start(pw, ph)
	canvas.Rect(0, 0, pw, ph, "fill:"+bgColor)

	for i := 0; i < s.Registry.Len(); i++ {
		sec := s.Registry.At(i)
		x := int((sec.X-b.Min.X)*sc + sc)
		y := int((sec.Y-b.Min.Y)*sc + sc)
		sw := int(sec.W * sc)
		sh := int(sec.H * sc)

		accent := sec.Color
		if accent == "" {
			accent = sectionColor
		}
		stroke := 1
		if sec.ID == s.Active {
			stroke = 3
		}
		canvas.Rect(x, y, sw, sh,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", sectionFill, accent, stroke))
		canvas.Text(x+sw/2, y+sh/2, sec.Label,
			fmt.Sprintf("fill:%s;text-anchor:middle;font-family:monospace;font-size:%dpx", labelColor, int(sc*1.5)))
	}

	if s.Title != "" {
		canvas.Text(int(sc), int(sc*0.75), s.Title,
			fmt.Sprintf("fill:%s;font-family:monospace;font-size:%dpx", labelColor, int(sc)))
	}
	canvas.End()
	return nil
}

// WritePNG renders the section map as PNG.
func (s Snapshot) WritePNG(w io.Writer) error {
	pw, ph, b := s.dimensions()
	sc := s.scale()

	dc := gg.NewContext(pw, ph)
	dc.SetHexColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i := 0; i < s.Registry.Len(); i++ {
		sec := s.Registry.At(i)
		x := (sec.X-b.Min.X)*sc + sc
		y := (sec.Y-b.Min.Y)*sc + sc
		sw := sec.W * sc
		sh := sec.H * sc

		dc.SetHexColor(sectionFill)
		dc.DrawRectangle(x, y, sw, sh)
		dc.Fill()

		accent := sec.Color
		if accent == "" {
			accent = sectionColor
		}
		dc.SetHexColor(accent)
		if sec.ID == s.Active {
			dc.SetLineWidth(3)
		} else {
			dc.SetLineWidth(1)
		}
		dc.DrawRectangle(x, y, sw, sh)
		dc.Stroke()

		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(sec.Label, x+sw/2, y+sh/2, 0.5, 0.5)
	}

	if s.Title != "" {
		dc.SetHexColor(labelColor)
		dc.DrawString(s.Title, sc, sc*0.75)
	}
	return dc.EncodePNG(w)
}

// WriteFiles writes <base>.svg and <base>.png side by side. The two
// encoders are independent, so they run concurrently.
func (s Snapshot) WriteFiles(base string) error {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		f, err := os.Create(base + ".svg")
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		defer f.Close()
		return s.WriteSVG(f)
	})
	g.Go(func() error {
		f, err := os.Create(base + ".png")
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		defer f.Close()
		return s.WritePNG(f)
	})
	return g.Wait()
}
