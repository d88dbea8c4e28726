package model

import (
	"fmt"
	"strings"
)

// Section is one logical region of the portfolio. Sections are immutable
// after the registry loads them; the navigation core refers to them by ID.
type Section struct {
	ID    string  `yaml:"id"`
	Label string  `yaml:"label"`
	Body  string  `yaml:"body,omitempty"` // markdown
	X     float64 `yaml:"x"`              // canvas position, cell units
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w,omitempty"` // canvas extent; defaults applied by loader
	H     float64 `yaml:"h,omitempty"`
	Color string  `yaml:"color,omitempty"` // theme token, e.g. "#BD93F9"
}

// Capture holds the EXIF-styled metadata shown alongside a project,
// keeping the photography framing of the portfolio.
type Capture struct {
	Camera   string `yaml:"camera,omitempty"`
	Lens     string `yaml:"lens,omitempty"`
	Aperture string `yaml:"aperture,omitempty"`
	Shutter  string `yaml:"shutter,omitempty"`
	ISO      int    `yaml:"iso,omitempty"`
}

// Summary renders the capture as a compact EXIF line. Empty fields are
// skipped; a zero capture yields "".
func (c Capture) Summary() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{c.Camera, c.Lens, c.Aperture, c.Shutter} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if c.ISO != 0 {
		parts = append(parts, fmt.Sprintf("ISO %d", c.ISO))
	}
	return strings.Join(parts, " · ")
}

// Project is a single portfolio entry, attached to a section.
type Project struct {
	Title   string  `yaml:"title"`
	Section string  `yaml:"section"`
	Year    int     `yaml:"year,omitempty"`
	Medium  string  `yaml:"medium,omitempty"`
	Link    string  `yaml:"link,omitempty"`
	Body    string  `yaml:"body,omitempty"` // markdown
	Capture Capture `yaml:"capture,omitempty"`
}

// Portfolio is the full content document the viewer presents.
type Portfolio struct {
	Title    string    `yaml:"title"`
	Author   string    `yaml:"author,omitempty"`
	Tagline  string    `yaml:"tagline,omitempty"`
	Sections []Section `yaml:"sections"`
	Projects []Project `yaml:"projects,omitempty"`
}

// SectionByID returns the section with the given ID, or nil.
func (p *Portfolio) SectionByID(id string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// ProjectsFor returns the projects attached to a section, in document order.
func (p *Portfolio) ProjectsFor(sectionID string) []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Section == sectionID {
			out = append(out, pr)
		}
	}
	return out
}

// Clone creates a deep copy of the portfolio.
func (p Portfolio) Clone() Portfolio {
	clone := p
	if p.Sections != nil {
		clone.Sections = make([]Section, len(p.Sections))
		copy(clone.Sections, p.Sections)
	}
	if p.Projects != nil {
		clone.Projects = make([]Project, len(p.Projects))
		copy(clone.Projects, p.Projects)
	}
	return clone
}

// Validate checks structural integrity: unique non-empty section IDs,
// non-empty labels, and projects referencing known sections.
func (p *Portfolio) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("portfolio has no sections")
	}
	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("section %d has an empty id", i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate section id %q", id)
		}
		seen[id] = true
		if strings.TrimSpace(s.Label) == "" {
			return fmt.Errorf("section %q has an empty label", id)
		}
	}
	for _, pr := range p.Projects {
		if !seen[pr.Section] {
			return fmt.Errorf("project %q references unknown section %q", pr.Title, pr.Section)
		}
	}
	return nil
}

// Summary returns a one-line description used in logs and exports.
func (p *Portfolio) Summary() string {
	return fmt.Sprintf("%s (%d sections, %d projects)", p.Title, len(p.Sections), len(p.Projects))
}
