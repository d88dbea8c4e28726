// Package loader reads portfolio documents from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lightbox/pkg/model"
)

// DefaultFileName is the portfolio file looked up in the working directory.
const DefaultFileName = "portfolio.yaml"

// Load reads a portfolio. If path is empty, the search order is
// ./portfolio.yaml, then ~/.config/lightbox/portfolio.yaml; when neither
// exists the built-in default portfolio is returned so the viewer always
// has something to show.
func Load(path string) (model.Portfolio, error) {
	if resolved, ok := Resolve(path); ok {
		return LoadFile(resolved)
	}
	return DefaultPortfolio(), nil
}

// Resolve finds the portfolio file Load would read. ok is false when no
// file exists and the built-in portfolio applies; the caller then has
// nothing to watch for edits.
func Resolve(path string) (resolved string, ok bool) {
	if path != "" {
		return path, true
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, true
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "lightbox", DefaultFileName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// LoadFile reads and validates a portfolio from a specific YAML file.
func LoadFile(path string) (model.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("read portfolio file: %w", err)
	}

	var p model.Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return model.Portfolio{}, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&p)
	if err := p.Validate(); err != nil {
		return model.Portfolio{}, fmt.Errorf("invalid portfolio in %s: %w", path, err)
	}

	return p, nil
}

// Section extents default to one canvas cell of 56x18 so authors only
// have to place sections, not size them.
const (
	defaultSectionW = 56
	defaultSectionH = 18
)

func applyDefaults(p *model.Portfolio) {
	if p.Title == "" {
		p.Title = "Portfolio"
	}
	for i := range p.Sections {
		if p.Sections[i].W <= 0 {
			p.Sections[i].W = defaultSectionW
		}
		if p.Sections[i].H <= 0 {
			p.Sections[i].H = defaultSectionH
		}
	}
}

// DefaultPortfolio returns the built-in demo content used when no
// portfolio file is present.
func DefaultPortfolio() model.Portfolio {
	p := model.Portfolio{
		Title:   "Lightbox",
		Tagline: "a portfolio on the contact sheet",
		Sections: []model.Section{
			{ID: "hero", Label: "Hero", X: 0, Y: 0, Color: "#BD93F9",
				Body: "# Lightbox\n\nDrop a `portfolio.yaml` next to the binary to show your own work."},
			{ID: "about", Label: "About", X: 60, Y: 0, Color: "#8BE9FD",
				Body: "Shot wide open, developed in the terminal."},
			{ID: "work", Label: "Work", X: 0, Y: 22, Color: "#50FA7B",
				Body: "Selected projects."},
			{ID: "contact", Label: "Contact", X: 60, Y: 22, Color: "#FFB86C",
				Body: "you@example.com"},
		},
		Projects: []model.Project{
			{
				Title: "Sample Frame", Section: "work", Year: 2025, Medium: "demo",
				Body: "A placeholder entry. Replace it with your own projects.",
				Capture: model.Capture{
					Camera: "Terminal", Aperture: "f/1.4", Shutter: "1/250", ISO: 400,
				},
			},
		},
	}
	applyDefaults(&p)
	return p
}
