package main

import (
	"flag"
	"fmt"
	"os"

	"lightbox/pkg/export"
	"lightbox/pkg/loader"
	"lightbox/pkg/nav"
	"lightbox/pkg/prefs"
	"lightbox/pkg/ui"
	"lightbox/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	file := flag.String("file", "", "Portfolio YAML file (default: ./portfolio.yaml, then ~/.config/lightbox/)")
	mode := flag.String("mode", "", "Start in a mode: scroll, canvas, or timeline")
	exportBase := flag.String("export", "", "Write <base>.svg and <base>.png snapshots and exit")
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lightbox [options]")
		fmt.Println("\nA terminal portfolio viewer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Println("lightbox version 0.1.0")
		os.Exit(0)
	}

	portfolio, err := loader.Load(*file)
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		os.Exit(1)
	}

	// Headless export needs no terminal.
	if *exportBase != "" {
		reg, err := nav.NewRegistry(portfolio.Sections)
		if err != nil {
			fmt.Printf("Error building canvas: %v\n", err)
			os.Exit(1)
		}
		active := ""
		if reg.Len() > 0 {
			active = reg.First().ID
		}
		snap := export.Snapshot{Title: portfolio.Title, Registry: reg, Active: active}
		if err := snap.WriteFiles(*exportBase); err != nil {
			fmt.Printf("Error exporting snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s.svg and %s.png\n", *exportBase, *exportBase)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("lightbox needs a terminal; use -export for headless snapshots.")
		os.Exit(1)
	}

	// Preferences are best effort; the viewer runs on defaults without them.
	var prefStore *prefs.Store
	if dbPath, err := prefs.DefaultPath(); err == nil {
		if s, err := prefs.Open(dbPath); err == nil {
			prefStore = s
			defer s.Close()
		}
	}

	m, err := ui.NewModel(portfolio, prefStore)
	if err != nil {
		fmt.Printf("Error building viewer: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		m.SetMode(ui.ModeByName(*mode))
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Live-reload edits to the portfolio file while the viewer runs.
	if path, ok := loader.Resolve(*file); ok {
		w, err := watcher.Watch(path, func() {
			fresh, err := loader.LoadFile(path)
			if err != nil {
				return
			}
			p.Send(ui.ReloadMsg{Portfolio: fresh})
		})
		if err == nil {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running lightbox: %v\n", err)
		os.Exit(1)
	}
}
