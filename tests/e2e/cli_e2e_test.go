package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// buildLightboxBinary compiles the CLI once per test run.
func buildLightboxBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "lightbox-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "lightbox")
		cmd := exec.Command("go", "build", "-o", binPath, "lightbox/cmd/lightbox")
		cmd.Dir = repoRoot(t)
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("build output:\n%s", out)
		}
	})
	if buildErr != nil {
		t.Fatalf("failed to build lightbox: %v", buildErr)
	}
	return binPath
}

func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Dir(filepath.Dir(wd))
}

const samplePortfolio = `title: E2E Portfolio
sections:
  - id: hero
    label: Hero
    body: hello
    x: 0
    y: 0
  - id: work
    label: Work
    body: selected projects
    x: 60
    y: 0
projects:
  - title: Dunes
    section: work
    year: 2024
`

func TestVersionFlag(t *testing.T) {
	bin := buildLightboxBinary(t)
	out, err := exec.Command(bin, "-version").CombinedOutput()
	if err != nil {
		t.Fatalf("-version failed: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "lightbox version") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestHelpFlag(t *testing.T) {
	bin := buildLightboxBinary(t)
	out, err := exec.Command(bin, "-help").CombinedOutput()
	if err != nil {
		t.Fatalf("-help failed: %v\n%s", err, out)
	}
	for _, flag := range []string{"-file", "-mode", "-export"} {
		if !strings.Contains(string(out), flag) {
			t.Errorf("help output missing %s", flag)
		}
	}
}

func TestHeadlessExportWritesBothFiles(t *testing.T) {
	bin := buildLightboxBinary(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(file, []byte(samplePortfolio), 0644); err != nil {
		t.Fatalf("write portfolio: %v", err)
	}

	base := filepath.Join(dir, "snapshot")
	cmd := exec.Command(bin, "-file", file, "-export", base)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output missing root element")
	}

	png, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if len(png) < 8 || png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Error("png output missing magic bytes")
	}
}

func TestExportRejectsInvalidPortfolio(t *testing.T) {
	bin := buildLightboxBinary(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "portfolio.yaml")
	bad := "title: broken\nsections:\n  - id: a\n    label: A\n  - id: a\n    label: Dup\n"
	if err := os.WriteFile(file, []byte(bad), 0644); err != nil {
		t.Fatalf("write portfolio: %v", err)
	}

	cmd := exec.Command(bin, "-file", file, "-export", filepath.Join(dir, "snap"))
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure for duplicate section IDs, got:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(string(out)), "error") {
		t.Errorf("expected an error message, got: %q", out)
	}
}

func TestRefusesToRunWithoutTerminal(t *testing.T) {
	bin := buildLightboxBinary(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(file, []byte(samplePortfolio), 0644); err != nil {
		t.Fatalf("write portfolio: %v", err)
	}

	// Stdout is a pipe here, not a TTY.
	cmd := exec.Command(bin, "-file", file)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatal("expected non-zero exit without a terminal")
	}
	if !strings.Contains(string(out), "terminal") {
		t.Errorf("expected terminal hint, got: %q", out)
	}
}

func TestMissingFileFails(t *testing.T) {
	bin := buildLightboxBinary(t)
	cmd := exec.Command(bin, "-file", "/nonexistent/portfolio.yaml", "-export", filepath.Join(t.TempDir(), "s"))
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure for missing file, got:\n%s", out)
	}
	if !strings.Contains(string(out), "Error loading portfolio") {
		t.Errorf("unexpected output: %q", out)
	}
}
