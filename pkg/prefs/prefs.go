// Package prefs persists the effects configuration between sessions:
// animation timings, gesture thresholds, and presentation toggles. The
// navigation core itself is session-scoped and never persisted.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Preference keys.
const (
	KeyTransitionMS   = "transition_ms"
	KeyFriction       = "momentum_friction"
	KeyDragThreshold  = "drag_threshold"
	KeyRevealFraction = "reveal_fraction"
	KeyReduceMotion   = "reduce_motion"
	KeyTheme          = "theme"
	KeyMode           = "mode"
)

// Defaults applied when a key has never been written.
const (
	DefaultTransitionMS   = 400
	DefaultFriction       = 0.92
	DefaultDragThreshold  = 5.0
	DefaultRevealFraction = 0.10
	DefaultTheme          = "dusk"
	DefaultMode           = "scroll"
)

// Store handles preference persistence.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user preferences database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lightbox", "prefs.db"), nil
}

// Open opens or creates the preferences database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init prefs schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prefs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Set writes a string preference.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set pref %s: %w", key, err)
	}
	return nil
}

// Get reads a string preference, returning fallback when unset.
func (s *Store) Get(key, fallback string) string {
	var v string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return fallback
	}
	return v
}

// SetFloat writes a float preference.
func (s *Store) SetFloat(key string, value float64) error {
	return s.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// GetFloat reads a float preference, returning fallback when unset or
// unparseable.
func (s *Store) GetFloat(key string, fallback float64) float64 {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// SetBool writes a boolean preference.
func (s *Store) SetBool(key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}

// GetBool reads a boolean preference.
func (s *Store) GetBool(key string, fallback bool) bool {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// Effects is the decoded effects configuration the UI consumes.
type Effects struct {
	TransitionDuration time.Duration
	Friction           float64
	DragThreshold      float64
	RevealFraction     float64
	ReduceMotion       bool
	Theme              string
	Mode               string
}

// LoadEffects reads the full effects configuration with defaults.
func (s *Store) LoadEffects() Effects {
	ms := s.GetFloat(KeyTransitionMS, DefaultTransitionMS)
	return Effects{
		TransitionDuration: time.Duration(ms) * time.Millisecond,
		Friction:           s.GetFloat(KeyFriction, DefaultFriction),
		DragThreshold:      s.GetFloat(KeyDragThreshold, DefaultDragThreshold),
		RevealFraction:     s.GetFloat(KeyRevealFraction, DefaultRevealFraction),
		ReduceMotion:       s.GetBool(KeyReduceMotion, false),
		Theme:              s.Get(KeyTheme, DefaultTheme),
		Mode:               s.Get(KeyMode, DefaultMode),
	}
}

// SaveEffects persists the full effects configuration.
func (s *Store) SaveEffects(e Effects) error {
	if err := s.SetFloat(KeyTransitionMS, float64(e.TransitionDuration.Milliseconds())); err != nil {
		return err
	}
	if err := s.SetFloat(KeyFriction, e.Friction); err != nil {
		return err
	}
	if err := s.SetFloat(KeyDragThreshold, e.DragThreshold); err != nil {
		return err
	}
	if err := s.SetFloat(KeyRevealFraction, e.RevealFraction); err != nil {
		return err
	}
	if err := s.SetBool(KeyReduceMotion, e.ReduceMotion); err != nil {
		return err
	}
	if err := s.Set(KeyTheme, e.Theme); err != nil {
		return err
	}
	return s.Set(KeyMode, e.Mode)
}
