// Package prefs persists small per-user settings between runs.
// Preferences are stored in ~/.config/forkify/prefs.toml.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/forkify/internal/config"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	// LastRecipe is the recipe id that was open when the app last ran.
	LastRecipe string `toml:"last_recipe"`
}

const (
	defaultPrefsPath = "~/.config/forkify/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing, unreadable or malformed file
// yields the defaults; preferences never stop the app from starting.
func Load(path string) (Prefs, error) {
	resolved, err := resolve(path)
	if err != nil {
		return defaults(), nil
	}
	file, err := os.Open(resolved)
	if err != nil {
		return defaults(), nil
	}
	defer func() { _ = file.Close() }()

	p, err := decode(file)
	if err != nil {
		return defaults(), nil
	}
	return p, nil
}

func decode(r io.Reader) (Prefs, error) {
	p := defaults()
	if err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Prefs{}, fmt.Errorf("decode prefs: %w", err)
	}
	p.normalize()
	return p, nil
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

func (p *Prefs) normalize() {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastRecipe = strings.TrimSpace(p.LastRecipe)
}

// Save writes preferences to path through a temporary file in the same
// directory, so a crash never leaves a truncated file behind.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	p.normalize()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	_, writeErr := tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
