// Package config loads sheet.toml, the optional per-project settings file.
// Command-line arguments always win; the file only supplies defaults for a
// directory tree.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up by Find.
const ManifestName = "sheet.toml"

// Config mirrors the sheet.toml layout.
type Config struct {
	Sheet SheetConfig `toml:"sheet"`
	View  ViewConfig  `toml:"view"`
	UI    UIConfig    `toml:"ui"`
}

// SheetConfig is the [sheet] section.
type SheetConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// ViewConfig is the [view] section. Size is the square window drawn after
// each command.
type ViewConfig struct {
	Size int `toml:"size"`
}

// UIConfig is the [ui] section. Mode is auto, on or off.
type UIConfig struct {
	Mode string `toml:"mode"`
}

// Default is the configuration used when no sheet.toml exists.
func Default() Config {
	return Config{
		Sheet: SheetConfig{Rows: 100, Cols: 100},
		View:  ViewConfig{Size: 10},
		UI:    UIConfig{Mode: "auto"},
	}
}

// Find walks up from startDir to locate sheet.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses one sheet.toml. Sections absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Sheet.Rows < 1 || cfg.Sheet.Cols < 1 {
		return Config{}, fmt.Errorf("%s: sheet dimensions must be positive", path)
	}
	if cfg.View.Size < 1 {
		return Config{}, fmt.Errorf("%s: view.size must be positive", path)
	}
	switch cfg.UI.Mode {
	case "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: ui.mode must be auto, on or off", path)
	}
	return cfg, nil
}

// Discover finds and loads the nearest sheet.toml, or returns defaults when
// none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
