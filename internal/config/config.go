// Package config provides the configuration of the goboy driver,
// read from a YAML file and overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/thelolagemann/dmg/internal/ppu/palette"
	"gopkg.in/yaml.v3"
)

// ErrNoROM is returned when no ROM was configured.
var ErrNoROM = errors.New("config: no rom")

// Config holds the settings of a run.
type Config struct {
	ROM        string `yaml:"rom"`
	Boot       string `yaml:"boot"`
	Palette    string `yaml:"palette"`
	LogLevel   string `yaml:"log_level"`
	Frames     int    `yaml:"frames"`
	Screenshot string `yaml:"screenshot"`
	Scale      int    `yaml:"scale"`
	// State is loaded before running when it exists, and written
	// after the last frame.
	State string `yaml:"state"`
	// Saves is the folder battery RAM is kept in, empty disables
	// battery saves.
	Saves string `yaml:"saves"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Palette:  "greyscale",
		LogLevel: "info",
		Frames:   60,
		Scale:    1,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration, returning the first problem found.
func (c Config) Validate() error {
	if c.ROM == "" {
		return ErrNoROM
	}
	if _, err := palette.ByName(c.Palette); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frames must not be negative, got %d", c.Frames)
	}
	if c.Scale < 1 {
		return fmt.Errorf("config: scale must be at least 1, got %d", c.Scale)
	}
	return nil
}

// ColourPalette returns the configured palette.
func (c Config) ColourPalette() palette.Palette {
	p, err := palette.ByName(c.Palette)
	if err != nil {
		return palette.Palettes[palette.Greyscale]
	}
	return p
}
