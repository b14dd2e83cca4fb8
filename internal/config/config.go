package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete TOML application configuration.
type Config struct {
	Layout  Layout  `toml:"layout"`
	Modal   Modal   `toml:"modal"`
	Catalog Catalog `toml:"catalog"`
	Orders  Orders  `toml:"orders"`
	Drinks  Drinks  `toml:"drinks"`
}

type Layout struct {
	// Terminal width (columns) at or above which allowlisted drawers
	// are pinned into the layout instead of overlaying it.
	DesktopBreakpoint int      `toml:"desktop_breakpoint"`
	PersistentDrawers []string `toml:"persistent_drawers"`
	ToggleDebounceMS  int      `toml:"toggle_debounce_ms"`
}

type Modal struct {
	TransitionMS int `toml:"transition_ms"`
}

type Catalog struct {
	Path string `toml:"path"`
}

type Orders struct {
	DataDir string `toml:"data_dir"`
	File    string `toml:"file"`
}

type Drinks struct {
	MaxCount          int      `toml:"max_count"`
	SpecialCategories []string `toml:"special_categories"`
	JuiceKeywords     []string `toml:"juice_keywords"`
}

// Default returns the built-in configuration. Values mirror the ones
// the product shipped with: 300ms debounce and transition, the order
// sidebar and side panel pinned on wide terminals, five mixers per
// bottle.
func Default() *Config {
	return &Config{
		Layout: Layout{
			DesktopBreakpoint: 120,
			PersistentDrawers: []string{"order-sidebar", "side-panel"},
			ToggleDebounceMS:  300,
		},
		Modal: Modal{
			TransitionMS: 300,
		},
		Catalog: Catalog{
			Path: "menu.json",
		},
		Orders: Orders{
			DataDir: defaultDataDir(),
			File:    "orders.json",
		},
		Drinks: Drinks{
			MaxCount:          5,
			SpecialCategories: []string{"VODKA"},
			JuiceKeywords:     []string{"jugo", "jarra"},
		},
	}
}

// Load reads the TOML config at path, filling unset fields from
// Default. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyFloors()
	return cfg, nil
}

// applyFloors keeps hand-edited configs from zeroing out the timing
// windows the presenters rely on.
func (c *Config) applyFloors() {
	if c.Layout.DesktopBreakpoint <= 0 {
		c.Layout.DesktopBreakpoint = Default().Layout.DesktopBreakpoint
	}
	if c.Layout.ToggleDebounceMS < 0 {
		c.Layout.ToggleDebounceMS = 0
	}
	if c.Modal.TransitionMS < 0 {
		c.Modal.TransitionMS = 0
	}
	if c.Drinks.MaxCount <= 0 {
		c.Drinks.MaxCount = Default().Drinks.MaxCount
	}
}

// ToggleDebounce returns the drawer toggle debounce window.
func (c *Config) ToggleDebounce() time.Duration {
	return time.Duration(c.Layout.ToggleDebounceMS) * time.Millisecond
}

// ModalTransition returns the modal exit-transition duration.
func (c *Config) ModalTransition() time.Duration {
	return time.Duration(c.Modal.TransitionMS) * time.Millisecond
}

// OrdersPath returns the path of the saved-orders file.
func (c *Config) OrdersPath() string {
	return filepath.Join(c.Orders.DataDir, c.Orders.File)
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cantina"
	}
	return filepath.Join(homeDir, ".cantina")
}
