package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Layout.DesktopBreakpoint)
	assert.Equal(t, []string{"order-sidebar", "side-panel"}, cfg.Layout.PersistentDrawers)
	assert.Equal(t, 300*time.Millisecond, cfg.ToggleDebounce())
	assert.Equal(t, 300*time.Millisecond, cfg.ModalTransition())
	assert.Equal(t, 5, cfg.Drinks.MaxCount)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cantina.toml")
	content := `
[layout]
desktop_breakpoint = 140
toggle_debounce_ms = 100

[drinks]
max_count = 3
special_categories = ["VODKA", "GINEBRA"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 140, cfg.Layout.DesktopBreakpoint)
	assert.Equal(t, 100*time.Millisecond, cfg.ToggleDebounce())
	assert.Equal(t, 3, cfg.Drinks.MaxCount)
	assert.Equal(t, []string{"VODKA", "GINEBRA"}, cfg.Drinks.SpecialCategories)
	// Untouched sections keep their defaults.
	assert.Equal(t, 300*time.Millisecond, cfg.ModalTransition())
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyFloors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cantina.toml")
	content := `
[layout]
desktop_breakpoint = -1

[drinks]
max_count = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Layout.DesktopBreakpoint)
	assert.Equal(t, 5, cfg.Drinks.MaxCount)
}

func TestOrdersPath(t *testing.T) {
	cfg := Default()
	cfg.Orders.DataDir = "/tmp/cantina"
	cfg.Orders.File = "orders.json"

	assert.Equal(t, filepath.Join("/tmp/cantina", "orders.json"), cfg.OrdersPath())
}
