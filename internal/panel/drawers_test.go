package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoemMastertech/cantina/pkg/events"
)

type fakeLoader struct {
	loaded []string
	err    error
}

func (f *fakeLoader) LoadContent(_ context.Context, categoryID string) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = append(f.loaded, categoryID)
	return nil
}

func newDrawerTestCoordinator() *Coordinator {
	c := NewCoordinator(events.NewEventBus(), 120, []string{"order-sidebar"}, 0)
	c.Resize(mobileWidth)
	return c
}

func TestNavigationDrawerNavigateClosesThenLoads(t *testing.T) {
	coord := newDrawerTestCoordinator()
	loader := &fakeLoader{}
	nav := NewNavigationDrawer(coord, loader, nil)

	nav.Open()
	require.True(t, coord.IsOpen(DrawerNavigation))

	err := nav.Navigate(context.Background(), "pizzas")
	require.NoError(t, err)
	assert.False(t, coord.IsOpen(DrawerNavigation))
	assert.Equal(t, []string{"pizzas"}, loader.loaded)
}

func TestNavigationDrawerNavigateLoaderFailure(t *testing.T) {
	coord := newDrawerTestCoordinator()
	loader := &fakeLoader{err: errors.New("fetch failed")}
	nav := NewNavigationDrawer(coord, loader, nil)
	nav.Open()

	err := nav.Navigate(context.Background(), "cervezas")
	assert.Error(t, err)
	assert.False(t, coord.IsOpen(DrawerNavigation), "drawer closes even when loading fails")
}

func TestNavigationDrawerDefaultItems(t *testing.T) {
	nav := NewNavigationDrawer(newDrawerTestCoordinator(), nil, nil)

	items := nav.Items()
	require.Len(t, items, 6)
	assert.Equal(t, "cocteleria", items[0].ID)
	assert.Equal(t, "snacks", items[5].ID)
}

func TestOrderDrawerSyncVisibility(t *testing.T) {
	tests := []struct {
		name      string
		hasItems  bool
		orderMode bool
		wantOpen  bool
	}{
		{name: "empty_inactive", hasItems: false, orderMode: false, wantOpen: false},
		{name: "has_items", hasItems: true, orderMode: false, wantOpen: true},
		{name: "order_mode", hasItems: false, orderMode: true, wantOpen: true},
		{name: "both", hasItems: true, orderMode: true, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord := newDrawerTestCoordinator()
			drawer := NewOrderDrawer(coord)

			drawer.SyncVisibility(tt.hasItems, tt.orderMode)
			assert.Equal(t, tt.wantOpen, coord.IsOpen(DrawerOrder))
		})
	}
}

func TestOrderDrawerSyncForceClosesPinned(t *testing.T) {
	coord := NewCoordinator(events.NewEventBus(), 120, []string{"order-sidebar"}, 0)
	coord.Resize(desktopWidth)
	drawer := NewOrderDrawer(coord)

	drawer.SyncVisibility(true, true)
	require.True(t, coord.IsOpen(DrawerOrder))
	require.True(t, coord.IsPersistent(DrawerOrder))

	// Ledger emptied and order mode off: the has-content rule outranks
	// the persistence guard.
	drawer.SyncVisibility(false, false)
	assert.False(t, coord.IsOpen(DrawerOrder))
}

func TestSettingsDrawerPanelReset(t *testing.T) {
	coord := newDrawerTestCoordinator()
	settings := NewSettingsDrawer(coord, []string{"main-settings-panel", "language-panel", "about-panel"}, "main-settings-panel")

	settings.Open()
	assert.Equal(t, "main-settings-panel", settings.ActivePanel())

	settings.ShowPanel("language-panel")
	assert.Equal(t, "language-panel", settings.ActivePanel())

	// Reopening resets to the default panel.
	settings.Close()
	settings.Open()
	assert.Equal(t, "main-settings-panel", settings.ActivePanel())
}

func TestSettingsDrawerUnknownPanelIgnored(t *testing.T) {
	coord := newDrawerTestCoordinator()
	settings := NewSettingsDrawer(coord, []string{"main-settings-panel"}, "main-settings-panel")
	settings.Open()

	settings.ShowPanel("does-not-exist")
	assert.Equal(t, "main-settings-panel", settings.ActivePanel())
}

func TestSettingsDrawerToggleResets(t *testing.T) {
	coord := NewCoordinator(events.NewEventBus(), 120, nil, time.Duration(0))
	coord.Resize(mobileWidth)
	settings := NewSettingsDrawer(coord, []string{"main-settings-panel", "language-panel"}, "main-settings-panel")

	settings.Toggle()
	require.True(t, coord.IsOpen(DrawerSettings))
	settings.ShowPanel("language-panel")

	settings.Toggle() // close
	settings.Toggle() // reopen
	assert.Equal(t, "main-settings-panel", settings.ActivePanel())
}
