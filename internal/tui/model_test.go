package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/config"
	"github.com/JoemMastertech/cantina/internal/order"
	"github.com/JoemMastertech/cantina/internal/panel"
	"github.com/JoemMastertech/cantina/pkg/events"
)

type fakeRepo struct {
	byCategory map[string][]catalog.Product
	liquors    map[string][]catalog.Product
}

func (r *fakeRepo) ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	products, ok := r.byCategory[category]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	return products, nil
}

func (r *fakeRepo) LiquorSubcategory(ctx context.Context, name string) ([]catalog.Product, error) {
	products, ok := r.liquors[name]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	return products, nil
}

func (r *fakeRepo) LiquorSubcategories() []string {
	names := make([]string, 0, len(r.liquors))
	for name := range r.liquors {
		names = append(names, name)
	}
	return names
}

type nullStore struct{}

func (nullStore) Save(ctx context.Context, o order.SavedOrder) error { return nil }

func (nullStore) Active(ctx context.Context) ([]order.SavedOrder, error) { return nil, nil }

func (nullStore) History(ctx context.Context) ([]order.SavedOrder, error) { return nil, nil }

func (nullStore) MoveToHistory(ctx context.Context, id string) error { return nil }

func (nullStore) ClearHistory(ctx context.Context) error { return nil }

func testRepo() *fakeRepo {
	return &fakeRepo{
		byCategory: map[string][]catalog.Product{
			"refrescos": {
				{Name: "Coca Cola", Price: "$35.00", Category: "Refrescos"},
				{Name: "Agua Mineral", Price: "$25.00", Category: "Refrescos"},
			},
		},
		liquors: map[string][]catalog.Product{
			"VODKA": {
				{Name: "Grey Goose", BottlePrice: "$1,200.00", Category: "VODKA",
					BottleMix: []string{"Jugo de Naranja", "Coca", "Ninguno"}},
			},
		},
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(config.Default(), events.NewEventBus(), testRepo(), nullStore{})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelCreation(t *testing.T) {
	m := NewModel(config.Default(), events.NewEventBus(), testRepo(), nullStore{})
	require.NotNil(t, m)
	assert.Equal(t, ViewCatalog, m.currentView)
}

func TestInitLoadsDefaultCategory(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.products, 2)
	assert.Equal(t, "Coca Cola", m.products[0].Name)
}

func TestMenuKeyTogglesNavigationDrawer(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRune('m'))
	assert.Equal(t, panel.DrawerNavigation, m.coord.ActiveDrawer())

	// Escape closes the overlay again.
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, panel.DrawerID(""), m.coord.ActiveDrawer())
}

func TestNavigationDrawerSelectsCategory(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRune('m'))
	// First menu entry is Coctelería, which this repo does not carry.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, m.loadErr)

	// The drawer closed on selection either way.
	assert.Equal(t, panel.DrawerID(""), m.coord.ActiveDrawer())
}

func TestOrderModeKeyGuardsSelection(t *testing.T) {
	m := newTestModel(t)

	// Selecting a price outside order mode raises the guard modal.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.presenter.Visible())
	assert.Zero(t, m.ledger.Len())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.presenter.Visible())

	m.Update(keyRune('c'))
	assert.True(t, m.workflow.OrderMode())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.ledger.Len())
}

func TestOrderUpdateSyncsOrderDrawer(t *testing.T) {
	m := newTestModel(t)

	m.Update(orderUpdateMsg{Count: 1, Total: 35})
	assert.True(t, m.coord.IsOpen(panel.DrawerOrder))

	m.Update(orderUpdateMsg{Count: 0, Total: 0})
	assert.False(t, m.coord.IsOpen(panel.DrawerOrder))
}

func TestResizeRepinsDrawers(t *testing.T) {
	m := newTestModel(t)
	m.Update(orderUpdateMsg{Count: 1, Total: 35})

	// Narrow: the order drawer is an overlay.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.False(t, m.coord.IsPersistent(panel.DrawerOrder))

	// Wide: the same drawer pins into the layout.
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.True(t, m.coord.IsPersistent(panel.DrawerOrder))
}

func TestShelfViewListsSubcategories(t *testing.T) {
	m := newTestModel(t)

	require.NoError(t, m.LoadContent(context.Background(), "licores"))
	assert.Equal(t, ViewShelf, m.currentView)
	require.Len(t, m.shelfSubs, 1)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewCatalog, m.currentView)
	require.Len(t, m.products, 1)
	assert.Equal(t, "Grey Goose", m.products[0].Name)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.True(t, strings.Contains(out, "Cantina"))
	assert.True(t, strings.Contains(out, "Coca Cola"))
}

func TestViewRendersModal(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.presenter.Visible())

	out := m.View()
	assert.True(t, strings.Contains(out, "Atención"))
}

func TestMixerLimitMessageShowsInModal(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRune('c'))
	require.True(t, m.workflow.OrderMode())

	require.NoError(t, m.LoadContent(context.Background(), "licores"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // VODKA shelf
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // Grey Goose bottle
	require.True(t, m.presenter.Visible())

	// Two juices fill the bottle; the third press is refused and the
	// modal itself must say so, not just the footer.
	m.Update(keyRune('+'))
	m.Update(keyRune('+'))
	m.Update(keyRune('+'))

	draft := m.workflow.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, 2, draft.Count("Jugo de Naranja"))
	assert.Contains(t, m.View(), "Límite de mixers alcanzado.")
}

func TestOrdersViewKey(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRune('v'))
	assert.Equal(t, ViewOrders, m.currentView)

	out := m.View()
	assert.True(t, strings.Contains(out, "Órdenes Activas"))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewCatalog, m.currentView)
}

func TestSettingsDrawerPanelCycle(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRune('s'))
	require.Equal(t, panel.DrawerSettings, m.coord.ActiveDrawer())
	assert.Equal(t, "general", m.settings.ActivePanel())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "idioma", m.settings.ActivePanel())
}

func TestClearHistoryAsksForConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRune('v'))

	m.Update(keyRune('D'))
	require.True(t, m.presenter.Visible())
	assert.Equal(t, "Vaciar Historial", m.presenter.Current().Title)

	// Confirming closes the modal and stays on the orders screen.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.presenter.Visible())
	assert.Equal(t, ViewOrders, m.currentView)
}
