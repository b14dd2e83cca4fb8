package panel

import (
	"context"
	"fmt"
	"log"
)

// ContentLoader switches the main content area to a category. External
// collaborator; failures surface as inline error text, never a crash.
type ContentLoader interface {
	LoadContent(ctx context.Context, categoryID string) error
}

// MenuItem is a navigation menu entry.
type MenuItem struct {
	ID    string
	Label string
	Icon  string
}

// DefaultMenuItems is the standard category menu.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ID: "cocteleria", Label: "Coctelería", Icon: "🍸"},
		{ID: "refrescos", Label: "Refrescos", Icon: "🥤"},
		{ID: "cervezas", Label: "Cervezas", Icon: "🍺"},
		{ID: "licores", Label: "Licores", Icon: "🥃"},
		{ID: "pizzas", Label: "Pizzas", Icon: "🍕"},
		{ID: "snacks", Label: "Snacks", Icon: "🍟"},
	}
}

// NavigationDrawer is the left category menu. It delegates visibility
// to the coordinator and hands selections to the content loader.
type NavigationDrawer struct {
	coord  *Coordinator
	loader ContentLoader
	items  []MenuItem
}

func NewNavigationDrawer(coord *Coordinator, loader ContentLoader, items []MenuItem) *NavigationDrawer {
	if len(items) == 0 {
		items = DefaultMenuItems()
	}
	return &NavigationDrawer{coord: coord, loader: loader, items: items}
}

func (d *NavigationDrawer) Items() []MenuItem { return d.items }

func (d *NavigationDrawer) Open() { d.coord.Open(DrawerNavigation) }
func (d *NavigationDrawer) Close() { d.coord.Close(DrawerNavigation, false) }
func (d *NavigationDrawer) Toggle() { d.coord.Toggle(DrawerNavigation) }

// Navigate closes the menu and asks the loader for the category. The
// drawer closes regardless; a load failure is the caller's to display.
func (d *NavigationDrawer) Navigate(ctx context.Context, categoryID string) error {
	d.Close()
	if d.loader == nil {
		log.Printf("NavigationDrawer: no content loader wired, ignoring %q", categoryID)
		return nil
	}
	if err := d.loader.LoadContent(ctx, categoryID); err != nil {
		return fmt.Errorf("load category %s: %w", categoryID, err)
	}
	return nil
}

// OrderDrawer is the right order summary panel. Its visibility is not
// purely user-driven: it follows the has-content rule.
type OrderDrawer struct {
	coord *Coordinator
}

func NewOrderDrawer(coord *Coordinator) *OrderDrawer {
	return &OrderDrawer{coord: coord}
}

func (d *OrderDrawer) Open() { d.coord.Open(DrawerOrder) }
func (d *OrderDrawer) Close(force bool) { d.coord.Close(DrawerOrder, force) }
func (d *OrderDrawer) Toggle() { d.coord.Toggle(DrawerOrder) }

// SyncVisibility applies the visible-if-has-content rule: open while
// the ledger has items or the workflow is active, force-closed once
// both are gone. This outranks manual toggling.
func (d *OrderDrawer) SyncVisibility(hasItems, orderMode bool) {
	if hasItems || orderMode {
		d.Open()
	} else {
		d.Close(true)
	}
}

// SettingsDrawer manages the settings menu and its nested sub-panels.
// Exactly one panel is visible; opening the drawer always resets to the
// main panel.
type SettingsDrawer struct {
	coord        *Coordinator
	panels       map[string]bool
	defaultPanel string
	activePanel  string
}

func NewSettingsDrawer(coord *Coordinator, panelIDs []string, defaultPanel string) *SettingsDrawer {
	panels := make(map[string]bool, len(panelIDs))
	for _, id := range panelIDs {
		panels[id] = true
	}
	if defaultPanel == "" && len(panelIDs) > 0 {
		defaultPanel = panelIDs[0]
	}
	panels[defaultPanel] = true
	return &SettingsDrawer{
		coord:        coord,
		panels:       panels,
		defaultPanel: defaultPanel,
		activePanel:  defaultPanel,
	}
}

func (d *SettingsDrawer) Open() {
	d.coord.Open(DrawerSettings)
	d.activePanel = d.defaultPanel
}

func (d *SettingsDrawer) Close() {
	d.coord.Close(DrawerSettings, false)
}

func (d *SettingsDrawer) Toggle() {
	d.coord.Toggle(DrawerSettings)
	if d.coord.IsOpen(DrawerSettings) {
		d.activePanel = d.defaultPanel
	}
}

// ShowPanel hides all sibling panels and reveals the requested one.
// Unknown panel ids are logged and ignored.
func (d *SettingsDrawer) ShowPanel(panelID string) {
	if !d.panels[panelID] {
		log.Printf("SettingsDrawer: panel %q not registered", panelID)
		return
	}
	d.activePanel = panelID
}

// ActivePanel returns the currently visible sub-panel.
func (d *SettingsDrawer) ActivePanel() string {
	return d.activePanel
}
