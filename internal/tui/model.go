package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/config"
	"github.com/JoemMastertech/cantina/internal/i18n"
	"github.com/JoemMastertech/cantina/internal/modal"
	"github.com/JoemMastertech/cantina/internal/order"
	"github.com/JoemMastertech/cantina/internal/panel"
	"github.com/JoemMastertech/cantina/internal/workflow"
	"github.com/JoemMastertech/cantina/pkg/events"
)

type View string

const (
	ViewCatalog View = "catalog"
	ViewShelf   View = "shelf"
	ViewOrders  View = "orders"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Enter        key.Binding
	Back         key.Binding
	Quit         key.Binding
	Menu         key.Binding
	OrderDrawer  key.Binding
	Settings     key.Binding
	OrderMode    key.Binding
	Complete     key.Binding
	CancelOrder  key.Binding
	Orders       key.Binding
	Increment    key.Binding
	Decrement    key.Binding
	CustomText   key.Binding
	NextAction   key.Binding
	MoveHistory  key.Binding
	ClearHistory key.Binding
	Remove       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "arriba"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "abajo"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "presentación anterior"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "presentación siguiente"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "seleccionar"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cerrar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menú"),
	),
	OrderDrawer: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "orden"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "ajustes"),
	),
	OrderMode: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "crear orden"),
	),
	Complete: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "completar orden"),
	),
	CancelOrder: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancelar orden"),
	),
	Orders: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "órdenes guardadas"),
	),
	Increment: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "agregar mixer"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "quitar mixer"),
	),
	CustomText: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "personalizar"),
	),
	NextAction: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "siguiente botón"),
	),
	MoveHistory: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "pasar a historial"),
	),
	ClearHistory: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "vaciar historial"),
	),
	Remove: key.NewBinding(
		key.WithKeys("backspace", "delete"),
		key.WithHelp("del", "quitar producto"),
	),
}

// Model is the bubbletea root. All UI state changes flow through
// Update on a single goroutine; bus handlers only enqueue messages.
type Model struct {
	cfg        *config.Config
	eventBus   *events.EventBus
	repo       catalog.Repository
	store      order.Store
	ledger     *order.Ledger
	coord      *panel.Coordinator
	navDrawer  *panel.NavigationDrawer
	orderDraw  *panel.OrderDrawer
	settings   *panel.SettingsDrawer
	presenter  *modal.Presenter
	workflow   *workflow.Workflow
	translator i18n.Translator

	styles Styles
	keys   keyMap

	width  int
	height int

	currentView View
	category    string
	categoryLbl string
	products    []catalog.Product
	shelfSubs   []string
	loadErr     error

	cursor     int
	tierCursor int
	navCursor  int

	actionCursor int
	optionCursor int
	termCursor   int
	customInput  textinput.Model
	typing       bool

	activeOrders []order.SavedOrder
	pastOrders   []order.SavedOrder
	ordersCursor int

	status string

	updateChan chan tea.Msg
}

// NewModel wires the full UI. The repository, store and bus come from
// main; everything interactive is owned here.
func NewModel(cfg *config.Config, eventBus *events.EventBus, repo catalog.Repository, store order.Store) *Model {
	input := textinput.New()
	input.Placeholder = "Escribe la personalización..."
	input.CharLimit = 120

	m := &Model{
		cfg:         cfg,
		eventBus:    eventBus,
		repo:        repo,
		store:       store,
		styles:      newStyles(),
		keys:        keys,
		currentView: ViewCatalog,
		category:    "refrescos",
		categoryLbl: "Refrescos",
		customInput: input,
		translator:  i18n.Passthrough{},
		updateChan:  make(chan tea.Msg, 100),
	}

	m.ledger = order.NewLedger(eventBus)
	m.presenter = modal.NewPresenter(eventBus, cfg.ModalTransition())
	m.coord = panel.NewCoordinator(eventBus, cfg.Layout.DesktopBreakpoint, cfg.Layout.PersistentDrawers, cfg.ToggleDebounce())
	m.navDrawer = panel.NewNavigationDrawer(m.coord, m, panel.DefaultMenuItems())
	m.orderDraw = panel.NewOrderDrawer(m.coord)
	m.settings = panel.NewSettingsDrawer(m.coord, []string{"general", "idioma"}, "general")

	table := catalog.NewTable(cfg.Drinks.MaxCount, cfg.Drinks.SpecialCategories, cfg.Drinks.JuiceKeywords)
	m.workflow = workflow.New(eventBus, m.ledger, m.presenter, table, store)

	ec := NewEventController(eventBus, m.updateChan)
	ec.SetupEventSubscriptions()

	return m
}

// LoadContent fetches a category into the content area. Implements
// panel.ContentLoader for the navigation drawer.
func (m *Model) LoadContent(ctx context.Context, categoryID string) error {
	if categoryID == "licores" {
		subs := m.liquorShelf()
		m.currentView = ViewShelf
		m.shelfSubs = subs
		m.cursor = 0
		m.loadErr = nil
		return nil
	}

	products, err := m.repo.ProductsByCategory(ctx, categoryID)
	if err != nil {
		m.loadErr = fmt.Errorf("cargar %s: %w", categoryID, err)
		return m.loadErr
	}

	m.currentView = ViewCatalog
	m.category = categoryID
	m.categoryLbl = categoryLabel(categoryID)
	m.products = products
	m.cursor = 0
	m.tierCursor = 0
	m.loadErr = nil
	return nil
}

func (m *Model) liquorShelf() []string {
	type lister interface{ LiquorSubcategories() []string }
	if l, ok := m.repo.(lister); ok {
		return l.LiquorSubcategories()
	}
	return nil
}

func categoryLabel(id string) string {
	for _, item := range panel.DefaultMenuItems() {
		if item.ID == id {
			return item.Label
		}
	}
	return id
}

func (m *Model) Init() tea.Cmd {
	m.LoadContent(context.Background(), m.category)
	return m.waitForUpdates()
}

func (m *Model) waitForUpdates() tea.Cmd {
	return func() tea.Msg {
		return <-m.updateChan
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.coord.Resize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case drawerUpdateMsg:
		return m, m.waitForUpdates()

	case modalUpdateMsg:
		// A new modal starts with the first action focused.
		m.actionCursor = 0
		return m, m.waitForUpdates()

	case orderUpdateMsg:
		m.orderDraw.SyncVisibility(msg.Count > 0, m.workflow.OrderMode())
		return m, m.waitForUpdates()

	case orderModeMsg:
		m.orderDraw.SyncVisibility(m.ledger.Len() > 0, msg.Active)
		return m, m.waitForUpdates()

	case orderCompletedMsg:
		m.status = fmt.Sprintf("Orden guardada: $%.2f", msg.Total)
		return m, m.waitForUpdates()

	case catalogReloadedMsg:
		m.LoadContent(context.Background(), m.category)
		return m, m.waitForUpdates()

	case validationMsg:
		m.status = msg.Message
		return m, m.waitForUpdates()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The text field swallows everything except its exit keys.
	if m.typing {
		return m.handleTypingKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.presenter.Visible() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if active := m.coord.ActiveDrawer(); active != "" {
			m.coord.Close(active, false)
		} else if m.currentView == ViewOrders {
			m.currentView = ViewCatalog
		}

	case key.Matches(msg, m.keys.Menu):
		m.navDrawer.Toggle()
		m.navCursor = 0

	case key.Matches(msg, m.keys.OrderDrawer):
		m.orderDraw.Toggle()

	case key.Matches(msg, m.keys.Settings):
		m.settings.Toggle()

	case key.Matches(msg, m.keys.OrderMode):
		m.workflow.ToggleOrderMode()

	case key.Matches(msg, m.keys.Complete):
		m.workflow.RequestCompleteOrder(context.Background())

	case key.Matches(msg, m.keys.CancelOrder):
		m.workflow.RequestClearOrder()

	case key.Matches(msg, m.keys.Orders):
		m.openOrdersView()

	case key.Matches(msg, m.keys.Remove):
		m.removeSelectedItem()

	default:
		return m.handleNavigationKey(msg)
	}
	return m, nil
}

// handleNavigationKey moves the cursor of whichever surface currently
// owns arrow input: the navigation drawer when it is the active
// overlay, otherwise the content area.
func (m *Model) handleNavigationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.coord.ActiveDrawer() == panel.DrawerSettings {
		m.handleSettingsKey(msg)
		return m, nil
	}

	if m.coord.ActiveDrawer() == panel.DrawerNavigation {
		items := m.navDrawer.Items()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.navCursor > 0 {
				m.navCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.navCursor < len(items)-1 {
				m.navCursor++
			}
		case key.Matches(msg, m.keys.Enter):
			if m.navCursor < len(items) {
				if err := m.navDrawer.Navigate(context.Background(), items[m.navCursor].ID); err != nil {
					m.status = err.Error()
				}
			}
		}
		return m, nil
	}

	switch m.currentView {
	case ViewOrders:
		m.handleOrdersKey(msg)
	case ViewShelf:
		m.handleShelfKey(msg)
	default:
		m.handleCatalogKey(msg)
	}
	return m, nil
}

// handleSettingsKey cycles the visible settings sub-panel.
func (m *Model) handleSettingsKey(msg tea.KeyMsg) {
	panels := []string{"general", "idioma"}
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		for i, id := range panels {
			if id == m.settings.ActivePanel() {
				m.settings.ShowPanel(panels[(i+1)%len(panels)])
				return
			}
		}
	}
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.tierCursor = 0
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.products)-1 {
			m.cursor++
			m.tierCursor = 0
		}
	case key.Matches(msg, m.keys.Left):
		if m.tierCursor > 0 {
			m.tierCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if p, ok := m.selectedProduct(); ok && m.tierCursor < len(p.Tiers())-1 {
			m.tierCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.selectCurrentPrice()
	}
}

func (m *Model) handleShelfKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.shelfSubs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(m.shelfSubs) {
			m.openLiquorSubcategory(m.shelfSubs[m.cursor])
		}
	}
}

func (m *Model) openLiquorSubcategory(name string) {
	products, err := m.repo.LiquorSubcategory(context.Background(), name)
	if err != nil {
		m.status = fmt.Sprintf("cargar %s: %v", name, err)
		return
	}
	m.currentView = ViewCatalog
	m.category = name
	m.categoryLbl = name
	m.products = products
	m.cursor = 0
	m.tierCursor = 0
}

func (m *Model) selectedProduct() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return catalog.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m *Model) selectCurrentPrice() {
	p, ok := m.selectedProduct()
	if !ok {
		return
	}
	tiers := p.Tiers()
	if len(tiers) == 0 {
		return
	}
	if m.tierCursor >= len(tiers) {
		m.tierCursor = len(tiers) - 1
	}

	m.resetModalCursors()
	// Outside order mode the workflow raises its own guard modal.
	_ = m.workflow.SelectProduct(p, tiers[m.tierCursor])
}

func (m *Model) resetModalCursors() {
	m.actionCursor = 0
	m.optionCursor = 0
	m.termCursor = 0
	m.typing = false
	m.customInput.SetValue("")
	m.customInput.Blur()
}

func (m *Model) removeSelectedItem() {
	if !m.coord.IsOpen(panel.DrawerOrder) {
		return
	}
	items := m.ledger.Items()
	if len(items) == 0 {
		return
	}
	m.ledger.RemoveItem(items[len(items)-1].ID)
}

func (m *Model) openOrdersView() {
	ctx := context.Background()
	active, err := m.store.Active(ctx)
	if err != nil {
		m.status = fmt.Sprintf("cargar órdenes: %v", err)
		return
	}
	past, err := m.store.History(ctx)
	if err != nil {
		m.status = fmt.Sprintf("cargar historial: %v", err)
		return
	}
	m.activeOrders = active
	m.pastOrders = past
	m.ordersCursor = 0
	m.currentView = ViewOrders
}

func (m *Model) handleOrdersKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.ordersCursor > 0 {
			m.ordersCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.ordersCursor < len(m.activeOrders)-1 {
			m.ordersCursor++
		}
	case key.Matches(msg, m.keys.MoveHistory):
		if m.ordersCursor < len(m.activeOrders) {
			id := m.activeOrders[m.ordersCursor].ID
			m.confirmOrdersAction("Eliminar Orden", "¿Desea mover la orden al historial?", func() error {
				return m.store.MoveToHistory(context.Background(), id)
			})
		}
	case key.Matches(msg, m.keys.ClearHistory):
		m.confirmOrdersAction("Vaciar Historial", "¿Desea vaciar el historial de órdenes?", func() error {
			return m.store.ClearHistory(context.Background())
		})
	}
}

// confirmOrdersAction gates a destructive saved-orders operation behind
// a confirmation modal, then refreshes the screen.
func (m *Model) confirmOrdersAction(title, body string, action func() error) {
	m.actionCursor = 0
	m.presenter.Show(modal.Descriptor{
		Title: title,
		Body:  body,
		Actions: []modal.Action{
			{
				Label:   "Confirmar",
				Variant: modal.VariantContrast,
				OnActivate: func() {
					if err := action(); err != nil {
						m.status = fmt.Sprintf("%s: %v", title, err)
					}
					m.presenter.Close()
					m.openOrdersView()
				},
			},
			{
				Label:      "Cancelar",
				Variant:    modal.VariantGhost,
				OnActivate: func() { m.presenter.Close() },
			},
		},
	})
}
