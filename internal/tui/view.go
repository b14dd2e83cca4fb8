package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/i18n"
	"github.com/JoemMastertech/cantina/internal/panel"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Cargando..."
	}

	if d := m.presenter.Current(); m.presenter.Visible() && d != nil {
		return m.renderModal(d)
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := m.renderBody(bodyHeight)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader() string {
	title := m.styles.Header.Render("Cantina · " + i18n.T(m.translator, m.categoryLbl))

	mode := m.styles.Header.Render("Crear orden")
	if m.workflow.OrderMode() {
		mode = m.styles.HeaderActive.Render("Cancelar · " + fmt.Sprintf("$%.2f", m.ledger.Total()))
	}

	count := m.styles.Header.Render(fmt.Sprintf("%d productos", m.ledger.Len()))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(mode) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + count + mode
}

func (m *Model) renderFooter() string {
	if m.status != "" {
		return m.styles.Footer.Render(m.status)
	}
	if m.coord.ScrimVisible() {
		return m.styles.Scrim.Render("esc cierra el panel")
	}
	hints := []string{"m menú", "c crear orden", "o orden", "s ajustes", "v guardadas", "q salir"}
	return m.styles.Footer.Render(strings.Join(hints, " · "))
}

// renderBody lays out the content area. Pinned drawers sit beside the
// content; a single overlay drawer sits over it with a scrim hint.
func (m *Model) renderBody(height int) string {
	var columns []string
	columns = append(columns, m.renderContent(height))

	if m.coord.IsOpen(panel.DrawerOrder) && m.coord.IsPersistent(panel.DrawerOrder) {
		columns = append(columns, m.renderOrderDrawer(height))
	}

	base := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	// A non-persistent active drawer floats over everything else.
	switch m.coord.ActiveDrawer() {
	case panel.DrawerNavigation:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.renderNavigationDrawer(height), base)
	case panel.DrawerOrder:
		if !m.coord.IsPersistent(panel.DrawerOrder) {
			return lipgloss.JoinHorizontal(lipgloss.Top, base, m.renderOrderDrawer(height))
		}
	case panel.DrawerSettings:
		return lipgloss.JoinHorizontal(lipgloss.Top, base, m.renderSettingsDrawer(height))
	}
	return base
}

func (m *Model) renderContent(height int) string {
	var body string
	switch m.currentView {
	case ViewOrders:
		body = m.renderOrders()
	case ViewShelf:
		body = m.renderShelf()
	default:
		body = m.renderCatalog()
	}

	if m.loadErr != nil {
		body = m.styles.Muted.Render(m.loadErr.Error())
	}
	return lipgloss.NewStyle().Height(height).Render(body)
}

func (m *Model) renderCatalog() string {
	if len(m.products) == 0 {
		return m.styles.Muted.Render("Sin productos en esta categoría.")
	}

	var b strings.Builder
	for i, p := range m.products {
		name := p.Name
		prices := m.renderPrices(i, p)

		line := fmt.Sprintf("%-30s %s", name, prices)
		if i == m.cursor {
			line = m.styles.MenuSelected.Render(line)
		} else {
			line = m.styles.MenuItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderPrices(row int, p catalog.Product) string {
	tiers := p.Tiers()
	parts := make([]string, 0, len(tiers))
	for j, tier := range tiers {
		price, err := p.PriceFor(tier)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%s $%.2f", tier, price)
		style := m.styles.Price
		if row == m.cursor && j == m.tierCursor {
			style = m.styles.PriceSelected
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderShelf() string {
	if len(m.shelfSubs) == 0 {
		return m.styles.Muted.Render("Sin subcategorías de licores.")
	}

	var b strings.Builder
	b.WriteString(m.styles.DrawerTitle.Render("Licores"))
	b.WriteString("\n")
	for i, sub := range m.shelfSubs {
		line := "  " + sub
		if i == m.cursor {
			line = m.styles.MenuSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderNavigationDrawer(height int) string {
	var b strings.Builder
	b.WriteString(m.styles.DrawerTitle.Render("Menú"))
	b.WriteString("\n")
	for i, item := range m.navDrawer.Items() {
		line := item.Icon + " " + i18n.T(m.translator, item.Label)
		if i == m.navCursor {
			line = m.styles.MenuSelected.Render(line)
		} else {
			line = m.styles.MenuItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.styles.Drawer.Height(height - 2).Render(b.String())
}

func (m *Model) renderOrderDrawer(height int) string {
	var b strings.Builder
	b.WriteString(m.styles.DrawerTitle.Render("Orden Actual"))
	b.WriteString("\n")

	items := m.ledger.Items()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("Vacía"))
		b.WriteString("\n")
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("%s  $%.2f\n", item.Name, item.UnitPrice))
		for _, c := range item.Customizations {
			b.WriteString(m.styles.Muted.Render("  " + c))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Total.Render(fmt.Sprintf("Total: $%.2f", m.ledger.Total())))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("f completar · x cancelar"))

	style := m.styles.Drawer
	if m.coord.IsPersistent(panel.DrawerOrder) {
		style = m.styles.DrawerPinned
	}
	return style.Height(height - 2).Render(b.String())
}

func (m *Model) renderSettingsDrawer(height int) string {
	var b strings.Builder
	b.WriteString(m.styles.DrawerTitle.Render("Ajustes"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Panel: " + m.settings.ActivePanel()))
	b.WriteString("\n\n")
	switch m.settings.ActivePanel() {
	case "idioma":
		b.WriteString("Idioma: " + m.translator.CurrentLanguage())
	default:
		b.WriteString(fmt.Sprintf("Punto de corte: %d col", m.cfg.Layout.DesktopBreakpoint))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Máx. mixers: %d", m.cfg.Drinks.MaxCount))
	}
	return m.styles.Drawer.Height(height - 2).Render(b.String())
}

func (m *Model) renderOrders() string {
	var b strings.Builder

	b.WriteString(m.styles.DrawerTitle.Render("Órdenes Activas"))
	b.WriteString("\n")
	if len(m.activeOrders) == 0 {
		b.WriteString(m.styles.Muted.Render("Ninguna"))
		b.WriteString("\n")
	}
	for i, o := range m.activeOrders {
		line := fmt.Sprintf("%s  %d prod.  $%.2f", o.CompletedAt, len(o.Items), o.Total)
		if i == m.ordersCursor {
			line = m.styles.MenuSelected.Render(line)
		} else {
			line = m.styles.MenuItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.DrawerTitle.Render("Historial"))
	b.WriteString("\n")
	if len(m.pastOrders) == 0 {
		b.WriteString(m.styles.Muted.Render("Vacío"))
		b.WriteString("\n")
	}
	for _, o := range m.pastOrders {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s  $%.2f", o.CompletedAt, o.Total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("d pasar a historial · D vaciar historial · esc volver"))
	return b.String()
}
