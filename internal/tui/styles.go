package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared across the views.
// Initialized once at model construction.
type Styles struct {
	Header        lipgloss.Style
	HeaderActive  lipgloss.Style
	Footer        lipgloss.Style
	Drawer        lipgloss.Style
	DrawerTitle   lipgloss.Style
	DrawerPinned  lipgloss.Style
	MenuItem      lipgloss.Style
	MenuSelected  lipgloss.Style
	Price         lipgloss.Style
	PriceSelected lipgloss.Style
	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	ButtonPrimary lipgloss.Style
	ButtonGhost   lipgloss.Style
	ButtonFocus   lipgloss.Style
	Scrim         lipgloss.Style
	Total         lipgloss.Style
	Muted         lipgloss.Style
	Error         lipgloss.Style
}

func newStyles() Styles {
	var s Styles

	s.Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("53")).
		Padding(0, 1)

	s.HeaderActive = s.Header.
		Background(lipgloss.Color("28")).
		Bold(true)

	s.Footer = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.Drawer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	s.DrawerPinned = s.Drawer.
		BorderForeground(lipgloss.Color("240"))

	s.DrawerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	s.MenuItem = lipgloss.NewStyle().
		Padding(0, 1)

	s.MenuSelected = s.MenuItem.
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("229"))

	s.Price = lipgloss.NewStyle().
		Foreground(lipgloss.Color("78"))

	s.PriceSelected = s.Price.
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("229"))

	s.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2)

	s.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	s.ButtonPrimary = lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("229")).
		Padding(0, 2)

	s.ButtonGhost = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 2)

	s.ButtonFocus = lipgloss.NewStyle().
		Background(lipgloss.Color("205")).
		Foreground(lipgloss.Color("229")).
		Bold(true).
		Padding(0, 2)

	s.Scrim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	s.Total = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("78"))

	s.Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203"))

	return s
}
