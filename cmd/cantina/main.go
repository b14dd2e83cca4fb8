package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/config"
	"github.com/JoemMastertech/cantina/internal/order"
	"github.com/JoemMastertech/cantina/internal/tui"
	"github.com/JoemMastertech/cantina/pkg/events"
)

var (
	// Version is set at build time
	Version = "dev"

	configPath  string
	menuPath    string
	ordersPath  string
	showVersion bool
	watchMenu   bool
)

var rootCmd = &cobra.Command{
	Use:   "cantina",
	Short: "A TUI point-of-sale for restaurant and bar orders",
	Long: `Cantina is a terminal point-of-sale for restaurant and bar service.
It presents the product catalog by category, walks each product through
its customization flow (cooking terms, ingredients, drink mixers) and
keeps the running order until it is completed and saved.

Basic Usage:
  cantina                        # Start with the default menu and data dir
  cantina --menu ./menu.json     # Use a specific catalog file
  cantina --watch                # Reload the catalog when the file changes
  cantina --orders ./orders.json # Store completed orders elsewhere`,
	Args: cobra.NoArgs,
	Run:  runApp,
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the TOML configuration file")
	rootCmd.Flags().StringVar(&menuPath, "menu", "", "Path to the menu JSON file (overrides config)")
	rootCmd.Flags().StringVar(&ordersPath, "orders", "", "Path to the orders JSON file (overrides config)")
	rootCmd.Flags().BoolVar(&watchMenu, "watch", false, "Reload the catalog when the menu file changes")

	rootCmd.Version = Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) {
	if showVersion {
		fmt.Printf("cantina version %s\n", Version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if menuPath != "" {
		cfg.Catalog.Path = menuPath
	}
	if ordersPath != "" {
		cfg.Orders.File = ordersPath
		cfg.Orders.DataDir = ""
	}

	eventBus := events.NewEventBus()

	repo, err := catalog.NewFileRepository(cfg.Catalog.Path, eventBus)
	if err != nil {
		log.Fatalf("Failed to load catalog %s: %v", cfg.Catalog.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watchMenu {
		if err := repo.Watch(ctx); err != nil {
			log.Printf("Catalog watch disabled: %v", err)
		}
	}

	store := order.NewFileStore(cfg.OrdersPath())

	model := tui.NewModel(cfg, eventBus, repo, store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal("Failed to run TUI:", err)
	}
}
