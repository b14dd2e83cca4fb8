package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/JoemMastertech/cantina/pkg/events"
)

// menuFile is the on-disk shape of the catalog: plain categories plus
// liquor subcategories keyed by their display name.
type menuFile struct {
	Categories map[string][]Product `json:"categorias"`
	Liquors    map[string][]Product `json:"licores"`
}

// FileRepository serves products from a JSON menu file and hot-reloads
// it when the file changes on disk.
type FileRepository struct {
	path string
	bus  *events.EventBus

	mu         sync.RWMutex
	categories map[string][]Product
	liquors    map[string][]Product
}

// NewFileRepository loads the menu at path. The initial load must
// succeed; later reload failures keep the previous catalog and are only
// logged.
func NewFileRepository(path string, bus *events.EventBus) (*FileRepository, error) {
	r := &FileRepository{path: path, bus: bus}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Watch starts watching the menu file for writes until ctx is
// cancelled. Reload failures do not stop the watch.
func (r *FileRepository) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(r.path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := r.load(); err != nil {
						log.Printf("catalog reload failed: %v", err)
						continue
					}
					if r.bus != nil {
						r.bus.Publish(events.Event{
							Type: events.CatalogReloaded,
							Data: map[string]interface{}{"path": r.path},
						})
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("catalog watcher error: %v", err)
			}
		}
	}()
	return nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read menu %s: %w", r.path, err)
	}

	var file menuFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse menu %s: %w", r.path, err)
	}

	categories := make(map[string][]Product, len(file.Categories))
	for name, products := range file.Categories {
		for i := range products {
			if products[i].Category == "" {
				products[i].Category = name
			}
		}
		categories[normalize(name)] = products
	}
	liquors := make(map[string][]Product, len(file.Liquors))
	for name, products := range file.Liquors {
		for i := range products {
			if products[i].Category == "" {
				products[i].Category = name
			}
		}
		liquors[normalize(name)] = products
	}

	r.mu.Lock()
	r.categories = categories
	r.liquors = liquors
	r.mu.Unlock()
	return nil
}

// ProductsByCategory implements Repository.
func (r *FileRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products, ok := r.categories[normalize(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	return append([]Product(nil), products...), nil
}

// LiquorSubcategory implements Repository.
func (r *FileRepository) LiquorSubcategory(ctx context.Context, name string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products, ok := r.liquors[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return append([]Product(nil), products...), nil
}

// LiquorSubcategories lists the available liquor subcategory names.
func (r *FileRepository) LiquorSubcategories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.liquors))
	for name := range r.liquors {
		names = append(names, name)
	}
	return names
}
