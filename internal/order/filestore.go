package order

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// FileStore keeps saved orders in a single JSON file, guarded by an
// advisory file lock so concurrent terminals on the same data dir
// cannot interleave read-modify-write cycles.
type FileStore struct {
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: 5 * time.Second,
	}
}

// Save appends the order, assigning an id when missing.
func (s *FileStore) Save(ctx context.Context, order SavedOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = StatusActive
	}
	return s.withLock(ctx, func() error {
		orders, err := s.read()
		if err != nil {
			return err
		}
		orders = append(orders, order)
		return s.write(orders)
	})
}

// Active returns orders still in play, newest last.
func (s *FileStore) Active(ctx context.Context) ([]SavedOrder, error) {
	return s.byStatus(ctx, StatusActive)
}

// History returns orders moved out of the active list.
func (s *FileStore) History(ctx context.Context) ([]SavedOrder, error) {
	return s.byStatus(ctx, StatusHistory)
}

// MoveToHistory flips one order's status. Unknown ids are an error so
// the caller can tell the refresh made no difference.
func (s *FileStore) MoveToHistory(ctx context.Context, id string) error {
	return s.withLock(ctx, func() error {
		orders, err := s.read()
		if err != nil {
			return err
		}
		for i := range orders {
			if orders[i].ID == id {
				orders[i].Status = StatusHistory
				return s.write(orders)
			}
		}
		return fmt.Errorf("order %s not found", id)
	})
}

// ClearHistory drops all history-status orders.
func (s *FileStore) ClearHistory(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		orders, err := s.read()
		if err != nil {
			return err
		}
		kept := orders[:0]
		for _, o := range orders {
			if o.Status != StatusHistory {
				kept = append(kept, o)
			}
		}
		return s.write(kept)
	})
}

func (s *FileStore) byStatus(ctx context.Context, status string) ([]SavedOrder, error) {
	var result []SavedOrder
	err := s.withLock(ctx, func() error {
		orders, err := s.read()
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.Status == status {
				result = append(result, o)
			}
		}
		return nil
	})
	return result, err
}

func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire order store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("order store lock busy")
	}
	defer s.lock.Unlock()

	return fn()
}

func (s *FileStore) read() ([]SavedOrder, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read orders %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var orders []SavedOrder
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parse orders %s: %w", s.path, err)
	}
	return orders, nil
}

// write replaces the file atomically: temp file in the same directory,
// then rename.
func (s *FileStore) write(orders []SavedOrder) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create orders dir: %w", err)
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace orders file: %w", err)
	}
	return nil
}
