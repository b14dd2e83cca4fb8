package order

import (
	"context"
	"time"
)

// Order status values. A saved order is append-only; only the status
// ever changes, and only from active to history.
const (
	StatusActive  = "active"
	StatusHistory = "history"
)

// SavedOrder is the durable snapshot of a completed order.
type SavedOrder struct {
	ID          string    `json:"id"`
	Items       []Item    `json:"items"`
	Total       float64   `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
	CompletedAt string    `json:"completedAt"`
	Status      string    `json:"status"`
}

// Store persists completed orders. A failed Save leaves the ledger
// untouched; retrying is a repeated user gesture, never automatic.
type Store interface {
	Save(ctx context.Context, order SavedOrder) error
	Active(ctx context.Context) ([]SavedOrder, error)
	History(ctx context.Context) ([]SavedOrder, error)
	MoveToHistory(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
}

// Snapshot assembles a SavedOrder from the ledger's current contents.
func Snapshot(ledger *Ledger, now time.Time) SavedOrder {
	return SavedOrder{
		Items:       ledger.Items(),
		Total:       ledger.Total(),
		Timestamp:   now,
		CompletedAt: now.Format("02/01/06 15:04"),
		Status:      StatusActive,
	}
}
