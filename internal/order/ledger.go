package order

import (
	"log"

	"github.com/google/uuid"

	"github.com/JoemMastertech/cantina/pkg/events"
)

// Item is one order line. Immutable once added; removal deletes the
// whole item.
type Item struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	UnitPrice      float64  `json:"price"`
	Category       string   `json:"category"`
	Customizations []string `json:"customizations,omitempty"`
}

// Ledger holds the in-progress order's line items. The total is always
// derived from the items, never cached.
type Ledger struct {
	bus   *events.EventBus
	items []Item
}

func NewLedger(bus *events.EventBus) *Ledger {
	return &Ledger{bus: bus}
}

// AddProduct appends an item, assigning an id if none was provided, and
// returns the stored item.
func (l *Ledger) AddProduct(item Item) Item {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	l.items = append(l.items, item)
	l.emit()
	return item
}

// RemoveItem deletes by id. An unknown id is reported and ignored.
func (l *Ledger) RemoveItem(id string) {
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.emit()
			return
		}
	}
	log.Printf("ledger: remove of unknown item %q", id)
}

// Items returns a copy of the line items in insertion order.
func (l *Ledger) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Total recomputes the sum of unit prices.
func (l *Ledger) Total() float64 {
	var total float64
	for _, item := range l.items {
		total += item.UnitPrice
	}
	return total
}

// Len returns the number of line items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Clear empties the ledger. Called after a completed order has been
// durably saved, or on explicit cancellation.
func (l *Ledger) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.items = nil
	l.emit()
}

func (l *Ledger) emit() {
	if l.bus == nil {
		return
	}
	l.bus.Publish(events.Event{
		Type: events.OrderUpdated,
		Data: map[string]interface{}{
			"count": len(l.items),
			"total": l.Total(),
		},
	})
}
