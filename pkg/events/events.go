package events

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type EventType string

const (
	DrawerOpened    EventType = "drawer.opened"
	DrawerClosed    EventType = "drawer.closed"
	ModalOpened     EventType = "modal.opened"
	ModalClosed     EventType = "modal.closed"
	OrderUpdated    EventType = "order.updated"
	OrderCompleted  EventType = "order.completed"
	OrderModeToggle EventType = "order.mode"
	CatalogReloaded EventType = "catalog.reloaded"
	ValidationError EventType = "validation.error"
)

type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Data      map[string]interface{}
}

type Handler func(event Event)

// EventBus delivers events synchronously, in subscription order, on the
// publisher's goroutine. The application is single-threaded UI event
// handling; all state mutations triggered by an event must be applied
// before control returns to the caller.
type EventBus struct {
	handlers map[EventType][]Handler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]Handler),
	}
}

func (eb *EventBus) Subscribe(eventType EventType, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
}

func (eb *EventBus) Publish(event Event) {
	event.Timestamp = time.Now()
	if event.ID == "" {
		event.ID = generateEventID()
	}

	eb.mu.RLock()
	handlers := append([]Handler(nil), eb.handlers[event.Type]...)
	eb.mu.RUnlock()

	for _, handler := range handlers {
		// A panicking handler must not take down the UI loop.
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("EventBus handler panic: %v", r)
				}
			}()
			handler(event)
		}()
	}
}

func generateEventID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
