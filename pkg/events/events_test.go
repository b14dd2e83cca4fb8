package events

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusSubscribePublish(t *testing.T) {
	bus := NewEventBus()

	var received []Event
	bus.Subscribe(DrawerOpened, func(e Event) {
		received = append(received, e)
	})

	bus.Publish(Event{Type: DrawerOpened, Data: map[string]interface{}{"id": "order-sidebar"}})

	assert.Len(t, received, 1)
	assert.Equal(t, DrawerOpened, received[0].Type)
	assert.Equal(t, "order-sidebar", received[0].Data["id"])
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestEventBusSynchronousOrder(t *testing.T) {
	bus := NewEventBus()

	var order []int
	bus.Subscribe(OrderUpdated, func(Event) { order = append(order, 1) })
	bus.Subscribe(OrderUpdated, func(Event) { order = append(order, 2) })

	bus.Publish(Event{Type: OrderUpdated})

	// Handlers run inline before Publish returns, in subscription order.
	assert.Equal(t, []int{1, 2}, order)
}

func TestEventBusHandlerPanicIsRecovered(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(ValidationError, func(Event) { panic("boom") })

	var called bool
	bus.Subscribe(ValidationError, func(Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(Event{Type: ValidationError})
	})
	assert.True(t, called, "handlers after a panicking one still run")
}

func TestEventBusHandlerPanicGoesToLog(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(ValidationError, func(Event) { panic("boom") })

	// The recovery must report through the logger, not stdout, so the
	// message never bleeds into the rendered TUI frame.
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	bus.Publish(Event{Type: ValidationError})

	assert.Contains(t, buf.String(), "EventBus handler panic: boom")
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()

	assert.NotPanics(t, func() {
		bus.Publish(Event{Type: CatalogReloaded})
	})
}
