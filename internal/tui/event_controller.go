package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JoemMastertech/cantina/pkg/events"
)

// EventController bridges the event bus into the bubbletea update loop.
// Handlers run on the publisher's goroutine; they only forward messages
// through the buffered update channel.
type EventController struct {
	eventBus   *events.EventBus
	updateChan chan tea.Msg
}

func NewEventController(eventBus *events.EventBus, updateChan chan tea.Msg) *EventController {
	return &EventController{
		eventBus:   eventBus,
		updateChan: updateChan,
	}
}

// SetupEventSubscriptions sets up all event subscriptions.
func (ec *EventController) SetupEventSubscriptions() {
	ec.eventBus.Subscribe(events.DrawerOpened, func(e events.Event) {
		ec.updateChan <- drawerUpdateMsg{}
	})
	ec.eventBus.Subscribe(events.DrawerClosed, func(e events.Event) {
		ec.updateChan <- drawerUpdateMsg{}
	})

	ec.eventBus.Subscribe(events.ModalOpened, func(e events.Event) {
		ec.updateChan <- modalUpdateMsg{}
	})
	ec.eventBus.Subscribe(events.ModalClosed, func(e events.Event) {
		ec.updateChan <- modalUpdateMsg{}
	})

	ec.eventBus.Subscribe(events.OrderUpdated, func(e events.Event) {
		count, _ := e.Data["count"].(int)
		total, _ := e.Data["total"].(float64)
		ec.updateChan <- orderUpdateMsg{Count: count, Total: total}
	})

	ec.eventBus.Subscribe(events.OrderCompleted, func(e events.Event) {
		total, _ := e.Data["total"].(float64)
		ec.updateChan <- orderCompletedMsg{Total: total}
	})

	ec.eventBus.Subscribe(events.OrderModeToggle, func(e events.Event) {
		active, _ := e.Data["active"].(bool)
		ec.updateChan <- orderModeMsg{Active: active}
	})

	ec.eventBus.Subscribe(events.CatalogReloaded, func(e events.Event) {
		ec.updateChan <- catalogReloadedMsg{}
	})

	ec.eventBus.Subscribe(events.ValidationError, func(e events.Event) {
		message, _ := e.Data["message"].(string)
		ec.updateChan <- validationMsg{Message: message}
	})
}
