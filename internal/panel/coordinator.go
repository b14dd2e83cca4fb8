package panel

import (
	"time"

	"github.com/JoemMastertech/cantina/pkg/events"
)

// DrawerID identifies a managed drawer.
type DrawerID string

const (
	DrawerNavigation DrawerID = "drawer-menu"
	DrawerOrder      DrawerID = "order-sidebar"
	DrawerSettings   DrawerID = "settings-menu"
	DrawerSidePanel  DrawerID = "side-panel"
)

// PanelState is the externally visible per-drawer record.
type PanelState struct {
	ID           DrawerID
	IsOpen       bool
	IsPersistent bool
	ZLayer       int
}

// Coordinator owns the shared scrim and enforces the at-most-one
// non-persistent drawer invariant. It decides overlay-vs-pinned layout
// per viewport width; drawers hold a reference to it and it knows none
// of them.
type Coordinator struct {
	bus        *events.EventBus
	breakpoint int
	allowlist  map[DrawerID]bool
	debounce   time.Duration
	now        func() time.Time

	width      int
	open       []DrawerID
	active     DrawerID
	lastToggle time.Time
}

// NewCoordinator builds the session coordinator. persistent lists the
// drawers pinned into the layout at or above breakpoint columns.
func NewCoordinator(bus *events.EventBus, breakpoint int, persistent []string, debounce time.Duration) *Coordinator {
	allowlist := make(map[DrawerID]bool, len(persistent))
	for _, id := range persistent {
		allowlist[DrawerID(id)] = true
	}
	return &Coordinator{
		bus:        bus,
		breakpoint: breakpoint,
		allowlist:  allowlist,
		debounce:   debounce,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used for the toggle debounce window.
func (c *Coordinator) SetNowFunc(now func() time.Time) {
	c.now = now
}

// IsPersistent reports whether a drawer is pinned on the current
// viewport. Derived, never stored: allowlisted AND desktop width.
func (c *Coordinator) IsPersistent(id DrawerID) bool {
	if id == "" {
		return false
	}
	return c.width >= c.breakpoint && c.allowlist[id]
}

// Open activates a drawer. An already-active non-persistent drawer is
// closed first; persistent drawers stay pinned in the background.
func (c *Coordinator) Open(id DrawerID) {
	if id == "" {
		return
	}
	if c.isOpen(id) {
		c.active = id
		return
	}

	if c.active != "" && c.active != id && !c.IsPersistent(c.active) {
		c.closeDrawer(c.active)
	}

	c.open = append(c.open, id)
	c.active = id
	c.emit(events.DrawerOpened, id)
}

// Close deactivates a drawer. It is a no-op unless the drawer is open,
// and it refuses to close a pinned drawer unless force is set: pinned
// drawers are desktop real estate, only an explicit application
// decision may remove them.
func (c *Coordinator) Close(id DrawerID, force bool) bool {
	if !c.isOpen(id) {
		return false
	}
	if !force && c.IsPersistent(id) {
		return false
	}
	c.closeDrawer(id)
	return true
}

// Toggle opens the drawer if inactive, else closes it (non-forced).
// Repeat calls inside the debounce window are collapsed.
func (c *Coordinator) Toggle(id DrawerID) {
	now := c.now()
	if !c.lastToggle.IsZero() && now.Sub(c.lastToggle) < c.debounce {
		return
	}
	c.lastToggle = now

	if c.active == id && c.isOpen(id) {
		c.Close(id, false)
	} else {
		c.Open(id)
	}
}

// CloseAll closes the active drawer ignoring persistence. Used for
// Escape handling and scrim clicks.
func (c *Coordinator) CloseAll() {
	if c.active != "" {
		c.Close(c.active, true)
	}
}

// Resize updates the viewport width. Persistence and layout are derived
// values, so open drawers switch between pinned and overlay mode
// without re-opening.
func (c *Coordinator) Resize(width int) {
	c.width = width
}

// ActiveDrawer returns the most recently opened drawer, or "".
func (c *Coordinator) ActiveDrawer() DrawerID {
	return c.active
}

// IsOpen reports whether the drawer is currently open.
func (c *Coordinator) IsOpen(id DrawerID) bool {
	return c.isOpen(id)
}

// ScrimVisible holds the overlay invariant: a scrim shows exactly when
// the active drawer is a non-persistent overlay.
func (c *Coordinator) ScrimVisible() bool {
	return c.active != "" && !c.IsPersistent(c.active)
}

// BodyScrollLocked reports whether background scrolling is suppressed.
func (c *Coordinator) BodyScrollLocked() bool {
	return len(c.open) > 0
}

// LayoutShifted reports whether the pinned-drawer grid shift applies.
func (c *Coordinator) LayoutShifted() bool {
	for _, id := range c.open {
		if c.IsPersistent(id) {
			return true
		}
	}
	return false
}

// State returns the drawer's record.
func (c *Coordinator) State(id DrawerID) PanelState {
	z := 0
	if c.active == id {
		z = 1
	}
	return PanelState{
		ID:           id,
		IsOpen:       c.isOpen(id),
		IsPersistent: c.IsPersistent(id),
		ZLayer:       z,
	}
}

func (c *Coordinator) isOpen(id DrawerID) bool {
	for _, open := range c.open {
		if open == id {
			return true
		}
	}
	return false
}

func (c *Coordinator) closeDrawer(id DrawerID) {
	kept := c.open[:0]
	for _, open := range c.open {
		if open != id {
			kept = append(kept, open)
		}
	}
	c.open = kept

	if c.active == id {
		c.active = ""
		// A pinned drawer left open in the background becomes active
		// again once the overlay above it goes away.
		for i := len(c.open) - 1; i >= 0; i-- {
			if c.IsPersistent(c.open[i]) {
				c.active = c.open[i]
				break
			}
		}
	}
	c.emit(events.DrawerClosed, id)
}

func (c *Coordinator) emit(eventType events.EventType, id DrawerID) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(events.Event{
		Type: eventType,
		Data: map[string]interface{}{"id": string(id)},
	})
}
