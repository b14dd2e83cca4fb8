package modal

import (
	"sync"
	"time"

	"github.com/JoemMastertech/cantina/pkg/events"
)

// Variant is the visual style of an action button.
type Variant string

const (
	VariantPrimary  Variant = "primary"
	VariantGhost    Variant = "ghost"
	VariantContrast Variant = "contrast"
)

// Action is one footer button. OnActivate decides whether the modal
// ends: the presenter never auto-closes after an action, because some
// actions (a failed validation, say) keep the dialog open.
type Action struct {
	Label      string
	Variant    Variant
	OnActivate func()
	Disabled   bool
}

// Descriptor configures one modal: title, body markup or a caller-built
// content value, footer actions and an optional close callback.
type Descriptor struct {
	Title   string
	Body    string
	Content interface{}
	Actions []Action
	OnClose func()
}

// Presenter owns the single shared modal slot. Show replaces whatever
// occupies the slot; Close removes the active visual state immediately
// but clears the content only after one exit-transition duration, so a
// Show issued mid-transition supersedes the pending teardown instead of
// racing it.
type Presenter struct {
	bus        *events.EventBus
	transition time.Duration

	mu       sync.Mutex
	current  *Descriptor
	visible  bool
	gen      int
	teardown *time.Timer
}

func NewPresenter(bus *events.EventBus, transition time.Duration) *Presenter {
	return &Presenter{bus: bus, transition: transition}
}

// Show builds and displays a modal, superseding any previous one. A
// pending teardown timer from an in-flight close is cancelled.
func (p *Presenter) Show(d Descriptor) {
	p.mu.Lock()
	p.cancelTeardownLocked()
	p.gen++
	p.current = &d
	p.visible = true
	p.mu.Unlock()

	p.emit(events.ModalOpened, d.Title)
}

// Close hides the modal and schedules content teardown after the exit
// transition. The OnClose callback fires with the teardown.
func (p *Presenter) Close() {
	p.mu.Lock()
	if !p.visible {
		p.mu.Unlock()
		return
	}
	p.visible = false
	p.cancelTeardownLocked()

	gen := p.gen
	if p.transition <= 0 {
		p.mu.Unlock()
		p.finishClose(gen)
		return
	}
	p.teardown = time.AfterFunc(p.transition, func() {
		p.finishClose(gen)
	})
	p.mu.Unlock()
}

// finishClose clears the slot if no newer Show superseded the close.
// OnClose and the lifecycle event fire outside the lock; either may
// Show the next modal.
func (p *Presenter) finishClose(gen int) {
	p.mu.Lock()
	if p.gen != gen || p.visible {
		p.mu.Unlock()
		return
	}
	d := p.current
	p.current = nil
	p.teardown = nil
	p.mu.Unlock()

	if d != nil && d.OnClose != nil {
		d.OnClose()
	}
	p.emit(events.ModalClosed, "")
}

func (p *Presenter) cancelTeardownLocked() {
	if p.teardown != nil {
		p.teardown.Stop()
		p.teardown = nil
	}
}

// HandleBackdropClick closes the modal, same as the header glyph.
func (p *Presenter) HandleBackdropClick() {
	p.Close()
}

// Activate runs the action at index. Disabled and out-of-range actions
// are ignored.
func (p *Presenter) Activate(index int) {
	p.mu.Lock()
	d := p.current
	visible := p.visible
	p.mu.Unlock()

	if !visible || d == nil || index < 0 || index >= len(d.Actions) {
		return
	}
	action := d.Actions[index]
	if action.Disabled || action.OnActivate == nil {
		return
	}
	action.OnActivate()
}

// Visible reports whether a modal currently has the active state.
func (p *Presenter) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Current returns the descriptor occupying the slot. Non-nil during the
// exit transition, nil once teardown ran.
func (p *Presenter) Current() *Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Presenter) emit(eventType events.EventType, title string) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(events.Event{
		Type: eventType,
		Data: map[string]interface{}{"title": title},
	})
}
