package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/JoemMastertech/cantina/internal/catalog"
	"github.com/JoemMastertech/cantina/internal/modal"
	"github.com/JoemMastertech/cantina/internal/order"
	"github.com/JoemMastertech/cantina/pkg/events"
)

// State is the workflow position. Confirm and cancel are edges back to
// Idle, not resting states.
type State int

const (
	StateIdle State = iota
	StateProductSelected
	StateCustomizing
)

var (
	ErrOrderModeInactive   = errors.New("order mode inactive")
	ErrCookingTermRequired = errors.New("cooking term required")
	ErrEmptyOrder          = errors.New("order is empty")
	ErrNoProductSelected   = errors.New("no product selected")
)

// User-facing validation messages, verbatim from the product.
const (
	MsgActivateOrderMode   = "Para agregar productos, primero activa “Crear orden”."
	MsgEmptyOrder          = "La orden está vacía."
	MsgOrderSaved          = "Orden completada y guardada exitosamente."
	MsgSaveFailed          = "Error al guardar la orden. Por favor intente de nuevo."
	MsgMixerLimit          = "Límite de mixers alcanzado."
	MsgCookingTermRequired = "Por favor selecciona el término de cocción."
)

// CustomizationContent marks a modal as the customization dialog; the
// view layer renders it from the workflow's draft.
type CustomizationContent struct {
	Workflow *Workflow
}

// Workflow drives product selection through customization into the
// ledger. It owns the draft; the presenter collects input; the ledger
// is only touched on confirm.
type Workflow struct {
	bus       *events.EventBus
	ledger    *order.Ledger
	presenter *modal.Presenter
	table     *catalog.Table
	rules     *MixerRules
	store     order.Store
	now       func() time.Time

	orderMode bool
	state     State
	draft     *Draft
}

func New(bus *events.EventBus, ledger *order.Ledger, presenter *modal.Presenter, table *catalog.Table, store order.Store) *Workflow {
	return &Workflow{
		bus:       bus,
		ledger:    ledger,
		presenter: presenter,
		table:     table,
		rules:     NewMixerRules(table),
		store:     store,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock used for order timestamps.
func (w *Workflow) SetNowFunc(now func() time.Time) {
	w.now = now
}

func (w *Workflow) State() State { return w.state }

func (w *Workflow) Draft() *Draft { return w.draft }

func (w *Workflow) OrderMode() bool { return w.orderMode }

// ToggleOrderMode flips order mode. Leaving order mode abandons any
// in-flight draft.
func (w *Workflow) ToggleOrderMode() bool {
	w.orderMode = !w.orderMode
	if !w.orderMode {
		w.Cancel()
	}
	if w.bus != nil {
		w.bus.Publish(events.Event{
			Type: events.OrderModeToggle,
			Data: map[string]interface{}{"active": w.orderMode},
		})
	}
	return w.orderMode
}

// SelectProduct starts the pipeline for a tapped price. Outside order
// mode it shows the activation message and changes nothing. Categories
// without a customization step confirm immediately.
func (w *Workflow) SelectProduct(product catalog.Product, tier catalog.PriceTier) error {
	if !w.orderMode {
		w.ShowValidation(MsgActivateOrderMode)
		return ErrOrderModeInactive
	}

	price, err := product.PriceFor(tier)
	if err != nil {
		return fmt.Errorf("product %s: %w", product.Name, err)
	}

	behavior := w.table.Resolve(product.Category, tier)
	w.draft = &Draft{
		ProductName: product.Name,
		UnitPrice:   price,
		Tier:        tier,
		Category:    product.Category,
		Behavior:    behavior,
		Options:     product.MixersFor(tier),
		Counts:      make(map[string]int),
	}
	w.state = StateProductSelected

	if behavior.Kind == catalog.KindNone {
		w.addDraftToLedger(nil)
		return nil
	}

	w.state = StateCustomizing
	w.presentCustomization()
	return nil
}

// presentCustomization opens the customization dialog for the draft's
// behavior kind. Confirm leaves the modal open on validation failure.
func (w *Workflow) presentCustomization() {
	title := w.draft.ProductName
	if w.draft.Behavior.Kind == catalog.KindIngredients {
		title = "¿Desea su platillo con todos los ingredientes?"
	}

	w.presenter.Show(modal.Descriptor{
		Title:   title,
		Content: CustomizationContent{Workflow: w},
		// Dismissing the dialog without confirming abandons the draft.
		OnClose: w.Cancel,
		Actions: []modal.Action{
			{
				Label:   "Confirmar",
				Variant: modal.VariantContrast,
				OnActivate: func() {
					if err := w.ConfirmCustomization(); err != nil {
						log.Printf("customization not confirmed: %v", err)
						return
					}
					w.presenter.Close()
				},
			},
			{
				Label:   "Cancelar",
				Variant: modal.VariantGhost,
				OnActivate: func() {
					w.Cancel()
					w.presenter.Close()
				},
			},
		},
	})
}

// IncrementMixer raises one counter, subject to the category limits.
func (w *Workflow) IncrementMixer(option string) error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}
	d.Notice = ""
	if option == OptionNone {
		w.SelectNone()
		return nil
	}
	if err := w.rules.CanIncrement(d.Behavior, d.Counts, option); err != nil {
		d.Notice = MsgMixerLimit
		return err
	}

	// A real selection displaces a standing "Ninguno".
	if d.isSelected(OptionNone) {
		d.deselectOption(OptionNone)
	}
	d.Counts[option]++
	d.selectOption(option)
	return nil
}

// DecrementMixer lowers one counter, dropping the selection at zero.
func (w *Workflow) DecrementMixer(option string) error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}
	d.Notice = ""
	if d.Counts[option] == 0 {
		return nil
	}
	d.Counts[option]--
	if d.Counts[option] == 0 {
		delete(d.Counts, option)
		d.deselectOption(option)
	}
	return nil
}

// SelectSingleMixer is the liter/cup path: one choice, no counters.
func (w *Workflow) SelectSingleMixer(option string) error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}
	d.Notice = ""
	d.Selected = []string{option}
	d.Counts = make(map[string]int)
	return nil
}

// SelectNone clears all counters and leaves "Ninguno" standing alone.
func (w *Workflow) SelectNone() {
	if d, err := w.customizingDraft(); err == nil {
		d.Notice = ""
		d.Selected = []string{OptionNone}
		d.Counts = make(map[string]int)
	}
}

// SelectCookingTerm picks the doneness term for a meat product.
func (w *Workflow) SelectCookingTerm(termID string) error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}
	if _, ok := cookingTermLabel(termID); !ok {
		return fmt.Errorf("unknown cooking term %q", termID)
	}
	d.Notice = ""
	d.TermID = termID
	return nil
}

// SetCustomText records the free-text customization (ingredient
// removal, or garnish changes for meat).
func (w *Workflow) SetCustomText(text string) error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}
	d.Notice = ""
	d.CustomText = text
	d.Customize = text != ""
	return nil
}

// ConfirmCustomization assembles the customization list, adds the item
// to the ledger and clears the draft. A meat product without a chosen
// term fails validation and leaves the state untouched.
func (w *Workflow) ConfirmCustomization() error {
	d, err := w.customizingDraft()
	if err != nil {
		return err
	}

	d.Notice = ""
	var customizations []string
	switch d.Behavior.Kind {
	case catalog.KindCookingTerm:
		label, ok := cookingTermLabel(d.TermID)
		if !ok {
			d.Notice = MsgCookingTermRequired
			return ErrCookingTermRequired
		}
		customizations = append(customizations, label)
		if d.CustomText != "" {
			customizations = append(customizations, "Guarnición: "+d.CustomText)
		} else {
			customizations = append(customizations, "Guarnición Normal")
		}
	case catalog.KindIngredients:
		if d.CustomText != "" {
			customizations = append(customizations, "Personalizado: "+d.CustomText)
		} else {
			customizations = append(customizations, "Sin cambios")
		}
	case catalog.KindMixers:
		customizations = mixerCustomizations(d)
	}

	w.addDraftToLedger(customizations)
	return nil
}

func mixerCustomizations(d *Draft) []string {
	var out []string
	for _, option := range d.Selected {
		if n := d.Counts[option]; n > 1 {
			out = append(out, fmt.Sprintf("%s x%d", option, n))
		} else {
			out = append(out, option)
		}
	}
	return out
}

// Cancel abandons the draft without touching the ledger. Permitted in
// any state.
func (w *Workflow) Cancel() {
	w.draft = nil
	w.state = StateIdle
}

func (w *Workflow) addDraftToLedger(customizations []string) {
	d := w.draft
	w.ledger.AddProduct(order.Item{
		Name:           d.ProductName,
		UnitPrice:      d.UnitPrice,
		Category:       d.Category,
		Customizations: customizations,
	})
	w.draft = nil
	w.state = StateIdle
}

func (w *Workflow) customizingDraft() (*Draft, error) {
	if w.state != StateCustomizing || w.draft == nil {
		return nil, ErrNoProductSelected
	}
	return w.draft, nil
}

// RequestCompleteOrder asks for confirmation, then persists a snapshot
// and clears the ledger. The ledger survives a failed save untouched;
// retrying is the user's gesture.
func (w *Workflow) RequestCompleteOrder(ctx context.Context) {
	if w.ledger.Len() == 0 {
		w.ShowValidation(MsgEmptyOrder)
		return
	}

	w.showConfirmation("Confirmar Orden", "¿Desea completar la orden?", func() {
		if err := w.CompleteOrder(ctx); err != nil {
			log.Printf("order save failed: %v", err)
			w.ShowValidation(MsgSaveFailed)
			return
		}
		w.ShowValidation(MsgOrderSaved)
	})
}

// CompleteOrder persists the ledger snapshot. Only a successful save
// clears the ledger and exits order mode.
func (w *Workflow) CompleteOrder(ctx context.Context) error {
	if w.ledger.Len() == 0 {
		return ErrEmptyOrder
	}

	snapshot := order.Snapshot(w.ledger, w.now())
	if err := w.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	w.ledger.Clear()
	if w.orderMode {
		w.ToggleOrderMode()
	}
	if w.bus != nil {
		w.bus.Publish(events.Event{
			Type: events.OrderCompleted,
			Data: map[string]interface{}{"total": snapshot.Total},
		})
	}
	return nil
}

// RequestClearOrder cancels the current order behind a confirmation.
// An empty order just drops out of order mode.
func (w *Workflow) RequestClearOrder() {
	if w.ledger.Len() == 0 {
		if w.orderMode {
			w.ToggleOrderMode()
		}
		return
	}

	w.showConfirmation("Cancelar Orden", "¿Está seguro de cancelar la orden actual?", func() {
		w.ledger.Clear()
		if w.orderMode {
			w.ToggleOrderMode()
		}
		w.presenter.Close()
	})
}

// ShowValidation presents the blocking single-button notice used for
// every guard violation.
func (w *Workflow) ShowValidation(message string) {
	if w.bus != nil {
		w.bus.Publish(events.Event{
			Type: events.ValidationError,
			Data: map[string]interface{}{"message": message},
		})
	}
	if w.presenter == nil {
		return
	}
	w.presenter.Show(modal.Descriptor{
		Title: "Atención",
		Body:  message,
		Actions: []modal.Action{
			{
				Label:      "Aceptar",
				Variant:    modal.VariantContrast,
				OnActivate: func() { w.presenter.Close() },
			},
		},
	})
}

func (w *Workflow) showConfirmation(title, message string, onConfirm func()) {
	w.presenter.Show(modal.Descriptor{
		Title: title,
		Body:  message,
		Actions: []modal.Action{
			{
				Label:   "Confirmar",
				Variant: modal.VariantContrast,
				OnActivate: func() {
					onConfirm()
				},
			},
			{
				Label:      "Cancelar",
				Variant:    modal.VariantGhost,
				OnActivate: func() { w.presenter.Close() },
			},
		},
	})
}
