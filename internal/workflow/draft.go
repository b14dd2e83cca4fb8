package workflow

import "github.com/JoemMastertech/cantina/internal/catalog"

// OptionNone is the "no mixer" choice. Selecting it stands alone and
// clears every counter.
const OptionNone = "Ninguno"

// Draft is the transient state of the product being customized. One
// instance lives in the workflow from price tap to confirm, cancel or
// abandon; nothing about it is global.
type Draft struct {
	ProductName string
	UnitPrice   float64
	Tier        catalog.PriceTier
	Category    string
	Behavior    catalog.Behavior

	// Mixer selection. Counts keys are always a subset of Selected.
	Options  []string
	Selected []string
	Counts   map[string]int

	TermID     string
	CustomText string
	Customize  bool

	// Notice holds the last guard rejection so the modal can show it
	// inline. Cleared on the next valid mutation.
	Notice string
}

// TotalCount sums the mixer counters.
func (d *Draft) TotalCount() int {
	total := 0
	for _, n := range d.Counts {
		total += n
	}
	return total
}

// Count returns the counter for one option.
func (d *Draft) Count(option string) int {
	return d.Counts[option]
}

func (d *Draft) isSelected(option string) bool {
	for _, s := range d.Selected {
		if s == option {
			return true
		}
	}
	return false
}

func (d *Draft) selectOption(option string) {
	if !d.isSelected(option) {
		d.Selected = append(d.Selected, option)
	}
}

func (d *Draft) deselectOption(option string) {
	kept := d.Selected[:0]
	for _, s := range d.Selected {
		if s != option {
			kept = append(kept, s)
		}
	}
	d.Selected = kept
}

// CookingTerm is one meat doneness choice.
type CookingTerm struct {
	ID    string
	Label string
}

// CookingTerms lists the selectable doneness terms, in display order.
func CookingTerms() []CookingTerm {
	return []CookingTerm{
		{ID: "medio", Label: "Término ½"},
		{ID: "tres-cuartos", Label: "Término ¾"},
		{ID: "bien-cocido", Label: "Bien Cocido"},
	}
}

func cookingTermLabel(id string) (string, bool) {
	for _, term := range CookingTerms() {
		if term.ID == id {
			return term.Label, true
		}
	}
	return "", false
}
