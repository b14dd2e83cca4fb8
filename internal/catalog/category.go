package catalog

import "strings"

// CustomizationKind selects the customization path a category follows
// once a product is picked.
type CustomizationKind int

const (
	// KindNone adds the product directly, no customization step.
	KindNone CustomizationKind = iota
	// KindIngredients is the binary "with everything / customize" flow
	// with free-text ingredient removal.
	KindIngredients
	// KindCookingTerm requires a cooking-term selection plus optional
	// garnish text.
	KindCookingTerm
	// KindMixers is the drink-accompaniment flow; single-select for
	// liter/cup pricing, counted multi-select for bottles.
	KindMixers
)

// Behavior is the resolved per-category rule record. Resolution happens
// once here, not by re-parsing display strings on every interaction.
type Behavior struct {
	Kind         CustomizationKind
	MaxMixers    int
	CompoundRule bool
}

// Table resolves category names to behaviors. Built once at startup
// from configuration.
type Table struct {
	maxMixers  int
	special    map[string]bool
	juiceWords []string
}

// NewTable builds the behavior table. specialCategories are the liquor
// subcategories subject to the compound juice/soda rule; juiceKeywords
// classify a mixer option as juice.
func NewTable(maxMixers int, specialCategories, juiceKeywords []string) *Table {
	special := make(map[string]bool, len(specialCategories))
	for _, c := range specialCategories {
		special[normalize(c)] = true
	}
	words := make([]string, 0, len(juiceKeywords))
	for _, w := range juiceKeywords {
		words = append(words, normalize(w))
	}
	return &Table{maxMixers: maxMixers, special: special, juiceWords: words}
}

var ingredientCategories = map[string]bool{
	"pizzas":         true,
	"alitas":         true,
	"sopas":          true,
	"ensaladas":      true,
	"snacks":         true,
	"platos fuertes": true,
}

// Resolve returns the behavior for a category. Unknown categories get
// KindNone: the product is added as-is.
func (t *Table) Resolve(category string, tier PriceTier) Behavior {
	name := normalize(category)

	if ingredientCategories[name] {
		return Behavior{Kind: KindIngredients}
	}
	if name == "carnes" {
		return Behavior{Kind: KindCookingTerm}
	}
	// The "otros" liquor shelf sells bottles without accompaniments.
	if tier != TierSimple && name != "otros" {
		return Behavior{
			Kind:         KindMixers,
			MaxMixers:    t.maxMixers,
			CompoundRule: t.special[name],
		}
	}
	return Behavior{Kind: KindNone}
}

// IsJuice reports whether a mixer option counts against the juice pool
// of the compound rule.
func (t *Table) IsJuice(option string) bool {
	name := normalize(option)
	for _, w := range t.juiceWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
