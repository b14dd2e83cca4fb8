package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceTier identifies which price field of a record was selected.
// Liquor records carry up to three mutually exclusive tiers; everything
// else uses the plain price.
type PriceTier int

const (
	TierSimple PriceTier = iota
	TierBottle
	TierLiter
	TierCup
)

func (t PriceTier) String() string {
	switch t {
	case TierBottle:
		return "botella"
	case TierLiter:
		return "litro"
	case TierCup:
		return "copa"
	default:
		return "simple"
	}
}

// Product is a catalog record as served by the repository. Field names
// follow the upstream data source.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"nombre"`
	Price       string   `json:"precio,omitempty"`
	BottlePrice string   `json:"precioBotella,omitempty"`
	LiterPrice  string   `json:"precioLitro,omitempty"`
	CupPrice    string   `json:"precioCopa,omitempty"`
	BottleMix   []string `json:"mixersBotella,omitempty"`
	LiterMix    []string `json:"mixersLitro,omitempty"`
	CupMix      []string `json:"mixersCopa,omitempty"`
	Image       string   `json:"imagen,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// PriceFor returns the numeric price for the given tier.
func (p Product) PriceFor(tier PriceTier) (float64, error) {
	switch tier {
	case TierBottle:
		return ParsePrice(p.BottlePrice)
	case TierLiter:
		return ParsePrice(p.LiterPrice)
	case TierCup:
		return ParsePrice(p.CupPrice)
	default:
		return ParsePrice(p.Price)
	}
}

// Tiers lists the price tiers this product offers, in display order.
func (p Product) Tiers() []PriceTier {
	var out []PriceTier
	if p.Price != "" {
		out = append(out, TierSimple)
	}
	if p.BottlePrice != "" {
		out = append(out, TierBottle)
	}
	if p.LiterPrice != "" {
		out = append(out, TierLiter)
	}
	if p.CupPrice != "" {
		out = append(out, TierCup)
	}
	return out
}

// MixersFor returns the accompaniment list for the given tier.
func (p Product) MixersFor(tier PriceTier) []string {
	switch tier {
	case TierBottle:
		return p.BottleMix
	case TierLiter:
		return p.LiterMix
	case TierCup:
		return p.CupMix
	default:
		return nil
	}
}

// ParsePrice converts a display price ("$200.00", "1,250.50") into its
// numeric value.
func ParsePrice(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price %q", text)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative price %q", text)
	}
	return value, nil
}
