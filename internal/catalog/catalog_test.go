package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "currency_symbol", input: "$200.00", want: 200},
		{name: "plain_number", input: "25", want: 25},
		{name: "thousands_separator", input: "$1,250.50", want: 1250.50},
		{name: "surrounding_whitespace", input: "  $20.00 ", want: 20},
		{name: "empty", input: "", wantErr: true},
		{name: "symbol_only", input: "$", wantErr: true},
		{name: "garbage", input: "gratis", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductPriceFor(t *testing.T) {
	p := Product{
		Name:        "RON BACARDI",
		BottlePrice: "$200.00",
		LiterPrice:  "$120.00",
		CupPrice:    "$35.00",
	}

	bottle, err := p.PriceFor(TierBottle)
	require.NoError(t, err)
	assert.Equal(t, 200.0, bottle)

	cup, err := p.PriceFor(TierCup)
	require.NoError(t, err)
	assert.Equal(t, 35.0, cup)

	_, err = p.PriceFor(TierSimple)
	assert.Error(t, err, "no plain price on a tiered record")
}

func newTestTable() *Table {
	return NewTable(5, []string{"VODKA"}, []string{"jugo", "jarra"})
}

func TestTableResolve(t *testing.T) {
	table := newTestTable()

	tests := []struct {
		name     string
		category string
		tier     PriceTier
		want     Behavior
	}{
		{name: "pizza", category: "pizzas", tier: TierSimple, want: Behavior{Kind: KindIngredients}},
		{name: "platos_fuertes", category: "Platos Fuertes", tier: TierSimple, want: Behavior{Kind: KindIngredients}},
		{name: "snacks", category: "snacks", tier: TierSimple, want: Behavior{Kind: KindIngredients}},
		{name: "carnes", category: "carnes", tier: TierSimple, want: Behavior{Kind: KindCookingTerm}},
		{name: "bottle_regular", category: "RON", tier: TierBottle, want: Behavior{Kind: KindMixers, MaxMixers: 5}},
		{name: "bottle_special", category: "VODKA", tier: TierBottle, want: Behavior{Kind: KindMixers, MaxMixers: 5, CompoundRule: true}},
		{name: "cup_special", category: "vodka", tier: TierCup, want: Behavior{Kind: KindMixers, MaxMixers: 5, CompoundRule: true}},
		{name: "otros_bottle", category: "OTROS", tier: TierBottle, want: Behavior{Kind: KindNone}},
		{name: "refrescos", category: "refrescos", tier: TierSimple, want: Behavior{Kind: KindNone}},
		{name: "unknown", category: "merch", tier: TierSimple, want: Behavior{Kind: KindNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Resolve(tt.category, tt.tier))
		})
	}
}

func TestTableIsJuice(t *testing.T) {
	table := newTestTable()

	assert.True(t, table.IsJuice("Jarra de Jugo"))
	assert.True(t, table.IsJuice("jugo de naranja"))
	assert.False(t, table.IsJuice("Mineral"))
	assert.False(t, table.IsJuice("Coca"))
	assert.False(t, table.IsJuice("Ninguno"))
}

const testMenu = `{
  "categorias": {
    "refrescos": [
      {"nombre": "Coca Cola", "precio": "$25.00"},
      {"nombre": "Agua Mineral", "precio": "$20.00"}
    ],
    "carnes": [
      {"nombre": "Arrachera", "precio": "$180.00"}
    ]
  },
  "licores": {
    "VODKA": [
      {"nombre": "ABSOLUT", "precioBotella": "$800.00", "precioCopa": "$60.00",
       "mixersBotella": ["Mineral", "Coca", "Jarra de Jugo", "Ninguno"]}
    ]
  }
}`

func writeMenu(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileRepositoryLookups(t *testing.T) {
	path := writeMenu(t, t.TempDir(), testMenu)

	repo, err := NewFileRepository(path, nil)
	require.NoError(t, err)

	ctx := context.Background()

	refrescos, err := repo.ProductsByCategory(ctx, "refrescos")
	require.NoError(t, err)
	require.Len(t, refrescos, 2)
	assert.Equal(t, "Coca Cola", refrescos[0].Name)
	assert.Equal(t, "refrescos", refrescos[0].Category)

	vodka, err := repo.LiquorSubcategory(ctx, "vodka")
	require.NoError(t, err)
	require.Len(t, vodka, 1)
	assert.Equal(t, "ABSOLUT", vodka[0].Name)
	assert.Contains(t, vodka[0].MixersFor(TierBottle), "Jarra de Jugo")

	_, err = repo.ProductsByCategory(ctx, "sushi")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestFileRepositoryRejectsBrokenMenu(t *testing.T) {
	path := writeMenu(t, t.TempDir(), "{")

	_, err := NewFileRepository(path, nil)
	assert.Error(t, err)
}
