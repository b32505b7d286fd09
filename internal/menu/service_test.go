package menu

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/pkg/enums"
	"github.com/merendaflow/merenda-backend/pkg/kv"
)

type fakeGateway struct {
	lastInput  GenerateInput
	suggestion *Suggestion
	err        error
}

func (f *fakeGateway) GenerateMenu(_ context.Context, input GenerateInput) (*Suggestion, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func TestSuggest_SnapshotsInventory(t *testing.T) {
	ctx := context.Background()
	invStore, err := inventory.NewStore(ctx, kv.NewMemoryStore(), nil, nil)
	require.NoError(t, err)

	gw := &fakeGateway{suggestion: &Suggestion{MenuItems: []MenuItem{{Name: "Sopa de legumes"}}}}
	svc, err := NewService(gw, invStore, "refeições balanceadas")
	require.NoError(t, err)

	got, err := svc.Suggest(ctx, enums.MenuMealTypeLunch, "")
	require.NoError(t, err)
	assert.Equal(t, "Sopa de legumes", got.MenuItems[0].Name)

	assert.Equal(t, enums.MenuMealTypeLunch, gw.lastInput.MealType)
	assert.Equal(t, "refeições balanceadas", gw.lastInput.Guidelines, "blank guidelines fall back to the default")
	assert.Len(t, gw.lastInput.Inventory, len(invStore.List(ctx)))
}

func TestSuggest_CustomGuidelinesPassThrough(t *testing.T) {
	ctx := context.Background()
	invStore, err := inventory.NewStore(ctx, kv.NewMemoryStore(), nil, nil)
	require.NoError(t, err)

	gw := &fakeGateway{suggestion: &Suggestion{MenuItems: []MenuItem{{Name: "Salada"}}}}
	svc, err := NewService(gw, invStore, "padrão")
	require.NoError(t, err)

	_, err = svc.Suggest(ctx, enums.MenuMealTypeDinner, "sem lactose")
	require.NoError(t, err)
	assert.Equal(t, "sem lactose", gw.lastInput.Guidelines)
}

func TestSuggest_ReflectsCurrentStock(t *testing.T) {
	ctx := context.Background()
	invStore, err := inventory.NewStore(ctx, kv.NewMemoryStore(), nil, nil)
	require.NoError(t, err)

	added, err := invStore.Add(ctx, inventory.AddItemInput{
		Name:     "Abóbora",
		Quantity: decimal.NewFromInt(12),
		Unit:     "kg",
	})
	require.NoError(t, err)

	gw := &fakeGateway{suggestion: &Suggestion{MenuItems: []MenuItem{{Name: "Purê"}}}}
	svc, err := NewService(gw, invStore, "")
	require.NoError(t, err)

	_, err = svc.Suggest(ctx, enums.MenuMealTypeBreakfast, "x")
	require.NoError(t, err)

	found := false
	for _, item := range gw.lastInput.Inventory {
		if item.Name == added.Name {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFormatInventory(t *testing.T) {
	assert.Equal(t, "- (empty)", formatInventory(nil))

	out := formatInventory([]InventoryItem{
		{Name: "Arroz", Quantity: decimal.NewFromInt(50), NutritionalInfo: "Carboidratos"},
		{Name: "Feijão", Quantity: decimal.RequireFromString("12.5"), NutritionalInfo: "Proteína"},
	})
	assert.Contains(t, out, "- Arroz (Quantity: 50, Nutritional Info: Carboidratos)")
	assert.Contains(t, out, "- Feijão (Quantity: 12.5, Nutritional Info: Proteína)")
}
