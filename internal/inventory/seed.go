package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seedItems returns the default dataset used when no inventory blob has
// been persisted yet: the staples a school kitchen starts the term with.
func seedItems() []FoodItem {
	return []FoodItem{
		{
			ID:                uuid.NewString(),
			Name:              "Arroz Integral",
			Quantity:          decimal.NewFromInt(50),
			Unit:              "kg",
			NutritionalInfo:   "Rico em fibras, vitaminas do complexo B.",
			LowStockThreshold: decimal.NewFromInt(10),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Feijão Carioca",
			Quantity:          decimal.NewFromInt(40),
			Unit:              "kg",
			NutritionalInfo:   "Fonte de proteína vegetal, ferro e fibras.",
			LowStockThreshold: decimal.NewFromInt(10),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Peito de Frango",
			Quantity:          decimal.NewFromInt(30),
			Unit:              "kg",
			NutritionalInfo:   "Proteína magra, vitaminas B6 e B12.",
			LowStockThreshold: decimal.NewFromInt(5),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Maçã",
			Quantity:          decimal.NewFromInt(100),
			Unit:              "un",
			NutritionalInfo:   "Rica em fibras, vitamina C e antioxidantes.",
			LowStockThreshold: decimal.NewFromInt(20),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Cenoura",
			Quantity:          decimal.NewFromInt(20),
			Unit:              "kg",
			NutritionalInfo:   "Fonte de vitamina A (betacaroteno) e fibras.",
			LowStockThreshold: decimal.NewFromInt(5),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Leite em Pó",
			Quantity:          decimal.NewFromInt(15),
			Unit:              "kg",
			NutritionalInfo:   "Fonte de cálcio e proteína.",
			LowStockThreshold: decimal.NewFromInt(3),
		},
	}
}
