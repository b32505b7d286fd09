package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/merendaflow/merenda-backend/internal/inventory"
	"github.com/merendaflow/merenda-backend/pkg/enums"
)

// Service snapshots the current inventory and asks the gateway for a menu.
type Service interface {
	Suggest(ctx context.Context, mealType enums.MenuMealType, guidelines string) (*Suggestion, error)
}

type service struct {
	gateway           Gateway
	inventory         inventory.Store
	defaultGuidelines string
}

// NewService constructs a menu suggestion service.
func NewService(gateway Gateway, inventoryStore inventory.Store, defaultGuidelines string) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("menu gateway required")
	}
	if inventoryStore == nil {
		return nil, fmt.Errorf("inventory store required")
	}
	return &service{
		gateway:           gateway,
		inventory:         inventoryStore,
		defaultGuidelines: defaultGuidelines,
	}, nil
}

// Suggest reads the inventory as it stands right now and delegates to the
// gateway. Gateway failures come back unchanged.
func (s *service) Suggest(ctx context.Context, mealType enums.MenuMealType, guidelines string) (*Suggestion, error) {
	if strings.TrimSpace(guidelines) == "" {
		guidelines = s.defaultGuidelines
	}

	items := s.inventory.List(ctx)
	snapshot := make([]InventoryItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, InventoryItem{
			Name:            item.Name,
			Quantity:        item.Quantity,
			NutritionalInfo: item.NutritionalInfo,
		})
	}

	return s.gateway.GenerateMenu(ctx, GenerateInput{
		Inventory:  snapshot,
		MealType:   mealType,
		Guidelines: guidelines,
	})
}
