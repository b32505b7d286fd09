package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"github.com/merendaflow/merenda-backend/pkg/enums"
	pkgerrors "github.com/merendaflow/merenda-backend/pkg/errors"
)

// InventoryItem is the slice of inventory state the gateway sees: what is
// in stock and what it is good for. Thresholds and units stay behind.
type InventoryItem struct {
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	NutritionalInfo string          `json:"nutritional_info"`
}

// MenuItem is one suggested dish.
type MenuItem struct {
	Name             string   `json:"name"`
	Ingredients      []string `json:"ingredients"`
	NutritionalValue string   `json:"nutritionalValue"`
}

// Suggestion is the gateway's structured answer.
type Suggestion struct {
	MenuItems []MenuItem `json:"menuItems"`
	Reasoning string     `json:"reasoning"`
}

// GenerateInput is the request the gateway accepts. MealType uses the
// kitchen enumeration (breakfast/lunch/dinner), not the booking slots.
type GenerateInput struct {
	Inventory  []InventoryItem
	MealType   enums.MenuMealType
	Guidelines string
}

// Gateway produces menu suggestions from an inventory snapshot. It is a
// single opaque call: no retries, failures surface to the caller as-is.
type Gateway interface {
	GenerateMenu(ctx context.Context, input GenerateInput) (*Suggestion, error)
}

const promptTemplate = `You are a nutritionist creating a school menu based on available inventory and nutritional guidelines.

Available Inventory:
{{.inventory}}

Meal Type: {{.mealType}}

Nutritional Guidelines: {{.guidelines}}

Suggest menu items using only the available inventory and adhering to the nutritional guidelines. Provide a reasoning for your suggestions.

Stick to this JSON format for the output, with no text outside the JSON:

{
	"menuItems": [
		{
			"name": string, // Name of the menu item
			"ingredients": [string], // Ingredients drawn from the inventory
			"nutritionalValue": string // Nutritional value of the menu item
		}
	],
	"reasoning": string // Why these items were suggested given inventory and guidelines
}`

type gateway struct {
	chain       *chains.LLMChain
	callTimeout time.Duration
}

// NewGateway builds the LLM-backed gateway. The timeout bounds each call;
// zero disables the bound.
func NewGateway(llm llms.Model, callTimeout time.Duration) (Gateway, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm required")
	}
	chain := chains.NewLLMChain(
		llm,
		prompts.NewPromptTemplate(promptTemplate, []string{"inventory", "mealType", "guidelines"}),
	)
	return &gateway{chain: chain, callTimeout: callTimeout}, nil
}

// GenerateMenu issues the prompt and parses the structured reply.
func (g *gateway) GenerateMenu(ctx context.Context, input GenerateInput) (*Suggestion, error) {
	if g.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.callTimeout)
		defer cancel()
	}

	values := map[string]any{
		"inventory":  formatInventory(input.Inventory),
		"mealType":   input.MealType.String(),
		"guidelines": input.Guidelines,
	}

	result, err := chains.Call(ctx, g.chain, values)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling menu model")
	}

	text, ok := result["text"].(string)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "menu model returned no text")
	}

	suggestion, err := parseSuggestion(text)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding menu model response")
	}
	return suggestion, nil
}

func formatInventory(items []InventoryItem) string {
	if len(items) == 0 {
		return "- (empty)"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (Quantity: %s, Nutritional Info: %s)",
			item.Name, item.Quantity.String(), item.NutritionalInfo))
	}
	return strings.Join(lines, "\n")
}
