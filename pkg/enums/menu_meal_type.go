package enums

import "fmt"

// MenuMealType is the meal classification the menu-suggestion gateway
// understands. It is deliberately a different enumeration from MealPeriod:
// the kitchen plans breakfast/lunch/dinner menus while students book
// snack/lunch slots, and the two sets must never be conflated.
type MenuMealType string

const (
	MenuMealTypeBreakfast MenuMealType = "breakfast"
	MenuMealTypeLunch     MenuMealType = "lunch"
	MenuMealTypeDinner    MenuMealType = "dinner"
)

var validMenuMealTypes = []MenuMealType{
	MenuMealTypeBreakfast,
	MenuMealTypeLunch,
	MenuMealTypeDinner,
}

// String implements fmt.Stringer.
func (m MenuMealType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MenuMealType.
func (m MenuMealType) IsValid() bool {
	for _, candidate := range validMenuMealTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMenuMealType converts raw input into a MenuMealType.
func ParseMenuMealType(value string) (MenuMealType, error) {
	for _, candidate := range validMenuMealTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu meal type %q", value)
}
