package enums

import "fmt"

// MealPeriod represents the school meal slots a student can book.
type MealPeriod string

const (
	MealPeriodMorningSnack   MealPeriod = "morning_snack"
	MealPeriodLunch          MealPeriod = "lunch"
	MealPeriodAfternoonSnack MealPeriod = "afternoon_snack"
)

var validMealPeriods = []MealPeriod{
	MealPeriodMorningSnack,
	MealPeriodLunch,
	MealPeriodAfternoonSnack,
}

// String implements fmt.Stringer.
func (m MealPeriod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MealPeriod.
func (m MealPeriod) IsValid() bool {
	for _, candidate := range validMealPeriods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMealPeriod converts raw input into a MealPeriod.
func ParseMealPeriod(value string) (MealPeriod, error) {
	for _, candidate := range validMealPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal period %q", value)
}
