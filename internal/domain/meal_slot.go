package domain

import "strings"

type MealSlot string

const (
	MealBreakfast MealSlot = "BREAKFAST"
	MealLunch     MealSlot = "LUNCH"
	MealDinner    MealSlot = "DINNER"
	MealSnack     MealSlot = "SNACK"
	MealDessert   MealSlot = "DESSERT"
)

// DefaultMealSlot is used when no rule dataset could be loaded.
const DefaultMealSlot = MealDinner

// QuickMealSlot is the slot for easy recipes that are ready within half an hour.
const QuickMealSlot = MealBreakfast

var mealSlots = []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnack, MealDessert}

func MealSlots() []MealSlot {
	out := make([]MealSlot, len(mealSlots))
	copy(out, mealSlots)
	return out
}

// ParseMealSlot accepts slot names case-insensitively.
func ParseMealSlot(s string) (MealSlot, bool) {
	name := MealSlot(strings.ToUpper(strings.TrimSpace(s)))
	for _, slot := range mealSlots {
		if slot == name {
			return slot, true
		}
	}
	return "", false
}
