// Package rules holds the meal-slot classification rules. A Dataset is built
// once at startup and never changes afterwards, so it is safe to share
// between requests without locking.
package rules

import "github.com/actuallystonmai/daily-menu-service/internal/domain"

// SlotKeywords is one ordered rule entry: any of Keywords maps to Slot.
type SlotKeywords struct {
	Slot     domain.MealSlot
	Keywords []string
}

type Dataset struct {
	defaultSlot domain.MealSlot
	categories  map[string]domain.MealSlot
	keywords    []SlotKeywords
	ingredients []SlotKeywords
}

// Empty returns a dataset with no rules that always yields the built-in default slot.
func Empty() *Dataset {
	return &Dataset{
		defaultSlot: domain.DefaultMealSlot,
		categories:  map[string]domain.MealSlot{},
	}
}

// New builds a dataset from already-parsed rules. Category names and keywords
// are normalized; entries keep the order they were given in.
func New(defaultSlot domain.MealSlot, categories map[string]domain.MealSlot, keywords, ingredients []SlotKeywords) *Dataset {
	if defaultSlot == "" {
		defaultSlot = domain.DefaultMealSlot
	}
	ds := &Dataset{
		defaultSlot: defaultSlot,
		categories:  make(map[string]domain.MealSlot, len(categories)),
	}
	for name, slot := range categories {
		if key := domain.NormalizeName(name); key != "" {
			ds.categories[key] = slot
		}
	}
	ds.keywords = normalizeEntries(keywords)
	ds.ingredients = normalizeEntries(ingredients)
	return ds
}

func normalizeEntries(entries []SlotKeywords) []SlotKeywords {
	out := make([]SlotKeywords, 0, len(entries))
	index := make(map[domain.MealSlot]int, len(entries))
	for _, e := range entries {
		words := make([]string, 0, len(e.Keywords))
		for _, w := range e.Keywords {
			if w = domain.NormalizeName(w); w != "" {
				words = append(words, w)
			}
		}
		if i, ok := index[e.Slot]; ok {
			out[i].Keywords = append(out[i].Keywords, words...)
			continue
		}
		index[e.Slot] = len(out)
		out = append(out, SlotKeywords{Slot: e.Slot, Keywords: words})
	}
	return out
}

func (d *Dataset) Default() domain.MealSlot {
	return d.defaultSlot
}

// CategorySlot looks up a category name, ignoring case and surrounding space.
func (d *Dataset) CategorySlot(name string) (domain.MealSlot, bool) {
	slot, ok := d.categories[domain.NormalizeName(name)]
	return slot, ok
}

func (d *Dataset) KeywordRules() []SlotKeywords {
	return cloneEntries(d.keywords)
}

func (d *Dataset) IngredientRules() []SlotKeywords {
	return cloneEntries(d.ingredients)
}

func (d *Dataset) CategoryCount() int {
	return len(d.categories)
}

func cloneEntries(entries []SlotKeywords) []SlotKeywords {
	out := make([]SlotKeywords, len(entries))
	for i, e := range entries {
		out[i] = SlotKeywords{Slot: e.Slot, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}

func countKeywords(entries []SlotKeywords) int {
	n := 0
	for _, e := range entries {
		n += len(e.Keywords)
	}
	return n
}
