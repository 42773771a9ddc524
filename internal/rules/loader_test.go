package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	ds, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Default() != domain.MealDinner {
		t.Errorf("expected DINNER default, got %s", ds.Default())
	}
	if slot, ok := ds.CategorySlot("  soup "); !ok || slot != domain.MealLunch {
		t.Errorf("expected Soup -> LUNCH, got %s %v", slot, ok)
	}
	kw := ds.KeywordRules()
	if len(kw) == 0 || kw[0].Slot != domain.MealBreakfast {
		t.Errorf("expected BREAKFAST keyword rules first, got %+v", kw)
	}
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	doc := []byte(`
default: lunch
keywords:
  SNACK: [Chips, " dip "]
  BREAKFAST: [toast]
`)
	ds, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	kw := ds.KeywordRules()
	if len(kw) != 2 {
		t.Fatalf("expected 2 slot entries, got %d", len(kw))
	}
	if kw[0].Slot != domain.MealSnack || kw[1].Slot != domain.MealBreakfast {
		t.Errorf("order not preserved: %+v", kw)
	}
	if len(kw[0].Keywords) != 2 || kw[0].Keywords[0] != "chips" || kw[0].Keywords[1] != "dip" {
		t.Errorf("expected normalized keywords, got %v", kw[0].Keywords)
	}
	if ds.Default() != domain.MealLunch {
		t.Errorf("expected LUNCH default, got %s", ds.Default())
	}
}

func TestParseSkipsUnknownSlots(t *testing.T) {
	doc := []byte(`
default: SUPPER
categories:
  Soup: LUNCH
  Tapas: ELEVENSES
ingredients:
  MIDNIGHT: [cheese]
  DESSERT: [cocoa powder]
`)
	ds, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.Default() != domain.DefaultMealSlot {
		t.Errorf("expected built-in default, got %s", ds.Default())
	}
	if _, ok := ds.CategorySlot("tapas"); ok {
		t.Error("category with unknown slot should be skipped")
	}
	if ds.CategoryCount() != 1 {
		t.Errorf("expected 1 category rule, got %d", ds.CategoryCount())
	}
	ing := ds.IngredientRules()
	if len(ing) != 1 || ing[0].Slot != domain.MealDessert {
		t.Errorf("expected only DESSERT ingredient rules, got %+v", ing)
	}
}

func TestLoadFailureFallsBackToEmpty(t *testing.T) {
	ds, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if ds == nil || ds.Default() != domain.DefaultMealSlot || len(ds.KeywordRules()) != 0 {
		t.Errorf("expected empty dataset, got %+v", ds)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("keywords: [not, a, map]"), 0o600); err != nil {
		t.Fatal(err)
	}
	ds, err = Load(bad)
	if err == nil {
		t.Error("expected an error for a malformed file")
	}
	if ds.CategoryCount() != 0 {
		t.Error("expected empty dataset after parse failure")
	}
}

func TestNewMergesRepeatedSlots(t *testing.T) {
	ds := New(domain.MealLunch, nil, []SlotKeywords{
		{Slot: domain.MealSnack, Keywords: []string{"Chips"}},
		{Slot: domain.MealBreakfast, Keywords: []string{"toast"}},
		{Slot: domain.MealSnack, Keywords: []string{"dip", "  "}},
	}, nil)
	kw := ds.KeywordRules()
	if len(kw) != 2 || kw[0].Slot != domain.MealSnack {
		t.Fatalf("expected SNACK then BREAKFAST, got %+v", kw)
	}
	if len(kw[0].Keywords) != 2 || kw[0].Keywords[1] != "dip" {
		t.Errorf("expected merged keywords [chips dip], got %v", kw[0].Keywords)
	}
}

func TestRulesAreCopiedOut(t *testing.T) {
	ds := New(domain.MealLunch, nil, []SlotKeywords{{Slot: domain.MealSnack, Keywords: []string{"dip"}}}, nil)
	kw := ds.KeywordRules()
	kw[0].Keywords[0] = "mutated"
	if ds.KeywordRules()[0].Keywords[0] != "dip" {
		t.Error("dataset must not be mutable through returned rules")
	}
}
