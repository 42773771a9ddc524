package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/actuallystonmai/daily-menu-service/internal/domain"
	"github.com/actuallystonmai/daily-menu-service/internal/logging"
	"github.com/actuallystonmai/daily-menu-service/internal/metrics"
)

//go:embed rules.yaml
var defaultRules []byte

type rawDataset struct {
	Default     string    `yaml:"default"`
	Categories  yaml.Node `yaml:"categories"`
	Keywords    yaml.Node `yaml:"keywords"`
	Ingredients yaml.Node `yaml:"ingredients"`
}

// Load reads the rule file at path, or the built-in rules when path is empty.
// It never fails hard: on any error it returns Empty() together with the
// error so the caller can log it and keep starting up.
func Load(path string) (*Dataset, error) {
	data := defaultRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Empty(), fmt.Errorf("read rules %s: %w", path, err)
		}
		data = b
	}

	ds, err := Parse(data)
	if err != nil {
		return Empty(), err
	}

	metrics.RulesLoaded.WithLabelValues("category").Set(float64(ds.CategoryCount()))
	metrics.RulesLoaded.WithLabelValues("keyword").Set(float64(countKeywords(ds.keywords)))
	metrics.RulesLoaded.WithLabelValues("ingredient").Set(float64(countKeywords(ds.ingredients)))
	return ds, nil
}

// Parse decodes a YAML rule document. Unknown meal slot names are logged and
// skipped; they never fail the parse.
func Parse(data []byte) (*Dataset, error) {
	logger := logging.With("rules")

	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	defaultSlot := domain.DefaultMealSlot
	if raw.Default != "" {
		if slot, ok := domain.ParseMealSlot(raw.Default); ok {
			defaultSlot = slot
		} else {
			logger.Warn().Str("slot", raw.Default).Msg("unknown default meal slot, using built-in default")
		}
	}

	categories := make(map[string]domain.MealSlot)
	err := eachPair(&raw.Categories, func(key string, value *yaml.Node) error {
		slot, ok := domain.ParseMealSlot(value.Value)
		if !ok {
			logger.Warn().Str("category", key).Str("slot", value.Value).Msg("skipping category rule with unknown meal slot")
			return nil
		}
		categories[key] = slot
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse category rules: %w", err)
	}

	keywords, err := slotLists(&raw.Keywords, "keyword")
	if err != nil {
		return nil, err
	}
	ingredients, err := slotLists(&raw.Ingredients, "ingredient")
	if err != nil {
		return nil, err
	}

	ds := New(defaultSlot, categories, keywords, ingredients)
	logger.Info().
		Str("default", string(ds.Default())).
		Int("categories", ds.CategoryCount()).
		Int("keywords", countKeywords(ds.keywords)).
		Int("ingredients", countKeywords(ds.ingredients)).
		Msg("meal slot rules loaded")
	return ds, nil
}

func slotLists(node *yaml.Node, kind string) ([]SlotKeywords, error) {
	logger := logging.With("rules")

	var out []SlotKeywords
	err := eachPair(node, func(key string, value *yaml.Node) error {
		slot, ok := domain.ParseMealSlot(key)
		if !ok {
			logger.Warn().Str("kind", kind).Str("slot", key).Msg("skipping rules for unknown meal slot")
			return nil
		}
		var words []string
		if err := value.Decode(&words); err != nil {
			return fmt.Errorf("decode %s list for %s: %w", kind, key, err)
		}
		out = append(out, SlotKeywords{Slot: slot, Keywords: words})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s rules: %w", kind, err)
	}
	return out, nil
}

// eachPair walks a mapping node in document order. A missing section is not an error.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
