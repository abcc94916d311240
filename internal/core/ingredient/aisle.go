package ingredient

import (
	"strings"

	"fridgechef/internal/pkg/common"
)

// Categorizer assigns ingredient names to supermarket aisles by substring
// keyword match. First matching aisle in the fixed order wins; no match
// falls through to Other.
type Categorizer struct {
	keywords map[common.Aisle][]string
}

// NewCategorizer builds a Categorizer over the given keyword table; nil uses
// DefaultAisleKeywords.
func NewCategorizer(keywords map[common.Aisle][]string) *Categorizer {
	if keywords == nil {
		keywords = DefaultAisleKeywords()
	}
	return &Categorizer{keywords: keywords}
}

// Categorize maps an ingredient name to exactly one aisle.
func (c *Categorizer) Categorize(name string) common.Aisle {
	lower := strings.ToLower(name)
	for _, aisle := range common.AisleOrder {
		if aisle == common.AisleOther {
			continue
		}
		for _, kw := range c.keywords[aisle] {
			if strings.Contains(lower, kw) {
				return aisle
			}
		}
	}
	return common.AisleOther
}

// DefaultAisleKeywords returns the built-in keyword-to-aisle table.
func DefaultAisleKeywords() map[common.Aisle][]string {
	return map[common.Aisle][]string{
		common.AisleProduce: {
			"onion", "garlic", "tomato", "lettuce", "carrot", "celery",
			"potato", "lemon", "lime", "apple", "banana", "avocado",
			"pepper", "broccoli", "spinach", "kale", "herb", "basil",
			"parsley", "cilantro", "ginger", "cucumber", "zucchini",
			"mushroom", "corn", "pea", "fruit", "vegetable", "scallion",
			"shallot",
		},
		common.AisleDairy: {
			"milk", "cream", "butter", "cheese", "yogurt", "egg",
		},
		common.AisleMeat: {
			"chicken", "beef", "pork", "bacon", "sausage", "turkey",
			"lamb", "fish", "salmon", "shrimp", "meat",
		},
		common.AislePantry: {
			"oil", "vinegar", "salt", "sugar", "flour", "rice", "pasta",
			"noodle", "sauce", "soy", "broth", "stock", "canned", "beans",
			"lentil", "spice", "paprika", "cumin", "oregano", "nut",
			"honey", "maple", "mustard", "ketchup", "breadcrumb", "baking",
			"vanilla", "chocolate", "coconut", "almond", "peanut",
		},
		common.AisleBakery: {
			"bread", "tortilla", "wrap", "pita",
		},
		common.AisleFrozen: {
			"frozen", "ice",
		},
	}
}

// GroupByAisle builds an aisle-ordered grocery list from display lines,
// deduplicating case-insensitively. Aisles with no items are omitted.
func (c *Categorizer) GroupByAisle(items []string) []common.GroceryByAisle {
	byAisle := make(map[common.Aisle][]string, len(common.AisleOrder))
	seen := make(map[string]bool, len(items))
	for _, name := range items {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		aisle := c.Categorize(name)
		byAisle[aisle] = append(byAisle[aisle], name)
	}
	groups := make([]common.GroceryByAisle, 0, len(byAisle))
	for _, aisle := range common.AisleOrder {
		if len(byAisle[aisle]) == 0 {
			continue
		}
		groups = append(groups, common.GroceryByAisle{Aisle: aisle, Items: byAisle[aisle]})
	}
	return groups
}
