package common

// Aisle is a supermarket section label. Every grocery item maps to exactly
// one aisle; anything unrecognized coerces to AisleOther.
type Aisle string

const (
	AisleProduce Aisle = "Produce"
	AisleDairy   Aisle = "Dairy"
	AisleMeat    Aisle = "Meat"
	AislePantry  Aisle = "Pantry"
	AisleBakery  Aisle = "Bakery"
	AisleFrozen  Aisle = "Frozen"
	AisleOther   Aisle = "Other"
)

// AisleOrder is the fixed display order for aisle-grouped lists.
var AisleOrder = []Aisle{
	AisleProduce,
	AisleDairy,
	AisleMeat,
	AislePantry,
	AisleBakery,
	AisleFrozen,
	AisleOther,
}

// ValidAisle reports whether s is one of the fixed aisle names.
func ValidAisle(s string) bool {
	switch Aisle(s) {
	case AisleProduce, AisleDairy, AisleMeat, AislePantry, AisleBakery, AisleFrozen, AisleOther:
		return true
	}
	return false
}

const (
	// UntitledRecipe is the title fallback; extraction output never carries
	// an empty title.
	UntitledRecipe = "Untitled Recipe"
	// DefaultServings applies when a page or model response has no usable
	// serving count.
	DefaultServings = 4
)

// GroceryByAisle groups ingredient display lines under one aisle.
type GroceryByAisle struct {
	Aisle Aisle    `json:"aisle"`
	Items []string `json:"items"`
}

// ParsedRecipe is the result of one extraction call. It is a transient value
// object; callers copy what they persist.
type ParsedRecipe struct {
	Title          string           `json:"title"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	Ingredients    []string         `json:"ingredients"`
	Steps          []string         `json:"steps"`
	Servings       int              `json:"servings,omitempty"`
	GroceryByAisle []GroceryByAisle `json:"groceryByAisle"`
}

// DetectedGroceryItem is one vision-detected grocery item. Confidence is only
// used for merge tie-breaking across frames and is never persisted.
type DetectedGroceryItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Aisle    `json:"category"`
	Checked    bool     `json:"checked"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// KitchenInventoryItem is one item of a user's fridge/pantry stock. No
// category is stored; items are categorized on demand when matching.
type KitchenInventoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroceryList is a saved aisle-grouped shopping list, usually built from a
// stored recipe's ingredients.
type GroceryList struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId,omitempty"`
	RecipeID string           `json:"recipeId,omitempty"`
	Title    string           `json:"title"`
	Groups   []GroceryByAisle `json:"groups"`
}

// Recipe is a stored recipe row as the matching core consumes it.
type Recipe struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Servings    int      `json:"servings,omitempty"`
}
