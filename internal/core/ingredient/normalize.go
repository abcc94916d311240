package ingredient

import (
	"regexp"
	"strings"
)

var (
	// Leading quantity: "1 1/2", "1/2", "2", "2.5" plus trailing whitespace.
	leadingFraction = regexp.MustCompile(`^(\d+\s+)?\d+\s*/\s*\d+\s*`)
	leadingNumber   = regexp.MustCompile(`^\d+(?:\.\d+)?\s*`)

	unitWords     = regexp.MustCompile(`(?i)\s*\b(cups?|tbsp|tsp|oz|lb|g|ml|cloves?|cans?|pinch|slices?|pieces?|stalks?)\b\s*(?:of\s+)?`)
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalizer reduces free-text ingredient lines to a comparable form and
// folds synonyms to a canonical representative.
type Normalizer struct {
	synonyms map[string]string
}

// NewNormalizer builds a Normalizer over the given synonym table. The table
// maps a normalized alias to its canonical form; nil uses DefaultSynonyms.
func NewNormalizer(synonyms map[string]string) *Normalizer {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &Normalizer{synonyms: synonyms}
}

// Normalize lowercases and trims text, strips a single leading quantity,
// known unit words with an optional "of", and parenthetical asides, then
// collapses internal whitespace. Normalize is idempotent.
func (n *Normalizer) Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if m := leadingFraction.FindString(s); m != "" {
		s = s[len(m):]
	} else if m := leadingNumber.FindString(s); m != "" {
		s = s[len(m):]
	}
	s = unitWords.ReplaceAllString(s, " ")
	s = parenthetical.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Canonical maps a normalized string through the synonym table. Unknown
// strings pass through unchanged.
func (n *Normalizer) Canonical(normalized string) string {
	if canonical, ok := n.synonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// Tokens splits a normalized string into matching tokens: whitespace-split
// words longer than one character that are not purely numeric.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 1 || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// DefaultSynonyms returns the built-in alias table (normalized alias to
// canonical form). Plural/singular and brand variants fold to a base form.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"green onion":      "scallion",
		"green onions":     "scallion",
		"scallion":         "scallion",
		"scallions":        "scallion",
		"spring onion":     "scallion",
		"spring onions":    "scallion",
		"cilantro":         "coriander",
		"coriander leaves": "coriander",
		"coriander":        "coriander",
		"bell pepper":      "pepper",
		"bell peppers":     "pepper",
		"chili pepper":     "pepper",
		"chilli pepper":    "pepper",
		"black pepper":     "pepper",
		"ground pepper":    "pepper",
		"pepper":           "pepper",
		"fresh basil":      "basil",
		"basil":            "basil",
		"tomato paste":     "tomato",
		"tomato sauce":     "tomato",
		"tomatoes":         "tomato",
		"tomato":           "tomato",
		"olive oil":        "oil",
		"vegetable oil":    "oil",
		"cooking oil":      "oil",
		"oil":              "oil",
		"all-purpose flour": "flour",
		"plain flour":      "flour",
		"flour":            "flour",
		"minced garlic":    "garlic",
		"garlic clove":     "garlic",
		"garlic cloves":    "garlic",
		"garlic":           "garlic",
		"yellow onion":     "onion",
		"red onion":        "onion",
		"white onion":      "onion",
		"onions":           "onion",
		"onion":            "onion",
		"soy sauce":        "soy",
		"soy":              "soy",
		"eggs":             "egg",
		"egg":              "egg",
		"butter":           "butter",
		"unsalted butter":  "butter",
		"salted butter":    "butter",
		"milk":             "milk",
		"whole milk":       "milk",
		"cheese":           "cheese",
		"salt":             "salt",
		"table salt":       "salt",
		"sugar":            "sugar",
		"brown sugar":      "sugar",
		"white sugar":      "sugar",
		"granulated sugar": "sugar",
	}
}
