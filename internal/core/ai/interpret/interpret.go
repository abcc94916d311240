// Package interpret turns untrusted free-text model output into typed
// extraction results. Model responses are adversarial by nature: prose
// around the payload, code fences, divergent shapes, or no JSON at all.
// Every path here recovers to an empty result instead of failing.
package interpret

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"
)

const (
	maxVisionSteps = 30
	maxVideoSteps  = 50

	// Confidence assigned when the model omits one: recipe-shaped payloads
	// carry quantities and rate higher than bare detection lists.
	defaultRecipeConfidence    = 0.9
	defaultDetectionConfidence = 0.8
)

// Interpreter decodes vision and video model responses.
type Interpreter struct {
	categorizer *ingredient.Categorizer
}

// NewInterpreter creates an Interpreter using the given categorizer for
// aisle fallback.
func NewInterpreter(categorizer *ingredient.Categorizer) *Interpreter {
	return &Interpreter{categorizer: categorizer}
}

// VisionResult is the outcome of interpreting one vision response.
type VisionResult struct {
	Items []common.DetectedGroceryItem
	Steps []string
}

// ingredientEntry tolerates the shapes models emit for one ingredient.
// Quantity and notes may arrive as strings or numbers.
type ingredientEntry struct {
	Name       json.RawMessage `json:"name"`
	Quantity   json.RawMessage `json:"quantity"`
	Notes      json.RawMessage `json:"notes"`
	Aisle      string          `json:"aisle"`
	Category   string          `json:"category"`
	Confidence *float64        `json:"confidence"`
}

type visionPayload struct {
	Ingredients  []json.RawMessage `json:"ingredients"`
	Steps        []json.RawMessage `json:"steps"`
	Instructions []json.RawMessage `json:"instructions"`
}

// VisionResponse interprets a vision-model response into detected grocery
// items and optional steps. Decode variants are tried in fixed priority:
// an object with an "ingredients" field, then a bare detection array.
// Anything unparseable yields an empty result.
func (i *Interpreter) VisionResponse(raw string) VisionResult {
	empty := VisionResult{Items: []common.DetectedGroceryItem{}, Steps: []string{}}

	payload, ok := common.ExtractFirstJSON(common.StripCodeFences(raw))
	if !ok {
		return empty
	}

	var entries []json.RawMessage
	var steps []string
	defaultConfidence := defaultDetectionConfidence

	var obj visionPayload
	if err := common.ParseJSON(payload, &obj); err == nil && obj.Ingredients != nil {
		entries = obj.Ingredients
		steps = stepStrings(obj.Instructions, obj.Steps, maxVisionSteps)
		defaultConfidence = defaultRecipeConfidence
	} else {
		if err := common.ParseJSON(payload, &entries); err != nil {
			return empty
		}
		steps = []string{}
	}

	seen := make(map[string]bool, len(entries))
	items := []common.DetectedGroceryItem{}
	for _, rawEntry := range entries {
		name, line, entry := i.composeLine(rawEntry)
		if line == "" {
			continue
		}
		// Dedup on the composed display line, not the bare name: "2 cups
		// flour" and "flour (sifted)" are distinct list entries.
		key := strings.ToLower(strings.TrimSpace(line))
		if seen[key] {
			continue
		}
		seen[key] = true

		confidence := defaultConfidence
		if entry != nil && entry.Confidence != nil && *entry.Confidence >= 0 && *entry.Confidence <= 1 {
			confidence = *entry.Confidence
		}
		items = append(items, common.DetectedGroceryItem{
			ID:         common.GenerateUUID(),
			Name:       line,
			Category:   i.aisleFor(entry, name),
			Checked:    false,
			Confidence: &confidence,
		})
	}

	return VisionResult{Items: items, Steps: steps}
}

// videoRecipePayload is the full video-analysis response shape.
type videoRecipePayload struct {
	Title        json.RawMessage   `json:"title"`
	Servings     json.RawMessage   `json:"servings"`
	Ingredients  []json.RawMessage `json:"ingredients"`
	Instructions []json.RawMessage `json:"instructions"`
	Steps        []json.RawMessage `json:"steps"`
}

// VideoRecipeResponse interprets a full video-analysis response into a
// parsed recipe. Unparseable responses return an empty recipe with no
// ingredients and no steps, a recoverable condition rather than an error.
func (i *Interpreter) VideoRecipeResponse(raw string) *common.ParsedRecipe {
	empty := &common.ParsedRecipe{
		Ingredients: []string{},
		Steps:       []string{},
		Servings:    common.DefaultServings,
	}

	payload, ok := common.ExtractJSONObject(common.StripCodeFences(raw))
	if !ok {
		return empty
	}
	var parsed videoRecipePayload
	if err := common.ParseJSON(payload, &parsed); err != nil {
		return empty
	}

	seen := make(map[string]bool, len(parsed.Ingredients))
	ingredients := []string{}
	for _, rawEntry := range parsed.Ingredients {
		_, line, _ := i.composeLine(rawEntry)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		ingredients = append(ingredients, line)
	}

	servings := common.DefaultServings
	if n := firstDigits(asString(parsed.Servings)); n > 0 {
		servings = n
	}

	return &common.ParsedRecipe{
		Title:       strings.TrimSpace(asString(parsed.Title)),
		Ingredients: ingredients,
		Steps:       stepStrings(parsed.Instructions, parsed.Steps, maxVideoSteps),
		Servings:    servings,
	}
}

// MergeDetections merges per-frame detection lists keyed by lowercase
// trimmed name. On duplicates the entry with the higher confidence wins when
// both are defined; an entry with a defined confidence beats one without;
// otherwise first-seen wins.
func MergeDetections(lists ...[]common.DetectedGroceryItem) []common.DetectedGroceryItem {
	index := make(map[string]int)
	merged := []common.DetectedGroceryItem{}
	for _, list := range lists {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item.Name))
			if key == "" {
				continue
			}
			at, exists := index[key]
			if !exists {
				index[key] = len(merged)
				merged = append(merged, item)
				continue
			}
			current := merged[at]
			switch {
			case current.Confidence != nil && item.Confidence != nil:
				if *item.Confidence > *current.Confidence {
					merged[at] = item
				}
			case current.Confidence == nil && item.Confidence != nil:
				merged[at] = item
			}
		}
	}
	return merged
}

// composeLine builds the display line "<quantity> <name> (<notes>)" from an
// entry that is either a bare string or an object with a name. Returns the
// bare name, the composed line, and the decoded entry (nil for bare
// strings); empty line means the entry is dropped.
func (i *Interpreter) composeLine(rawEntry json.RawMessage) (name string, line string, entry *ingredientEntry) {
	var s string
	if err := json.Unmarshal(rawEntry, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s, nil
	}

	var e ingredientEntry
	if err := json.Unmarshal(rawEntry, &e); err != nil {
		return "", "", nil
	}
	name = strings.TrimSpace(asString(e.Name))
	if name == "" {
		return "", "", nil
	}
	quantity := strings.TrimSpace(asString(e.Quantity))
	notes := strings.TrimSpace(asString(e.Notes))

	line = name
	if quantity != "" {
		line = quantity + " " + name
	}
	if notes != "" {
		line += " (" + notes + ")"
	}
	return name, line, &e
}

// aisleFor uses the model-supplied aisle when it names a real aisle, falling
// back to keyword categorization of the bare name.
func (i *Interpreter) aisleFor(entry *ingredientEntry, name string) common.Aisle {
	if entry != nil {
		for _, supplied := range []string{entry.Aisle, entry.Category} {
			if common.ValidAisle(supplied) {
				return common.Aisle(supplied)
			}
		}
	}
	return i.categorizer.Categorize(name)
}

// stepStrings keeps string entries from the preferred field (instructions
// over steps), bounded at limit.
func stepStrings(instructions, steps []json.RawMessage, limit int) []string {
	source := instructions
	if len(source) == 0 {
		source = steps
	}
	out := []string{}
	for _, raw := range source {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

var digitsRun = regexp.MustCompile(`\d+`)

// firstDigits extracts the first run of digits from free text ("serves 4"
// yields 4); 0 when none.
func firstDigits(s string) int {
	m := digitsRun.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// asString coerces a raw JSON scalar to its string form; numbers are
// rendered as written.
func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
