package interpret

import (
	"testing"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterpreter() *Interpreter {
	return NewInterpreter(ingredient.NewCategorizer(nil))
}

func conf(v float64) *float64 { return &v }

func TestVisionResponseObjectShape(t *testing.T) {
	raw := "```json\n" + `{
		"ingredients": [
			{"name": "flour", "quantity": "2 cups", "confidence": 0.95},
			{"name": "milk", "aisle": "Dairy"},
			{"name": "eggs", "notes": "large"}
		],
		"instructions": ["Mix dry ingredients.", "Add milk."]
	}` + "\n```"

	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 3)

	assert.Equal(t, "2 cups flour", got.Items[0].Name)
	assert.Equal(t, 0.95, *got.Items[0].Confidence)
	assert.Equal(t, common.AislePantry, got.Items[0].Category)

	assert.Equal(t, "milk", got.Items[1].Name)
	assert.Equal(t, common.AisleDairy, got.Items[1].Category)
	assert.Equal(t, 0.9, *got.Items[1].Confidence)

	assert.Equal(t, "eggs (large)", got.Items[2].Name)

	assert.Equal(t, []string{"Mix dry ingredients.", "Add milk."}, got.Steps)
}

func TestVisionResponseBareArrayShape(t *testing.T) {
	raw := `[{"name": "cheddar cheese", "confidence": 0.7}, {"name": "apples"}]`

	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 0.7, *got.Items[0].Confidence)
	assert.Equal(t, common.AisleDairy, got.Items[0].Category)
	assert.Equal(t, 0.8, *got.Items[1].Confidence)
	assert.Empty(t, got.Steps)
}

func TestVisionResponseSurroundingProse(t *testing.T) {
	raw := `Here is what I found in the image:
{"ingredients": ["2 carrots", "1 onion"]}
Let me know if you need more detail.`

	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "2 carrots", got.Items[0].Name)
}

func TestVisionResponseDedupesComposedLines(t *testing.T) {
	raw := `{"ingredients": [
		{"name": "Flour", "quantity": "2 cups"},
		{"name": "flour", "quantity": "2 CUPS"},
		{"name": "flour"}
	]}`

	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "2 cups Flour", got.Items[0].Name)
	assert.Equal(t, "flour", got.Items[1].Name)
}

func TestVisionResponseUnparseable(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not identify any ingredients in this image.",
		`{"ingredients": [`,
		"null",
	} {
		got := newInterpreter().VisionResponse(raw)
		assert.NotNil(t, got.Items, raw)
		assert.Empty(t, got.Items, raw)
		assert.Empty(t, got.Steps, raw)
	}
}

func TestVisionResponseDropsNamelessEntries(t *testing.T) {
	raw := `{"ingredients": [{"quantity": "2 cups"}, {"name": "  "}, {"name": "salt"}]}`
	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "salt", got.Items[0].Name)
}

func TestVisionResponseInvalidAisleFallsBack(t *testing.T) {
	raw := `{"ingredients": [{"name": "chicken breast", "aisle": "Poultry"}]}`
	got := newInterpreter().VisionResponse(raw)
	require.Len(t, got.Items, 1)
	assert.Equal(t, common.AisleMeat, got.Items[0].Category)
}

func TestVideoRecipeResponse(t *testing.T) {
	raw := "```json\n" + `{
		"title": "Weeknight Fried Rice",
		"servings": "serves 2",
		"ingredients": [
			{"name": "rice", "quantity": "2 cups", "notes": "day old"},
			"3 scallions"
		],
		"instructions": ["Heat the wok.", "Add rice."]
	}` + "\n```"

	got := newInterpreter().VideoRecipeResponse(raw)
	assert.Equal(t, "Weeknight Fried Rice", got.Title)
	assert.Equal(t, 2, got.Servings)
	assert.Equal(t, []string{"2 cups rice (day old)", "3 scallions"}, got.Ingredients)
	assert.Equal(t, []string{"Heat the wok.", "Add rice."}, got.Steps)
}

func TestVideoRecipeResponseNumericServings(t *testing.T) {
	got := newInterpreter().VideoRecipeResponse(`{"title": "Soup", "servings": 6, "ingredients": []}`)
	assert.Equal(t, 6, got.Servings)
}

func TestVideoRecipeResponseUnparseable(t *testing.T) {
	got := newInterpreter().VideoRecipeResponse("The video does not show a recipe.")
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Ingredients)
	assert.Empty(t, got.Steps)
	assert.Equal(t, common.DefaultServings, got.Servings)
}

func TestVideoRecipeResponseUnterminatedObject(t *testing.T) {
	// A truncated response still fails the JSON decode and recovers empty.
	got := newInterpreter().VideoRecipeResponse(`{"title": "Cut off", "ingredients": ["rice"`)
	assert.Empty(t, got.Ingredients)
}

func TestMergeDetectionsHigherConfidenceWins(t *testing.T) {
	merged := MergeDetections(
		[]common.DetectedGroceryItem{{ID: "a", Name: "Milk", Confidence: conf(0.6)}},
		[]common.DetectedGroceryItem{{ID: "b", Name: "milk ", Confidence: conf(0.9)}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].ID)
}

func TestMergeDetectionsDefinedBeatsUndefined(t *testing.T) {
	merged := MergeDetections(
		[]common.DetectedGroceryItem{{ID: "a", Name: "eggs"}},
		[]common.DetectedGroceryItem{{ID: "b", Name: "Eggs", Confidence: conf(0.5)}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].ID)
}

func TestMergeDetectionsFirstSeenWinsOtherwise(t *testing.T) {
	merged := MergeDetections(
		[]common.DetectedGroceryItem{{ID: "a", Name: "butter", Confidence: conf(0.8)}},
		[]common.DetectedGroceryItem{{ID: "b", Name: "butter", Confidence: conf(0.8)}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].ID)
}

func TestMergeDetectionsPreservesFirstSeenOrder(t *testing.T) {
	merged := MergeDetections(
		[]common.DetectedGroceryItem{{Name: "milk"}, {Name: "eggs"}},
		[]common.DetectedGroceryItem{{Name: "bread"}, {Name: "milk", Confidence: conf(0.9)}},
	)
	require.Len(t, merged, 3)
	assert.Equal(t, "milk", merged[0].Name)
	assert.Equal(t, "eggs", merged[1].Name)
	assert.Equal(t, "bread", merged[2].Name)
}
