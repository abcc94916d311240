package match

import (
	"testing"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher() *Matcher {
	return NewMatcher(ingredient.NewNormalizer(nil))
}

func pantry(names ...string) []common.KitchenInventoryItem {
	items := make([]common.KitchenInventoryItem, len(names))
	for i, n := range names {
		items[i] = common.KitchenInventoryItem{ID: common.GenerateUUID(), Name: n}
	}
	return items
}

func recipeWith(title string, ingredients ...string) common.Recipe {
	return common.Recipe{ID: title, Title: title, Ingredients: ingredients}
}

func TestMatchCanMake(t *testing.T) {
	m := newMatcher()
	matches := m.Match(
		[]common.Recipe{recipeWith("omelette", "2 eggs", "1 tbsp butter")},
		pantry("eggs", "butter"),
	)
	require.Len(t, matches, 1)
	assert.Equal(t, LevelCanMake, matches[0].Level)
	assert.Equal(t, 2, matches[0].MatchedCount)
	assert.Equal(t, 1.0, matches[0].Score)
	assert.Empty(t, matches[0].MissingIngredients)
}

func TestMatchCanonicalEquality(t *testing.T) {
	m := newMatcher()
	// "green onion" and "scallion" share a canonical form.
	matches := m.Match(
		[]common.Recipe{recipeWith("garnish", "2 scallions, chopped")},
		pantry("green onion"),
	)
	require.Len(t, matches, 1)
	assert.Equal(t, LevelCanMake, matches[0].Level)
}

func TestMatchTokenOverlap(t *testing.T) {
	m := newMatcher()
	matches := m.Match(
		[]common.Recipe{recipeWith("roast", "1 lb chicken thighs, skin on")},
		pantry("chicken breast"),
	)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].MatchedCount)
}

func TestMatchMissingIngredients(t *testing.T) {
	m := newMatcher()
	matches := m.Match(
		[]common.Recipe{recipeWith("cake", "2 cups flour", "1 cup sugar", "3 eggs", "saffron threads")},
		pantry("flour", "sugar", "eggs"),
	)
	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, LevelNeedMore, got.Level)
	assert.Equal(t, 3, got.MatchedCount)
	assert.Equal(t, 4, got.TotalIngredients)
	assert.Equal(t, []string{"saffron threads"}, got.MissingIngredients)
	assert.InDelta(t, 0.75, got.Score, 1e-9)
}

func TestMatchAlmostThreshold(t *testing.T) {
	m := newMatcher()
	matches := m.Match(
		[]common.Recipe{recipeWith("stew",
			"1 lb beef", "2 carrots", "1 onion", "2 potatoes", "bay leaf")},
		pantry("beef", "carrots", "onion", "potatoes"),
	)
	require.Len(t, matches, 1)
	assert.Equal(t, LevelAlmost, matches[0].Level)
	assert.InDelta(t, 0.8, matches[0].Score, 1e-9)
}

func TestMatchZeroIngredients(t *testing.T) {
	m := newMatcher()
	matches := m.Match([]common.Recipe{recipeWith("empty")}, pantry("eggs"))
	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, LevelNeedMore, got.Level)
	assert.Zero(t, got.Score)
	assert.Zero(t, got.TotalIngredients)
	assert.NotNil(t, got.MissingIngredients)
	assert.Empty(t, got.MissingIngredients)
}

func TestMatchTotality(t *testing.T) {
	m := newMatcher()
	recipes := []common.Recipe{
		recipeWith("a", "2 eggs", "milk", "unicorn tears"),
		recipeWith("b", "1 cup rice"),
		recipeWith("c", "bread", "butter", "jam", "honey"),
	}
	for _, got := range m.Match(recipes, pantry("eggs", "milk", "butter")) {
		assert.GreaterOrEqual(t, got.Score, 0.0)
		assert.LessOrEqual(t, got.Score, 1.0)
		assert.Equal(t, got.TotalIngredients, got.MatchedCount+len(got.MissingIngredients))
	}
}

func TestMatchMonotonicity(t *testing.T) {
	m := newMatcher()
	recipe := recipeWith("cake", "2 cups flour", "1 cup sugar", "saffron threads")

	before := m.Match([]common.Recipe{recipe}, pantry("flour", "sugar"))
	require.Len(t, before, 1)
	require.Contains(t, before[0].MissingIngredients, "saffron threads")

	// Adding a pantry item matching the missing ingredient never lowers the
	// score.
	after := m.Match([]common.Recipe{recipe}, pantry("flour", "sugar", "saffron threads"))
	require.Len(t, after, 1)
	assert.GreaterOrEqual(t, after[0].Score, before[0].Score)
	assert.Equal(t, LevelCanMake, after[0].Level)
}

func TestSortOrdersByLevelThenScore(t *testing.T) {
	matches := []RecipeMatch{
		{Recipe: common.Recipe{ID: "low"}, Level: LevelNeedMore, Score: 0.2},
		{Recipe: common.Recipe{ID: "almost-high"}, Level: LevelAlmost, Score: 0.9},
		{Recipe: common.Recipe{ID: "full"}, Level: LevelCanMake, Score: 1},
		{Recipe: common.Recipe{ID: "almost-low"}, Level: LevelAlmost, Score: 0.8},
	}
	sorted := Sort(matches)

	ids := make([]string, len(sorted))
	for i, s := range sorted {
		ids[i] = s.Recipe.ID
	}
	assert.Equal(t, []string{"full", "almost-high", "almost-low", "low"}, ids)
	// Input order is untouched.
	assert.Equal(t, "low", matches[0].Recipe.ID)
}
