// Package match scores recipes against a user's kitchen inventory.
package match

import (
	"sort"
	"strings"

	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"
)

// Level classifies how cookable a recipe is with the current inventory.
type Level string

const (
	LevelCanMake  Level = "can_make"
	LevelAlmost   Level = "almost"
	LevelNeedMore Level = "need_more"
)

// AlmostThreshold is the score at or above which a recipe counts as
// "almost" cookable. Tunable constant, not derived.
const AlmostThreshold = 0.8

// RecipeMatch is the ephemeral result of matching one recipe; it is computed
// fresh per view and never persisted.
type RecipeMatch struct {
	Recipe             common.Recipe `json:"recipe"`
	Level              Level         `json:"level"`
	MatchedCount       int           `json:"matchedCount"`
	TotalIngredients   int           `json:"totalIngredients"`
	MissingIngredients []string      `json:"missingIngredients"`
	Score              float64       `json:"score"`
}

// Matcher matches recipe ingredient lines against pantry contents using
// normalized and canonical forms.
type Matcher struct {
	normalizer *ingredient.Normalizer
}

// NewMatcher creates a Matcher over the given normalizer.
func NewMatcher(normalizer *ingredient.Normalizer) *Matcher {
	return &Matcher{normalizer: normalizer}
}

type pantryLookup struct {
	normalizedSet map[string]bool
	tokenSets     map[string]map[string]bool
}

func (m *Matcher) buildPantryLookup(items []common.KitchenInventoryItem) *pantryLookup {
	lookup := &pantryLookup{
		normalizedSet: make(map[string]bool, len(items)*2),
		tokenSets:     make(map[string]map[string]bool, len(items)),
	}
	for _, item := range items {
		norm := m.normalizer.Normalize(item.Name)
		if norm == "" {
			continue
		}
		lookup.normalizedSet[norm] = true
		lookup.normalizedSet[m.normalizer.Canonical(norm)] = true
		tokens := make(map[string]bool)
		for _, t := range ingredient.Tokens(norm) {
			tokens[t] = true
		}
		lookup.tokenSets[norm] = tokens
	}
	return lookup
}

// covered reports whether one recipe ingredient line is satisfied by any
// pantry item: exact normalized/canonical equality, substring containment in
// either direction, or a shared token longer than two characters.
//
// The direction-agnostic substring step can false-positive on short names
// (pantry "oil" matches "broiler"); this trades precision for recall and is
// kept as observed behavior.
func (m *Matcher) covered(recipeIngredient string, lookup *pantryLookup) bool {
	norm := m.normalizer.Normalize(recipeIngredient)
	canonical := m.normalizer.Canonical(norm)
	if lookup.normalizedSet[norm] || lookup.normalizedSet[canonical] {
		return true
	}
	for pantryNorm := range lookup.normalizedSet {
		if strings.Contains(norm, pantryNorm) || strings.Contains(pantryNorm, norm) {
			return true
		}
		pantryCanonical := m.normalizer.Canonical(pantryNorm)
		if strings.Contains(norm, pantryCanonical) || strings.Contains(pantryCanonical, norm) {
			return true
		}
	}
	recipeTokens := ingredient.Tokens(norm)
	for _, tokens := range lookup.tokenSets {
		for _, t := range recipeTokens {
			if len(t) > 2 && tokens[t] {
				return true
			}
		}
	}
	return false
}

// Match scores every recipe against the pantry. Recipes with zero
// ingredients classify as need_more with score 0 and an empty missing list.
func (m *Matcher) Match(recipes []common.Recipe, pantryItems []common.KitchenInventoryItem) []RecipeMatch {
	lookup := m.buildPantryLookup(pantryItems)
	results := make([]RecipeMatch, 0, len(recipes))

	for _, recipe := range recipes {
		if len(recipe.Ingredients) == 0 {
			results = append(results, RecipeMatch{
				Recipe:             recipe,
				Level:              LevelNeedMore,
				MissingIngredients: []string{},
			})
			continue
		}

		missing := []string{}
		matched := 0
		for _, ing := range recipe.Ingredients {
			if m.covered(ing, lookup) {
				matched++
			} else {
				missing = append(missing, strings.TrimSpace(ing))
			}
		}

		score := float64(matched) / float64(len(recipe.Ingredients))
		level := LevelNeedMore
		if score >= 1 {
			level = LevelCanMake
		} else if score >= AlmostThreshold {
			level = LevelAlmost
		}

		results = append(results, RecipeMatch{
			Recipe:             recipe,
			Level:              level,
			MatchedCount:       matched,
			TotalIngredients:   len(recipe.Ingredients),
			MissingIngredients: missing,
			Score:              score,
		})
	}

	return results
}

var levelOrder = map[Level]int{
	LevelCanMake:  0,
	LevelAlmost:   1,
	LevelNeedMore: 2,
}

// Sort orders matches can_make first, then almost, then need_more; within a
// level, descending score. The sort is stable and does not mutate its input.
func Sort(matches []RecipeMatch) []RecipeMatch {
	sorted := make([]RecipeMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if levelOrder[sorted[i].Level] != levelOrder[sorted[j].Level] {
			return levelOrder[sorted[i].Level] < levelOrder[sorted[j].Level]
		}
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
