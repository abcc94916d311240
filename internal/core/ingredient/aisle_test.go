package ingredient

import (
	"testing"

	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := NewCategorizer(nil)

	tests := []struct {
		name string
		want common.Aisle
	}{
		{"tomatoes", common.AisleProduce},
		{"2 cloves garlic", common.AisleProduce},
		{"whole milk", common.AisleDairy},
		{"chicken thighs", common.AisleMeat},
		{"olive oil", common.AislePantry},
		{"sourdough bread", common.AisleBakery},
		{"frozen peas", common.AisleFrozen},
		{"mystery item", common.AisleOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Categorize(tt.name), "name %q", tt.name)
	}
}

func TestCategorizeClosure(t *testing.T) {
	c := NewCategorizer(nil)
	names := []string{
		"tomato", "milk", "beef", "rice", "pita", "ice cream", "xyzzy", "",
		"Fresh Basil Leaves", "UNSALTED BUTTER",
	}
	for _, name := range names {
		assert.True(t, common.ValidAisle(string(c.Categorize(name))), "name %q", name)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	c := NewCategorizer(nil)
	// "pepper" appears under produce keywords before the pantry spice sense.
	assert.Equal(t, common.AisleProduce, c.Categorize("black pepper"))
}

func TestGroupByAisle(t *testing.T) {
	c := NewCategorizer(nil)
	groups := c.GroupByAisle([]string{
		"tomatoes", "whole milk", "olive oil", "Tomatoes", "chicken breast",
	})

	assert.Equal(t, []common.GroceryByAisle{
		{Aisle: common.AisleProduce, Items: []string{"tomatoes"}},
		{Aisle: common.AisleDairy, Items: []string{"whole milk"}},
		{Aisle: common.AisleMeat, Items: []string{"chicken breast"}},
		{Aisle: common.AislePantry, Items: []string{"olive oil"}},
	}, groups)
}

func TestGroupByAisleEmpty(t *testing.T) {
	c := NewCategorizer(nil)
	assert.Empty(t, c.GroupByAisle(nil))
	assert.Empty(t, c.GroupByAisle([]string{"", "  "}))
}
