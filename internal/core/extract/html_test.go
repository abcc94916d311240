package extract

import (
	"strings"
	"testing"

	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(head, body string) string {
	return "<html><head>" + head + "</head><body>" + body + "</body></html>"
}

func TestFromHTMLJSONLDTakesPriority(t *testing.T) {
	raw := page(
		`<title>Some Food Blog</title>
		<script type="application/ld+json">
		{
			"@type": "Recipe",
			"name": "Classic Pancakes",
			"image": ["https://example.com/pancakes.jpg"],
			"recipeIngredient": ["2 cups flour", "1 cup milk", "2 eggs"],
			"recipeInstructions": [
				{"text": "Whisk everything."},
				"Cook on a hot griddle."
			],
			"recipeYield": "4 servings"
		}
		</script>`,
		`<ul><li>Unrelated nav item one</li><li>Unrelated nav item two</li></ul>`,
	)

	got := FromHTML(raw, false)
	assert.Equal(t, "Classic Pancakes", got.Title)
	assert.Equal(t, "https://example.com/pancakes.jpg", got.ImageURL)
	assert.Equal(t, []string{"2 cups flour", "1 cup milk", "2 eggs"}, got.Ingredients)
	assert.Equal(t, []string{"Whisk everything.", "Cook on a hot griddle."}, got.Steps)
	assert.Equal(t, 4, got.Servings)
}

func TestFromHTMLJSONLDInsideArray(t *testing.T) {
	raw := page(
		`<script type="application/ld+json">
		[{"@type": "WebSite", "name": "Blog"},
		 {"@type": "Recipe", "name": "Stew", "recipeIngredient": ["1 lb beef"], "recipeYield": 6}]
		</script>`,
		"",
	)

	got := FromHTML(raw, false)
	assert.Equal(t, "Stew", got.Title)
	assert.Equal(t, []string{"1 lb beef"}, got.Ingredients)
	assert.Equal(t, 6, got.Servings)
}

func TestFromHTMLMalformedJSONLDFallsThrough(t *testing.T) {
	raw := page(
		`<title>Garden Salad Recipe</title>
		<script type="application/ld+json">{"@type": "Recipe", "name": </script>`,
		`<ul><li>1 head lettuce</li><li>2 tomatoes</li><li>olive oil</li></ul>`,
	)

	got := FromHTML(raw, false)
	assert.Equal(t, "Garden Salad Recipe", got.Title)
	assert.Equal(t, []string{"1 head lettuce", "2 tomatoes", "olive oil"}, got.Ingredients)
}

func TestFromHTMLTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		head string
		want string
	}{
		{
			"plain title wins",
			`<title>Best Ramen Ever</title><meta property="og:title" content="OG Ramen">`,
			"Best Ramen Ever",
		},
		{
			"youtube placeholder falls back to og:title",
			`<title>- YouTube</title><meta property="og:title" content="Real Video Title">`,
			"Real Video Title",
		},
		{
			"short title falls back to og:title",
			`<title>ab</title><meta property="og:title" content="Full Title">`,
			"Full Title",
		},
		{
			"nothing usable falls back to placeholder",
			``,
			common.UntitledRecipe,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHTML(page(tt.head, ""), false)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestFromHTMLTitleCapped(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := FromHTML(page("<title>"+long+"</title>", ""), false)
	assert.Len(t, got.Title, 300)
}

func TestFromHTMLVideoPageSkipsLists(t *testing.T) {
	body := `<ul><li>First comment text</li><li>Second comment text</li><li>Third comment text</li></ul>`
	raw := page(`<title>Cooking Video</title>`, body)

	asVideo := FromHTML(raw, true)
	assert.Empty(t, asVideo.Ingredients)

	asPage := FromHTML(raw, false)
	assert.Len(t, asPage.Ingredients, 3)
}

func TestFromHTMLListHeuristicBounds(t *testing.T) {
	// A single-item list never qualifies.
	one := page("", `<ul><li>only one entry</li></ul>`)
	assert.Empty(t, FromHTML(one, false).Ingredients)

	// Items outside the 3..199 length band are dropped, the rest kept.
	mixed := page("", `<ul><li>ab</li><li>2 cups flour</li><li>`+strings.Repeat("y", 250)+`</li></ul>`)
	assert.Equal(t, []string{"2 cups flour"}, FromHTML(mixed, false).Ingredients)
}

func TestFromHTMLFirstQualifyingListWins(t *testing.T) {
	body := `
	<ul><li>Home</li><li>About</li><li>Recipes</li></ul>
	<ul><li>3 cloves garlic</li><li>1 lb spaghetti</li></ul>`
	got := FromHTML(page("", body), false)
	// The nav list qualifies by size, so it wins; the heuristic is
	// first-match, not best-match.
	assert.Equal(t, []string{"Home", "About", "Recipes"}, got.Ingredients)
}

func TestFromHTMLOgImage(t *testing.T) {
	raw := page(`<meta property="og:image" content="https://example.com/thumb.jpg">`, "")
	assert.Equal(t, "https://example.com/thumb.jpg", FromHTML(raw, false).ImageURL)
}

func TestOgDescriptionCapped(t *testing.T) {
	long := strings.Repeat("d", 2500)
	raw := page(`<meta property="og:description" content="`+long+`">`, "")
	assert.Len(t, OgDescription(raw), 2000)
}

func TestYieldServingsVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"@type":"Recipe","name":"A","recipeYield":"8 servings"}`, 8},
		{`{"@type":"Recipe","name":"A","recipeYield":"about twelve"}`, common.DefaultServings},
		{`{"@type":"Recipe","name":"A","recipeYield":0}`, common.DefaultServings},
		{`{"@type":"Recipe","name":"A"}`, common.DefaultServings},
	}
	for _, tt := range tests {
		raw := page(`<script type="application/ld+json">`+tt.raw+`</script>`, "")
		got := FromHTML(raw, false)
		assert.Equal(t, tt.want, got.Servings, tt.raw)
	}
}

func TestFromHTMLUnparseableInput(t *testing.T) {
	got := FromHTML("not html at all %%%", false)
	require.NotNil(t, got)
	assert.Equal(t, common.UntitledRecipe, got.Title)
	assert.Empty(t, got.Ingredients)
}
