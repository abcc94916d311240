// Package extract turns web pages and media URLs into parsed recipes.
package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"fridgechef/internal/pkg/common"

	"golang.org/x/net/html"
)

const (
	maxTitleLength     = 300
	minListItems       = 2
	maxListItems       = 50
	minItemTextLength  = 3
	maxItemTextLength  = 199
	placeholderYouTube = "YouTube"
)

// FromHTML extracts a recipe from raw page HTML. Pure function, no I/O.
//
// Strategies in priority order: embedded schema.org Recipe data (which
// overrides every other signal), then <title>/og:title, og:image, and for
// non-video pages a first-qualifying-list ingredient heuristic. The returned
// title is never empty.
func FromHTML(rawHTML string, isVideoOrSocial bool) *common.ParsedRecipe {
	doc := scanDocument(rawHTML)

	title := doc.title
	if doc.ogTitle != "" && (title == "- YouTube" || title == placeholderYouTube || len(title) < 3) {
		title = doc.ogTitle
	}
	if title == "" {
		title = common.UntitledRecipe
	}

	for _, block := range doc.jsonLD {
		if recipe := recipeFromJSONLD(block, title, doc.ogImage); recipe != nil {
			return recipe
		}
	}

	ingredients := []string{}
	// On-page lists of video/social pages are comments, chapters, or UI
	// chrome, never trustworthy ingredient lists.
	if !isVideoOrSocial {
		ingredients = firstQualifyingList(doc.lists)
	}

	return &common.ParsedRecipe{
		Title:       title,
		ImageURL:    doc.ogImage,
		Ingredients: ingredients,
		Steps:       []string{},
		Servings:    common.DefaultServings,
	}
}

// OgDescription extracts the og:description meta content for optional AI
// context, capped at 2000 characters.
func OgDescription(rawHTML string) string {
	doc := scanDocument(rawHTML)
	if len(doc.ogDescription) > 2000 {
		return doc.ogDescription[:2000]
	}
	return doc.ogDescription
}

// scannedDocument is everything one DOM walk collects.
type scannedDocument struct {
	title         string
	ogTitle       string
	ogImage       string
	ogDescription string
	jsonLD        []string
	lists         [][]string
}

var entityResidue = regexp.MustCompile(`&[^;\s]+;`)

func cleanText(s string) string {
	return strings.TrimSpace(entityResidue.ReplaceAllString(s, " "))
}

func scanDocument(rawHTML string) *scannedDocument {
	doc := &scannedDocument{}
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return doc
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if doc.title == "" {
					title := cleanText(nodeText(n))
					if len(title) > maxTitleLength {
						title = title[:maxTitleLength]
					}
					doc.title = title
				}
			case "meta":
				property := attr(n, "property")
				content := attr(n, "content")
				switch property {
				case "og:title":
					if doc.ogTitle == "" {
						ogTitle := cleanText(content)
						if len(ogTitle) > maxTitleLength {
							ogTitle = ogTitle[:maxTitleLength]
						}
						doc.ogTitle = ogTitle
					}
				case "og:image":
					if doc.ogImage == "" {
						doc.ogImage = strings.TrimSpace(content)
					}
				case "og:description":
					if doc.ogDescription == "" {
						doc.ogDescription = cleanText(content)
					}
				}
			case "script":
				if strings.EqualFold(attr(n, "type"), "application/ld+json") {
					doc.jsonLD = append(doc.jsonLD, nodeText(n))
				}
				return
			case "ul":
				doc.lists = append(doc.lists, listItems(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func listItems(ul *html.Node) []string {
	var items []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			items = append(items, cleanText(nodeText(n)))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := ul.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return items
}

// firstQualifyingList returns the plausible ingredient texts of the first
// list block sized like an ingredient list.
func firstQualifyingList(lists [][]string) []string {
	for _, items := range lists {
		if len(items) < minListItems || len(items) > maxListItems {
			continue
		}
		kept := []string{}
		for _, text := range items {
			if len(text) >= minItemTextLength && len(text) <= maxItemTextLength {
				kept = append(kept, text)
			}
		}
		if len(kept) > 0 {
			return kept
		}
	}
	return []string{}
}

// jsonLDRecipe is a tolerant decode target for schema.org Recipe blocks;
// several fields appear in divergent shapes across real sites.
type jsonLDRecipe struct {
	Type               string          `json:"@type"`
	Name               string          `json:"name"`
	Image              json.RawMessage `json:"image"`
	RecipeIngredient   json.RawMessage `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage `json:"recipeInstructions"`
	RecipeYield        json.RawMessage `json:"recipeYield"`
}

func recipeFromJSONLD(block, fallbackTitle, fallbackImage string) *common.ParsedRecipe {
	trimmed := strings.TrimSpace(block)
	if trimmed == "" {
		return nil
	}

	var recipe *jsonLDRecipe
	var single jsonLDRecipe
	if err := common.ParseJSON(trimmed, &single); err == nil && single.Type == "Recipe" {
		recipe = &single
	} else {
		var many []jsonLDRecipe
		if err := common.ParseJSON(trimmed, &many); err != nil {
			return nil
		}
		for i := range many {
			if many[i].Type == "Recipe" {
				recipe = &many[i]
				break
			}
		}
	}
	if recipe == nil {
		return nil
	}

	title := strings.TrimSpace(recipe.Name)
	if title == "" {
		title = fallbackTitle
	}

	imageURL := firstImage(recipe.Image)
	if imageURL == "" {
		imageURL = fallbackImage
	}

	return &common.ParsedRecipe{
		Title:       title,
		ImageURL:    imageURL,
		Ingredients: stringOrStrings(recipe.RecipeIngredient),
		Steps:       instructionTexts(recipe.RecipeInstructions),
		Servings:    yieldServings(recipe.RecipeYield),
	}
}

// firstImage accepts an image as a bare URL string or the first element of
// an array.
func firstImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		if err := json.Unmarshal(arr[0], &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// stringOrStrings accepts a single string or an array, keeping string
// entries only.
func stringOrStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return []string{}
	}
	out := []string{}
	for _, item := range arr {
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// instructionTexts accepts instructions as strings or {text} objects,
// dropping empties.
func instructionTexts(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return []string{}
	}
	out := []string{}
	for _, item := range arr {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Text != "" {
			out = append(out, obj.Text)
		}
	}
	return out
}

// yieldServings accepts recipeYield as a number or a numeric-prefixed string
// ("4" or "4 servings"), defaulting when absent or non-positive.
func yieldServings(raw json.RawMessage) int {
	if len(raw) == 0 {
		return common.DefaultServings
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n > 0 {
			return int(n)
		}
		return common.DefaultServings
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if servings := LeadingDigits(s); servings > 0 {
			return servings
		}
	}
	return common.DefaultServings
}

var digitsRun = regexp.MustCompile(`\d+`)

// LeadingDigits extracts the first run of digits from free text ("4
// servings" yields 4); 0 when none.
func LeadingDigits(s string) int {
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
