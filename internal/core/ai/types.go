// Package ai holds the model prompts and shared response type for the
// Gemini-backed analysis services.
package ai

// Response is one model answer, possibly served from cache.
type Response struct {
	Content  string `json:"content"`
	CacheHit bool   `json:"cache_hit,omitempty"`
}

// PreviewImagePrompt asks for aisle-labeled ingredients from a recipe or
// video preview image, with optional page text as context.
const PreviewImagePrompt = `You are analyzing a preview image (and optional text) from a recipe or cooking video (YouTube, TikTok, Instagram, or similar).

Tasks:
1. List every ingredient you can identify from the image or implied by the recipe/video. Use short grocery-style labels (e.g. "tomatoes", "olive oil", "fresh basil").
2. For each ingredient, assign exactly one supermarket aisle. Use ONLY one of these exact names: Produce, Dairy, Meat, Pantry, Bakery, Frozen, Other.

Respond with ONLY a valid JSON object, no markdown or explanation. Format:
{
  "ingredients": [
    { "name": "ingredient name", "aisle": "Produce" },
    { "name": "another ingredient", "aisle": "Pantry" }
  ],
  "steps": ["optional step 1", "optional step 2"]
}
If you cannot determine steps, omit "steps" or use an empty array. Every ingredient must have "name" and "aisle".`

// VideoPrompt asks for a full recipe from watching an entire cooking video.
const VideoPrompt = `CRITICAL INSTRUCTIONS - READ CAREFULLY:

1. WATCH THE ENTIRE VIDEO FROM START TO FINISH
   - DO NOT skip any parts
   - Watch every single frame carefully
   - Ingredients may appear at ANY point in the video

2. IDENTIFY EVERY INGREDIENT
   - Look for ingredients being shown, added, or mentioned
   - Note EXACT brand names if visible on packaging
   - Include garnishes, toppings, and optional ingredients
   - Don't miss any ingredient, even if shown briefly

3. EXTRACT EXACT QUANTITIES AND MEASUREMENTS
   - Look for measuring cups, spoons, scales showing numbers
   - Read any text overlays showing measurements
   - If you see "1 cup", "2 tablespoons", "500g" - record it EXACTLY
   - If quantity is not clearly shown, estimate based on visual size:
     * Small pinch, medium handful, large bowl, etc.
   - NEVER say "to taste" unless the chef specifically says that
   - Format: "2 cups", "1 tablespoon", "500 grams", "1/2 teaspoon"

4. EXTRACT PORTION/SERVING SIZE
   - Count how many plates/bowls are being filled
   - Look for chef mentioning "serves 4" or "makes 12 cookies"
   - Estimate based on final dish size if not mentioned

5. RECORD EVERY COOKING STEP IN ORDER
   - Watch what the chef DOES, not just what they say
   - Include techniques: "whisk", "fold", "saute", "simmer"
   - Include all timings: "cook for 5 minutes", "bake until golden"
   - Include temperatures: "350F", "medium-high heat"

6. IMPORTANT - ONLY USE VISUAL INFORMATION
   - DO NOT use video title, description, or captions
   - ONLY extract what you SEE and HEAR in the video itself
   - If ingredients are blocked or unclear, mark as "amount not visible"

Return ONLY valid JSON (no markdown, no code blocks, no extra text):

{
  "title": "Descriptive recipe name based on what's being made",
  "servings": "number of servings or portions (e.g., '4 servings', '12 cookies')",
  "cookingTime": "total time from start to finish (e.g., '30 minutes', '1 hour 15 minutes')",
  "prepTime": "preparation time if mentioned separately",
  "temperature": "oven/cooking temperature if shown (e.g., '350F (175C)', 'medium heat')",
  "ingredients": [
    {
      "name": "ingredient name (be specific: 'all-purpose flour' not just 'flour')",
      "quantity": "EXACT amount with unit (e.g., '2 cups', '1 tablespoon', '500g')",
      "notes": "any special notes (e.g., 'softened', 'room temperature', 'divided')"
    }
  ],
  "instructions": [
    "Detailed step 1 with timing and technique",
    "Detailed step 2 with timing and technique"
  ],
  "notes": "Any tips, tricks, or important observations from the video",
  "equipment": ["list of equipment used: 'mixing bowl', 'whisk', 'baking sheet', etc."]
}

NOW ANALYZE THE VIDEO:`

// FrameDetectionPrompt asks for ingredients with quantities from a single
// cooking frame or fridge photo.
const FrameDetectionPrompt = `CRITICAL INSTRUCTIONS - READ CAREFULLY:

1. WATCH THE ENTIRE VIDEO FROM START TO FINISH (or analyze every part of the image)
   - DO NOT skip any parts
   - Ingredients may appear at ANY point

2. IDENTIFY EVERY INGREDIENT
   - Look for ingredients being shown, added, or mentioned
   - Note EXACT brand names if visible on packaging
   - Include garnishes, toppings, and optional ingredients

3. EXTRACT EXACT QUANTITIES AND MEASUREMENTS when visible
   - Look for measuring cups, spoons, scales, text overlays
   - If you see "1 cup", "2 tablespoons", "500g" - record it EXACTLY
   - If quantity is not visible, estimate: small pinch, medium handful, etc.
   - Format: "2 cups", "1 tablespoon", "500 grams"

4. IMPORTANT - ONLY USE VISUAL INFORMATION from the frame(s) or image
   - If ingredients are blocked or unclear, use "amount not visible"

Return ONLY valid JSON (no markdown, no code blocks):

{
  "title": "Descriptive recipe name based on what's being made",
  "servings": "e.g. '4 servings' or '12 cookies'",
  "ingredients": [
    {
      "name": "ingredient name (specific: 'all-purpose flour' not just 'flour')",
      "quantity": "EXACT amount with unit (e.g. '2 cups', '1 tablespoon')",
      "notes": "e.g. 'softened', 'room temperature'"
    }
  ],
  "instructions": ["Step 1 with timing and technique", "Step 2", "..."],
  "equipment": ["mixing bowl", "whisk", "baking sheet", "..."]
}

NOW ANALYZE THE VIDEO/IMAGE:`
