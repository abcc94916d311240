package extract

import (
	"context"
	"strings"

	"fridgechef/internal/core/ai/interpret"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// Ingredient lists shorter than this are treated as extraction failures and
// retried through the vision fallback.
const minTrustedIngredients = 5

// AIService is what the orchestrator needs from the model layer.
type AIService interface {
	AnalyzeVideo(ctx context.Context, videoURL string) (string, error)
	AnalyzeImage(ctx context.Context, base64Image, mimeType, contextText string) (string, error)
}

// PageFetcher retrieves pages and preview images.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
	FetchImageBase64(ctx context.Context, imageURL string) string
}

// Orchestrator runs the full URL-to-recipe extraction pipeline.
type Orchestrator struct {
	fetcher     PageFetcher
	ai          AIService
	interpreter *interpret.Interpreter
}

// NewOrchestrator wires the pipeline together.
func NewOrchestrator(fetcher PageFetcher, aiService AIService, interpreter *interpret.Interpreter) *Orchestrator {
	return &Orchestrator{
		fetcher:     fetcher,
		ai:          aiService,
		interpreter: interpreter,
	}
}

// Resolve extracts a recipe from a URL. Strategies run in fixed order: HTML
// extraction always happens first; YouTube watch links go through full video
// analysis; video or thin HTML results fall back to thumbnail vision; the
// HTML result is the final answer when every AI path comes up empty.
//
// Only the initial page fetch and an exhausted AI quota are fatal. Every
// other failure falls through to the next strategy.
func (o *Orchestrator) Resolve(ctx context.Context, pageURL string) (*common.ParsedRecipe, error) {
	isVideo := IsVideoOrSocialURL(pageURL)

	rawHTML, err := o.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		common.LogError("page fetch failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return nil, common.ErrPageFetchFailed
	}

	recipe := FromHTML(rawHTML, isVideo)
	ogDescription := OgDescription(rawHTML)

	if IsYouTubeVideoURL(pageURL) {
		fromVideo, err := o.resolveVideo(ctx, pageURL, recipe)
		if err != nil {
			return nil, err
		}
		if fromVideo != nil {
			return fromVideo, nil
		}
	}

	useVision := recipe.ImageURL != "" &&
		strings.HasPrefix(recipe.ImageURL, "http") &&
		(isVideo || len(recipe.Ingredients) < minTrustedIngredients)

	if useVision {
		fromVision, err := o.resolveThumbnail(ctx, recipe, ogDescription)
		if err != nil {
			return nil, err
		}
		if fromVision != nil {
			return fromVision, nil
		}
	}

	recipe.GroceryByAisle = []common.GroceryByAisle{}
	return recipe, nil
}

// resolveVideo runs full video analysis. A nil recipe with nil error means
// the strategy produced nothing and the caller should fall through.
func (o *Orchestrator) resolveVideo(ctx context.Context, videoURL string, pageRecipe *common.ParsedRecipe) (*common.ParsedRecipe, error) {
	raw, err := o.ai.AnalyzeVideo(ctx, videoURL)
	if err != nil {
		if common.IsQuotaExceeded(err) {
			return nil, err
		}
		common.LogWarn("video analysis failed",
			zap.String("url", videoURL),
			zap.Error(err),
		)
		return nil, nil
	}

	fromVideo := o.interpreter.VideoRecipeResponse(raw)
	if len(fromVideo.Ingredients) == 0 {
		common.LogWarn("video analysis returned no ingredients",
			zap.String("url", videoURL),
		)
		return nil, nil
	}

	if fromVideo.Title == "" {
		fromVideo.Title = pageRecipe.Title
	}
	fromVideo.ImageURL = pageRecipe.ImageURL
	fromVideo.GroceryByAisle = []common.GroceryByAisle{}
	return fromVideo, nil
}

// resolveThumbnail runs vision extraction over the page preview image with
// the og:description as context. Nil result means fall through.
func (o *Orchestrator) resolveThumbnail(ctx context.Context, pageRecipe *common.ParsedRecipe, ogDescription string) (*common.ParsedRecipe, error) {
	base64Image := o.fetcher.FetchImageBase64(ctx, pageRecipe.ImageURL)
	if base64Image == "" {
		common.LogWarn("could not fetch preview image",
			zap.String("image_url", pageRecipe.ImageURL),
		)
		return nil, nil
	}

	raw, err := o.ai.AnalyzeImage(ctx, base64Image, "image/jpeg", ogDescription)
	if err != nil {
		if common.IsQuotaExceeded(err) {
			return nil, err
		}
		common.LogWarn("thumbnail vision failed", zap.Error(err))
		return nil, nil
	}

	vision := o.interpreter.VisionResponse(raw)
	if len(vision.Items) == 0 {
		common.LogWarn("thumbnail vision returned no ingredients")
		return nil, nil
	}

	ingredients := make([]string, len(vision.Items))
	for i, item := range vision.Items {
		ingredients[i] = item.Name
	}
	steps := vision.Steps
	if len(steps) == 0 {
		steps = pageRecipe.Steps
	}

	return &common.ParsedRecipe{
		Title:          pageRecipe.Title,
		ImageURL:       pageRecipe.ImageURL,
		Ingredients:    ingredients,
		Steps:          steps,
		Servings:       pageRecipe.Servings,
		GroceryByAisle: []common.GroceryByAisle{},
	}, nil
}
