package api

import (
	"context"
	"net/http"
	"time"

	"fridgechef/internal/api/handlers/cookbook"
	"fridgechef/internal/api/handlers/health"
	"fridgechef/internal/api/handlers/pantry"
	parseHandler "fridgechef/internal/api/handlers/parse"
	"fridgechef/internal/api/handlers/vision"
	"fridgechef/internal/api/middleware"
	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/core/ai/interpret"
	"fridgechef/internal/core/ai/service"
	"fridgechef/internal/core/extract"
	"fridgechef/internal/core/image"
	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/core/match"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"
	"fridgechef/internal/storage/postgres"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// timeoutDuration bounds one request end to end, including AI calls.
const timeoutDuration = 120 * time.Second

// SetupRouter wires middleware, services, and routes. A nil db disables the
// persistence routes and leaves the stateless extraction endpoints up.
func SetupRouter(cfg *config.Config, cacheService *cache.Service, db *sqlx.DB) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("storage_enabled", db != nil),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base64 inflates raw image bytes by a third, so the body cap sits above
	// the decoded image cap.
	router.Use(middleware.BodySizeLimit(2 * cfg.Image.MaxSizeBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// Unknown verbs on known paths answer 405 instead of gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		if c.Request.URL.Path == "/api/parse" {
			c.Header("Allow", http.MethodGet)
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Gemini.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	aiService := service.NewService(cfg, cacheService)
	imageService := image.NewService(cfg.Image.MaxSizeBytes)
	fetcher := extract.NewFetcher(cfg.Fetch.Timeout)

	normalizer := ingredient.NewNormalizer(ingredient.DefaultSynonyms())
	categorizer := ingredient.NewCategorizer(ingredient.DefaultAisleKeywords())
	scaler := ingredient.NewScaler()
	matcher := match.NewMatcher(normalizer)
	interpreter := interpret.NewInterpreter(categorizer)

	orchestrator := extract.NewOrchestrator(fetcher, aiService, interpreter)

	// Request timeout and config injection.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// Public extraction endpoint, outside the versioned group for
	// compatibility with existing clients.
	router.GET("/api/parse", parseHandler.NewHandler(orchestrator).Parse)

	api := router.Group("/api/v1")
	{
		visionHandler := vision.NewHandler(aiService, imageService, interpreter)
		visionGroup := api.Group("/vision")
		{
			visionGroup.POST("/detect", visionHandler.Detect)
			visionGroup.POST("/frames", visionHandler.DetectFrames)
		}

		if db != nil {
			recipeRepo := postgres.NewRecipeRepo(db)
			kitchenRepo := postgres.NewKitchenRepo(db)
			groceryRepo := postgres.NewGroceryListRepo(db)

			pantryHandler := pantry.NewHandler(kitchenRepo)
			pantryGroup := api.Group("/pantry")
			{
				pantryGroup.GET("/items", pantryHandler.List)
				pantryGroup.POST("/items", pantryHandler.Create)
				pantryGroup.DELETE("/items/:id", pantryHandler.Delete)
			}

			cookbookHandler := cookbook.NewHandler(
				recipeRepo, groceryRepo, kitchenRepo,
				orchestrator, matcher, scaler, categorizer,
			)
			api.GET("/recipes", cookbookHandler.ListRecipes)
			api.POST("/recipes", cookbookHandler.CreateRecipe)
			api.GET("/recipes/:id", cookbookHandler.GetRecipe)
			api.POST("/recipes/:id/scale", cookbookHandler.ScaleRecipe)
			api.DELETE("/recipes/:id", cookbookHandler.DeleteRecipe)
			api.GET("/cookbook/matches", cookbookHandler.Matches)
			api.GET("/grocery-lists", cookbookHandler.ListGroceryLists)
			api.POST("/grocery-lists", cookbookHandler.CreateGroceryList)
			api.GET("/grocery-lists/:id", cookbookHandler.GetGroceryList)
			api.DELETE("/grocery-lists/:id", cookbookHandler.DeleteGroceryList)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("storage_enabled", db != nil),
		zap.Duration("timeout", timeoutDuration),
	)

	return router, nil
}
