package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	barHandler "bar-manager/internal/api/handlers/bar"
	"bar-manager/internal/api/handlers/health"
	"bar-manager/internal/api/middleware"
	barService "bar-manager/internal/core/bar"
	"bar-manager/internal/core/barcode"
	"bar-manager/internal/core/cocktaildb"
	"bar-manager/internal/core/macro"
	"bar-manager/internal/core/matching"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/config"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 請求超時
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (32MB，資料庫匯入要過這關)
	maxBodySize = 32 << 20
)

// SetupRouter 設置路由並完成所有服務的組裝
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 別名表：原料與單位各自一份檔案
	ingredientStore, err := synonym.NewStore(
		synonym.NewFilePersistence(cfg.Synonyms.IngredientFile, synonym.DefaultIngredientAliases()),
		synonym.RecaseIngredient,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient synonyms: %w", err)
	}
	unitStore, err := synonym.NewStore(
		synonym.NewFilePersistence(cfg.Synonyms.UnitFile, synonym.DefaultUnitAliases()),
		synonym.RecaseUnit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit synonyms: %w", err)
	}

	ingredientNames := synonym.NewIngredientCanonicalizer(ingredientStore)
	unitNames := synonym.NewUnitCanonicalizer(unitStore)

	// 風味關鍵字表
	lexicon, err := macro.LoadLexicon(cfg.Macros.LexiconFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load macro lexicon: %w", err)
	}
	classifier := macro.NewClassifier(lexicon)

	// 資料存取層
	ingredientRepo := persistence.NewIngredientRepository(db)
	inventoryRepo := persistence.NewInventoryRepository(db)
	recipeRepo := persistence.NewRecipeRepository(db)
	shoppingRepo := persistence.NewShoppingListRepository(db)

	// 比對引擎
	matcher := matching.NewMatcher(
		persistence.NewCatalog(ingredientRepo),
		persistence.NewInventoryIndex(inventoryRepo),
		ingredientNames,
	)
	ranker := matching.NewRanker(matcher, classifier, nil)

	// 外部服務
	cocktailClient := cocktaildb.NewClient(cfg)
	productCache, err := newProductCache(cfg)
	if err != nil {
		return nil, err
	}
	barcodeClient := barcode.NewClient(cfg, productCache)

	// 業務服務
	ingredientSvc := barService.NewIngredientService(ingredientRepo, ingredientNames)
	inventorySvc := barService.NewInventoryService(inventoryRepo, ingredientRepo, ingredientNames)
	recipeSvc := barService.NewRecipeService(recipeRepo, inventoryRepo, ingredientRepo, ingredientNames, ranker, cocktailClient)
	shoppingSvc := barService.NewShoppingService(shoppingRepo, recipeRepo, ingredientRepo, matcher, ingredientNames, unitNames)

	handler := barHandler.NewHandler(
		cfg,
		ingredientSvc,
		inventorySvc,
		recipeSvc,
		shoppingSvc,
		barcodeClient,
		classifier,
		ingredientStore,
		unitStore,
		unitNames,
	)

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg))
	router.GET("/ready", health.ReadinessCheck(db))
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", handler.HandleListIngredients)
			ingredients.POST("", handler.HandleCreateIngredient)
			ingredients.GET("/:id", handler.HandleGetIngredient)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", handler.HandleListRecipes)
			recipes.POST("", handler.HandleImportRecipe)
			recipes.GET("/search", handler.HandleSearchRemote)
			recipes.GET("/:id", handler.HandleGetRecipe)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("", handler.HandleListInventory)
			inventory.POST("", handler.HandleAddInventory)
			inventory.POST("/aggregate-synonyms", handler.HandleAggregateSynonyms)
			inventory.GET("/:id", handler.HandleGetInventory)
			inventory.PATCH("/:id", handler.HandleUpdateInventory)
			inventory.DELETE("/:id", handler.HandleDeleteInventory)
		}

		api.GET("/tags", handler.HandleListTags)
		api.GET("/categories", handler.HandleListCategories)

		api.GET("/search", handler.HandleSearch)
		api.GET("/suggestions", handler.HandleSuggestions)
		api.GET("/suggestions/by-ingredients", handler.HandleSuggestionsByIngredients)

		for _, domain := range []string{"ingredients", "units"} {
			group := api.Group("/synonyms/" + domain)
			group.GET("", handler.HandleListSynonyms(domain))
			group.POST("", handler.HandleUpsertSynonym(domain))
			group.POST("/bulk", handler.HandleBulkImportSynonyms(domain))
			group.DELETE("/:alias", handler.HandleRemoveSynonym(domain))
		}

		shopping := api.Group("/shopping-list")
		{
			shopping.GET("", handler.HandleListShopping)
			shopping.POST("", handler.HandleAddShoppingItem)
			shopping.POST("/from-recipe/:id", handler.HandleShoppingFromRecipe)
			shopping.DELETE("/:id", handler.HandleDeleteShoppingItem)
			shopping.DELETE("", handler.HandleClearShopping)
		}

		api.GET("/macros", handler.HandleListMacros)
		api.GET("/macros/classify", handler.HandleClassifyIngredient)
		api.GET("/barcode/:ean", handler.HandleBarcodeLookup)

		admin := api.Group("/admin/db")
		{
			admin.GET("/export", handler.HandleExportDB)
			admin.POST("/import", handler.HandleImportDB)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// newProductCache 依設定建立條碼商品快取：redis 優先，
// 沒設 redis 時退回記憶體快取，快取停用時回傳 nil
func newProductCache(cfg *config.Config) (barcode.ProductCache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		cache, err := barcode.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect product cache: %w", err)
		}
		common.LogInfo("條碼快取使用 redis", zap.String("addr", cfg.Cache.RedisAddr))
		return cache, nil
	}
	common.LogInfo("條碼快取使用記憶體",
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
	)
	return barcode.NewMemoryCache(cfg.Cache.MaxSize, cfg.Cache.TTL), nil
}
