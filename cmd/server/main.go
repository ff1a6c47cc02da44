package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analyticsapp "github.com/trendlens/backend/internal/application/analytics"
	collectionapp "github.com/trendlens/backend/internal/application/collection"
	insightapp "github.com/trendlens/backend/internal/application/insight"
	notificationapp "github.com/trendlens/backend/internal/application/notification"
	syncapp "github.com/trendlens/backend/internal/application/sync"
	"github.com/trendlens/backend/internal/domain/insight"
	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/notification"
	"github.com/trendlens/backend/internal/domain/social"
	"github.com/trendlens/backend/internal/infrastructure/cache"
	"github.com/trendlens/backend/internal/infrastructure/config"
	"github.com/trendlens/backend/internal/infrastructure/llm"
	"github.com/trendlens/backend/internal/infrastructure/logger"
	notificationinfra "github.com/trendlens/backend/internal/infrastructure/notification"
	"github.com/trendlens/backend/internal/infrastructure/persistence"
	"github.com/trendlens/backend/internal/infrastructure/scheduler"
	"github.com/trendlens/backend/internal/infrastructure/socialmedia"
	"github.com/trendlens/backend/internal/infrastructure/telemetry"
	"github.com/trendlens/backend/internal/interfaces/http/handler"
	"github.com/trendlens/backend/internal/interfaces/http/middleware"
	"github.com/trendlens/backend/internal/interfaces/http/router"
)

//	@title			TrendLens Backend API
//	@version		1.0
//	@description	Social commerce monitoring dashboard API - TikTok Shop and Instagram product tracking

//	@contact.name	API Support
//	@contact.url	https://github.com/trendlens/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TrendLens Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize OpenTelemetry tracing and metrics. Both degrade to
	// no-op providers when disabled, so downstream wiring is unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	syncMetrics, err := telemetry.NewSyncMetrics(meterProvider.Meter("trendlens.sync"), log)
	if err != nil {
		log.Fatal("Failed to initialize sync metrics", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled && tracerProvider.IsEnabled() {
		dbTracing := telemetry.NewDBTracing(telemetry.DBTracingConfig{
			SlowQueryThreshold: cfg.Telemetry.SlowQueryThreshold,
		}, log)
		if err := db.EnableTracing(dbTracing); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	sampleRepo := persistence.NewGormMetricSampleRepository(db.DB)
	runRepo := persistence.NewGormCollectionRunRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	insightRepo := persistence.NewGormInsightRepository(db.DB)

	// Ranking cache: Redis when configured, in-memory otherwise
	rankingCache, err := cache.NewRankingCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize ranking cache", zap.Error(err))
	}
	log.Info("Ranking cache initialized", zap.String("backend", cfg.Cache.Backend))

	// Analytics service (rankings, trends, run history)
	analyticsService := analyticsapp.NewService(productRepo, sellerRepo, sampleRepo, runRepo, rankingCache, log)

	// Social platform adapters
	var adapters []social.Platform
	if cfg.TikTok.Enabled {
		tiktokAdapter, err := socialmedia.NewTikTokAdapter(&socialmedia.TikTokConfig{
			BaseURL: cfg.TikTok.BaseURL,
			Timeout: cfg.TikTok.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to initialize TikTok adapter", zap.Error(err))
		}
		adapters = append(adapters, tiktokAdapter)
	}
	if cfg.Instagram.Enabled {
		instagramAdapter, err := socialmedia.NewInstagramAdapter(&socialmedia.InstagramConfig{
			AccessToken: cfg.Instagram.AccessToken,
			BaseURL:     cfg.Instagram.BaseURL,
			Timeout:     cfg.Instagram.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to initialize Instagram adapter", zap.Error(err))
		}
		adapters = append(adapters, instagramAdapter)
	}
	registry := socialmedia.NewRegistry(adapters...)
	log.Info("Social platform adapters registered", zap.Int("count", len(adapters)))

	// Hosted scraper client. A missing API key leaves the runner nil and
	// every sync cycle reports the platform as not configured.
	var actorRunner social.ActorRunner
	actorClient, err := socialmedia.NewActorClient(&socialmedia.ActorClientConfig{
		APIKey:         cfg.Actor.APIKey,
		BaseURL:        cfg.Actor.BaseURL,
		PollInterval:   cfg.Actor.PollInterval,
		WaitBudget:     cfg.Actor.WaitBudget,
		RequestTimeout: cfg.Actor.RequestTimeout,
	})
	if err != nil {
		log.Warn("Actor client not configured, sync cycles will be skipped", zap.Error(err))
	} else {
		actorRunner = actorClient
	}

	// Collection service reconciles scraped datasets into the store
	collectionService := collectionapp.NewService(sellerRepo, productRepo, sampleRepo, runRepo, log)

	// Alert delivery: HTTP relay when configured, otherwise dropped
	var emailSender notification.EmailSender = notificationinfra.NoopEmailSender{}
	if cfg.Alerts.EmailEndpoint != "" {
		httpSender, err := notificationinfra.NewHTTPEmailSender(notificationinfra.HTTPEmailSenderConfig{
			Endpoint: cfg.Alerts.EmailEndpoint,
			From:     cfg.Alerts.EmailFrom,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize email sender", zap.Error(err))
		}
		emailSender = httpSender
	}

	notificationService := notificationapp.NewService(
		notificationRepo,
		emailSender,
		productRepo,
		sellerRepo,
		notificationapp.Config{
			Enabled:          cfg.Alerts.Enabled,
			TopProductRank:   cfg.Alerts.TopProductRank,
			SellerMilestones: cfg.Alerts.SellerMilestones,
			DefaultUserID:    cfg.Alerts.DefaultUserID,
		},
		log,
		notificationapp.WithAlertRecorder(syncMetrics.RecordAlert),
	)

	// LLM-backed insight generation, optional
	var textGenerator *llm.Generator
	if cfg.LLM.Enabled {
		textGenerator, err = llm.NewGenerator(llm.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to initialize LLM generator", zap.Error(err))
		}
	}
	insightService := insightapp.NewService(insightRepo, generatorOrNil(textGenerator), productRepo, sellerRepo, sampleRepo, log)

	// Sync orchestrator ties adapters, scraper and collection together
	syncService := syncapp.NewService(
		registry,
		actorRunner,
		collectionService,
		syncapp.Config{
			SearchQuery: cfg.Sync.SearchQuery,
			MaxResults:  cfg.Sync.MaxResults,
			ActorIDs: map[market.Platform]string{
				market.PlatformTikTokShop: cfg.Actor.TikTokActorID,
				market.PlatformInstagram:  cfg.Actor.InstaActorID,
			},
		},
		log,
		syncapp.WithCycleObserver(syncMetrics),
		syncapp.WithAfterSyncHook(analyticsService.InvalidateRankings),
		syncapp.WithAfterSyncHook(notificationService.EvaluateAfterSync),
	)

	// Periodic sync scheduler
	syncScheduler, err := scheduler.NewSyncScheduler(scheduler.SyncSchedulerConfig{
		Interval:   cfg.Sync.Interval,
		RunOnStart: cfg.Sync.RunOnStart,
		StopGrace:  cfg.Sync.StopGrace,
	}, syncService, log)
	if err != nil {
		log.Fatal("Failed to initialize sync scheduler", zap.Error(err))
	}
	if cfg.Sync.Enabled {
		if err := syncScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		defer func() {
			if err := syncScheduler.Stop(); err != nil {
				log.Error("Error stopping sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Sync scheduler started",
			zap.Duration("interval", cfg.Sync.Interval),
			zap.Bool("run_on_start", cfg.Sync.RunOnStart),
		)
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(analyticsService)
	sellerHandler := handler.NewSellerHandler(analyticsService)
	socialHandler := handler.NewSocialHandler(registry)
	syncHandler := handler.NewSyncHandler(syncScheduler, analyticsService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	insightHandler := handler.NewInsightHandler(insightService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. Tracing - Span per request (if enabled)
	// 7. Metrics - Request counters and latency histograms
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if tracerProvider.IsEnabled() {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitReqs, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitReqs),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health endpoints outside API versioning, for load balancers
	engine.GET("/health", systemHandler.GetHealth)
	engine.GET("/ready", systemHandler.GetReadiness)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("/top", productHandler.GetTopProducts)
	productRoutes.GET("/:productId", productHandler.GetProduct)
	productRoutes.GET("/:productId/trend", productHandler.GetProductTrend)

	sellerRoutes := router.NewDomainGroup("sellers", "/sellers")
	sellerRoutes.GET("/top", sellerHandler.GetTopSellers)
	sellerRoutes.GET("/:sellerId", sellerHandler.GetSeller)

	socialRoutes := router.NewDomainGroup("social", "/social")
	socialRoutes.GET("/:platform/users/:userId", socialHandler.GetUserInfo)
	socialRoutes.GET("/:platform/users/:userId/posts", socialHandler.GetUserPosts)
	socialRoutes.GET("/:platform/users/:userId/performance", socialHandler.GetPerformance)

	syncRoutes := router.NewDomainGroup("sync", "/sync")
	syncRoutes.POST("/trigger", syncHandler.TriggerSync)
	syncRoutes.GET("/status", syncHandler.GetSyncStatus)
	syncRoutes.GET("/runs", syncHandler.GetSyncRuns)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("/unread", notificationHandler.GetUnread)
	notificationRoutes.GET("/unread/count", notificationHandler.GetUnreadCount)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)

	insightRoutes := router.NewDomainGroup("insights", "/insights")
	insightRoutes.GET("/latest", insightHandler.GetInsights)
	insightRoutes.POST("/trend", insightHandler.GenerateTrendAnalysis)
	insightRoutes.POST("/niche", insightHandler.GenerateNicheRecommendation)
	insightRoutes.POST("/seasonality", insightHandler.GenerateSeasonalityAnalysis)
	insightRoutes.POST("/competitor", insightHandler.GenerateCompetitorAnalysis)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.GetHealth)
	systemRoutes.GET("/ready", systemHandler.GetReadiness)

	r.Register(productRoutes).
		Register(sellerRoutes).
		Register(socialRoutes).
		Register(syncRoutes).
		Register(notificationRoutes).
		Register(insightRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// generatorOrNil avoids handing the insight service an interface value
// wrapping a nil pointer when no LLM is configured.
func generatorOrNil(g *llm.Generator) insight.TextGenerator {
	if g == nil {
		return nil
	}
	return g
}
