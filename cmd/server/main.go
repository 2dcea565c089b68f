package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutapp "github.com/tindahan/backend/internal/application/checkout"
	storefrontapp "github.com/tindahan/backend/internal/application/storefront"
	"github.com/tindahan/backend/internal/infrastructure/cache"
	"github.com/tindahan/backend/internal/infrastructure/config"
	"github.com/tindahan/backend/internal/infrastructure/dispatch"
	"github.com/tindahan/backend/internal/infrastructure/logger"
	"github.com/tindahan/backend/internal/infrastructure/persistence"
	"github.com/tindahan/backend/internal/infrastructure/telemetry"
	"github.com/tindahan/backend/internal/interfaces/http/handler"
	"github.com/tindahan/backend/internal/interfaces/http/middleware"
	"github.com/tindahan/backend/internal/interfaces/http/router"
)

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Tindahan Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

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

	// Initialize repositories
	websiteRepo := persistence.NewGormWebsiteRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Session store for visitor carts (memory or redis per config)
	storeFactory := cache.NewSessionStoreFactory(cfg.Session, cfg.Redis, cache.WithLogger(log))
	sessionStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if closer, ok := sessionStore.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Error("Error closing session store", zap.Error(err))
			}
		}
	}()
	log.Info("Session store ready", zap.String("store", cfg.Session.Store))

	// Telemetry (no-op providers when disabled)
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	dispatchMetrics, err := telemetry.NewDispatchMetrics(meterProvider.Meter("tindahan.storefront"), log)
	if err != nil {
		log.Fatal("Failed to create dispatch metrics", zap.Error(err))
	}

	// Order log webhook client and the detached runner it executes on.
	// The runner deadline sits above the client timeout so the HTTP
	// client gives up first and the failure is logged with its cause.
	orderLog := dispatch.NewWebhookOrderLog(cfg.Dispatch.WebhookTimeout)
	runner := dispatch.NewDetachedRunner(log, cfg.Dispatch.WebhookTimeout+5*time.Second)

	// Application services
	cartService := storefrontapp.NewCartService(productRepo, sessionStore, log)
	checkoutService := checkoutapp.NewService(sessionStore, orderLog, runner, log,
		checkoutapp.WithDebounce(cfg.Dispatch.DebounceDelay),
		checkoutapp.WithMetrics(dispatchMetrics),
	)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
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

	// Global middleware stack, order matters: request ID first so the
	// logger and error responses can pick it up, recovery before logging,
	// tracing after security headers and CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())

	// Storefront routes resolve the tenant site and visitor session per
	// request; system routes stay outside that chain
	storefrontHandler := handler.NewStorefrontHandler(cartService, checkoutService,
		middleware.SiteResolution(middleware.SiteMiddlewareConfig{
			Websites:         websiteRepo,
			BaseDomain:       cfg.App.BaseDomain,
			RequirePublished: true,
			Logger:           log,
		}),
		middleware.VisitorSession(),
	)
	systemHandler := handler.NewSystemHandler(db)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(storefrontHandler).Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
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
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let any in-flight order log deliveries finish before tearing down
	runner.Wait()

	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
