package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "finhealth/api/swagger" // swagger docs
	"finhealth/internal/config"
	"finhealth/internal/database"
	"finhealth/internal/handler"
	"finhealth/internal/logger"
	"finhealth/internal/middleware"
	"finhealth/internal/narrative"
	"finhealth/internal/repository"
	"finhealth/internal/service"
	"finhealth/internal/store"

	"github.com/getsentry/sentry-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Financial Health API
// @version         1.0
// @description     Month-end forecasts, budget health and strategic reports for e-commerce workspaces.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.NewFromConfig(cfg.Log.Format, cfg.Log.Level)
	gin.SetMode(cfg.Server.GinMode)

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          cfg.Sentry.Release,
			SampleRate:       cfg.Sentry.SampleRate,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Sentry")
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.NewConnection(cfg.Database.DSN(), database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		AutoMigrate:     cfg.Database.AutoMigrate,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("Connected to PostgreSQL")

	ctx := context.Background()

	narrator, err := narrative.New(ctx, cfg.Narrative.Options(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create narrator")
	}
	if narrator == nil {
		log.Warn().Msg("No narrative provider configured - strategic reports will carry numbers only")
	}

	var (
		cache       service.ReportCache
		reportCache *store.ReportCache
	)
	if cfg.Cache.Enabled {
		reportCache, err = store.Open(cfg.Cache.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Cache.Path).Msg("Failed to open report cache")
		}
		removed, err := reportCache.Prune(ctx, time.Now().Add(-cfg.Cache.Retention))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to prune report cache")
		} else {
			log.Info().Int64("removed", removed).Dur("retention", cfg.Cache.Retention).Msg("Pruned report cache")
		}
		cache = reportCache
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	ledgerRepo := repository.NewLedgerRepository(db, txManager)
	forecastService := service.NewForecastService(ledgerRepo, narrator, cache, service.ForecastOptions{
		Settings:         cfg.Engine,
		NarrativeTimeout: cfg.Narrative.Timeout,
	}, log)

	guard := middleware.RequireWorkspace(cfg.JWTSecretBytes(), cfg.Auth.AdminRole)
	forecastHandler := handler.NewForecastHandler(forecastService, cfg.Engine.Location, guard)

	// Set up Gin Router
	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		status, code := "OK", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "DEGRADED", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "time": time.Now().Format(time.RFC3339)})
	})

	forecastHandler.RegisterRoutes(router.Group(""))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Narrative.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if reportCache != nil {
		if err := reportCache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close report cache")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
