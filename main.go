package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"propertyhub-backend/config"
	"propertyhub-backend/controllers"
	"propertyhub-backend/metrics"
	"propertyhub-backend/routes"
	"propertyhub-backend/services"
	"propertyhub-backend/storage"
)

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	config.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug().Msg(".env not found; continuing with environment variables")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	metrics.Register()

	store, closeStore := openStore(cfg)
	defer closeStore()

	if cfg.Seed {
		if err := config.SeedStore(ctx, store, cfg.Location); err != nil {
			log.Fatal().Err(err).Msg("failed to seed store")
		}
	}

	var cache storage.CatalogCache = storage.NoopCache{}
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, "propertyhub:catalog", cfg.CatalogCacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("catalog cache enabled")
	}

	propertyService := services.NewPropertyService(store, cache)
	bookingService := services.NewBookingService(store, store, cfg.Location)

	propertyController := controllers.NewPropertyController(propertyService, bookingService)
	bookingController := controllers.NewBookingController(bookingService)

	router := routes.SetupRouter(propertyController, bookingController, routes.Options{
		CORSOrigins:       cfg.CORSOrigins,
		AdminAPIKey:       cfg.AdminAPIKey,
		BookingRatePerMin: cfg.BookingRatePerMin,
	})
	if cfg.AdminAPIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY not set; admin routes are open")
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("storage", cfg.Storage).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received, shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server stopped gracefully")
}

// openStore returns the configured store and a function releasing it.
func openStore(cfg config.Config) (storage.Store, func()) {
	if cfg.Storage != config.StorageMySQL {
		log.Info().Msg("using in-memory store; data resets on restart")
		return storage.NewMemoryStore(), func() {}
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	store := storage.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Msg("database connection established and migrations applied")

	return store, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
