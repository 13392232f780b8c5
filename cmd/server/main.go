// Package main is the entry point for the route search aggregation service.
//
//	@title						Route Search Aggregation API
//	@version					1.0.0
//	@description				A route search aggregation service that fans out to multiple providers, merges and deduplicates their offers, and serves a shared result cache.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/route-search/route-search-and-aggregation-system/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/route-search/route-search-and-aggregation-system/docs"

	routehttp "github.com/route-search/route-search-and-aggregation-system/internal/adapter/http"
	"github.com/route-search/route-search-and-aggregation-system/internal/adapter/http/middleware"
	"github.com/route-search/route-search-and-aggregation-system/internal/adapter/provider/providerone"
	"github.com/route-search/route-search-and-aggregation-system/internal/adapter/provider/providertwo"
	"github.com/route-search/route-search-and-aggregation-system/internal/cache"
	"github.com/route-search/route-search-and-aggregation-system/internal/config"
	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/logger"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/timeutil"
	"github.com/route-search/route-search-and-aggregation-system/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	appLog := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "route-search",
	})
	log.Logger = appLog.Logger

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("cache_backend", cfg.Cache.Backend).
		Str("availability_strategy", cfg.Search.AvailabilityStrategy).
		Str("failure_mode", cfg.Search.FailureMode).
		Msg("Configuration loaded")

	clock := timeutil.NewRealClock()
	store := buildStore(cfg, clock)
	providers := buildProviders()

	searchUseCase, err := usecase.NewRouteSearchUseCase(providers, store, clock, usecase.Config{
		AvailabilityStrategy: cfg.AvailabilityStrategy(),
		FailureMode:          cfg.FailureMode(),
	}, appLog.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build search use case")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, appLog.Logger)
	e.Use(middleware.Timeout(cfg.Search.GlobalTimeout))

	handler := routehttp.NewRouteHandler(searchUseCase)
	routehttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e)
}

// buildStore constructs the configured cache backend. A redis backend that
// cannot be reached at startup is fatal; a broken cache would silently turn
// every search into a full provider fan-out.
func buildStore(cfg *config.Config, clock timeutil.Clock) cache.Store {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store := cache.NewRedisStore(cache.RedisConfig{
			Addr:      cfg.Cache.RedisAddr,
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			Namespace: cfg.Cache.Namespace,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Failed to connect to redis")
		}

		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Connected to redis")
		return store
	default:
		return cache.NewMemoryStore(clock)
	}
}

// buildProviders assembles the static provider registry. The slice order is
// the concatenation order of aggregated results.
func buildProviders() []domain.RouteProvider {
	providerCfg, err := config.LoadProviders()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load provider config")
	}

	client := &http.Client{Timeout: providerCfg.Timeout}

	return []domain.RouteProvider{
		providerone.NewAdapterWithClient(providerCfg.ProviderOneBaseURL, client, log.Logger),
		providertwo.NewAdapterWithClient(providerCfg.ProviderTwoBaseURL, client, log.Logger),
	}
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
