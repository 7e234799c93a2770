package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yajna-funds/server/internal/adapter/cache"
	"github.com/yajna-funds/server/internal/adapter/memstore"
	"github.com/yajna-funds/server/internal/adapter/repo"
	"github.com/yajna-funds/server/internal/domain"
	"github.com/yajna-funds/server/internal/http/handlers"
	"github.com/yajna-funds/server/internal/http/httpapi"
	"github.com/yajna-funds/server/internal/infra"
	"github.com/yajna-funds/server/internal/infra/geoip"
	"github.com/yajna-funds/server/internal/infra/identity"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Store backend
	var store domain.Store
	switch cfg.StoreBackend {
	case infra.StoreBackendPostgres:
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		store = repo.NewStore(dbpool)
	default:
		store = memstore.New()
	}

	// Optional Redis read cache in front of the store
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	if rdb != nil {
		defer rdb.Close()
		store = cache.Wrap(store, rdb, cfg.CacheTTL, logger)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("campaign cache enabled")
	}

	opts := httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	// Optional GeoIP country annotation
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	if resolver != nil {
		defer resolver.Close()
		opts.CountryLookup = resolver.CountryCode
	}

	// Optional bearer token verification
	if cfg.IdentityIssuer != "" {
		opts.TokenVerifier = identity.NewVerifier(cfg.IdentityIssuer, cfg.IdentityAudience)
	}

	app := handlers.NewApp(store, logger)
	router := httpapi.NewRouter(app, opts)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("backend", cfg.StoreBackend).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
