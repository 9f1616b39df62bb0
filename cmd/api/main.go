package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"igpt/internal/adapter/repo"
	"igpt/internal/catalog"
	"igpt/internal/dispatch"
	"igpt/internal/entitlement"
	"igpt/internal/http/handlers"
	httpapi "igpt/internal/http/httpapi"
	"igpt/internal/infra"
	"igpt/internal/infra/credentials"
	"igpt/internal/infra/geoip"
	"igpt/internal/middleware"
	"igpt/internal/providers/registry"
	"igpt/internal/selection"
	"igpt/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	files, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare asset storage")
	}

	creds := credentials.NewStore(sqlRunner)
	generators, err := registry.Build(ctx, registry.Settings{
		ImageMode:       cfg.ImageProvider,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiImageModel,
		VideoMode:       cfg.VideoProvider,
		RunwayAPIKey:    cfg.RunwayAPIKey,
		RunwayBaseURL:   cfg.RunwayBaseURL,
		RunwayModel:     cfg.RunwayModel,
		RunwayPerMinute: cfg.RunwayRatePerMinute,
	}, func(ctx context.Context, provider, fromEnv string) (string, error) {
		return credentials.Resolve(ctx, creds, provider, fromEnv)
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure providers")
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
		if closer, ok := resolver.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	cat := catalog.Default()
	app := &handlers.App{
		Catalog:         cat,
		Sessions:        selection.NewStore(cat, cfg.SessionTTL),
		Dispatcher:      dispatch.New(generators, files, logger),
		Assets:          repo.NewAssetRepository(sqlRunner),
		Entitlements:    entitlement.NewService(repo.NewEntitlementRepository(sqlRunner), cfg.FreeCredits, logger),
		DB:              dbpool,
		Logger:          logger,
		DispatchTimeout: cfg.DispatchTimeout,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   countryLookup,
		Static:          files.Handler(),
		Logger:          logger,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout+5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
