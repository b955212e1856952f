package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/providers/wodgen"
	"server/internal/quota"
	"server/internal/wod"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	generator, err := newGenerator(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure wod generator")
	}

	timezones, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	if timezones != nil {
		defer timezones.Close()
	}

	users := repo.NewUserRepository(dbpool)
	subscriptions := repo.NewSubscriptionRepository(dbpool)
	usage := repo.NewUsageRepository(dbpool)
	wods := repo.NewWodRepository(dbpool)
	presets := repo.NewPresetRepository(dbpool)
	progress := repo.NewProgressRepository(dbpool)

	gate := quota.NewGate(subscriptions, usage, cfg.FreeDailyLimit, cfg.QuotaLocation())
	service := wod.NewService(wods, progress, subscriptions, gate, generator, logger)

	app := &handlers.App{
		Logger:        logger,
		JWTSecret:     cfg.JWTSecret,
		Users:         users,
		Subscriptions: subscriptions,
		Presets:       presets,
		Wods:          service,
		Gate:          gate,
	}
	if timezones != nil {
		app.Timezones = timezones
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

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

func newGenerator(cfg *infra.Config) (wodgen.Generator, error) {
	switch cfg.WodProvider {
	case "openai":
		// Without a key, fall back to the deterministic offline generator so
		// local environments work out of the box.
		if cfg.OpenAIAPIKey == "" {
			return wodgen.NewStaticGenerator(), nil
		}
		return wodgen.NewOpenAIGenerator(wodgen.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	case "static":
		return wodgen.NewStaticGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported WOD_PROVIDER %q", cfg.WodProvider)
	}
}
