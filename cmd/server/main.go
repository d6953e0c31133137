package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/cracyfrog/Metodo-Fast/internal/config"
	"github.com/cracyfrog/Metodo-Fast/internal/handler"
	"github.com/cracyfrog/Metodo-Fast/internal/middleware"
	"github.com/cracyfrog/Metodo-Fast/internal/router"
	"github.com/cracyfrog/Metodo-Fast/internal/service"
	"github.com/cracyfrog/Metodo-Fast/internal/ytapi"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "metodofast-api")
	log := middleware.Logger

	handler.InitMetrics()

	cache := service.NewCacheService(cfg.RedisURL, func(format string, v ...any) {
		log.Info().Msgf(format, v...)
	})
	defer cache.Close()

	var yt ytapi.Client
	apiKeySet := cfg.YouTubeAPIKey != ""
	if apiKeySet {
		gc, err := ytapi.NewGoogleClient(context.Background(), cfg.YouTubeAPIKey,
			time.Duration(cfg.PacingMs)*time.Millisecond)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize YouTube client")
		}
		gc.OnCall = func(capability string) {
			handler.Metrics.UpstreamCalls.WithLabelValues(capability).Inc()
		}
		yt = gc
	} else {
		log.Warn().Msg("YOUTUBE_API_KEY not set; discovery requests will be rejected")
	}

	enrich := service.NewEnrichmentService(yt, cache, log)
	enrich.OnCacheHit = handler.Metrics.CacheHits.Inc
	enrich.OnCacheMiss = handler.Metrics.CacheMisses.Inc

	discovery := service.NewDiscoveryService(yt)
	streak := service.NewStreakService(yt, enrich, cfg.MaxStreakChannels, log)
	pipeline := service.NewPipelineService(discovery, enrich, streak, log)
	resolver := service.NewResolver(cfg.MaxPagesPerTerm)

	app := fiber.New(fiber.Config{
		AppName:      "Metodo-Fast API",
		ServerHeader: "Metodo-Fast",
	})

	router.Setup(app, &router.Handlers{
		Discover: handler.NewDiscoverHandler(resolver, pipeline, apiKeySet),
		Health:   handler.NewHealthHandler(cache.Client()),
	}, cfg.CORSOrigins)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
