package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/cracyfrog/Metodo-Fast/internal/middleware"
	"github.com/cracyfrog/Metodo-Fast/internal/model"
	"github.com/cracyfrog/Metodo-Fast/internal/service"
)

// Cache-Control values for the CDN. Non-empty result sets stay fresh longer;
// empty sets are revalidated sooner so late-qualifying videos show up.
const (
	cacheControlHit  = "public, s-maxage=300, stale-while-revalidate=60"
	cacheControlMiss = "public, s-maxage=60"
)

type DiscoverHandler struct {
	resolver  *service.Resolver
	pipeline  *service.PipelineService
	apiKeySet bool
}

func NewDiscoverHandler(resolver *service.Resolver, pipeline *service.PipelineService, apiKeySet bool) *DiscoverHandler {
	return &DiscoverHandler{resolver: resolver, pipeline: pipeline, apiKeySet: apiKeySet}
}

// Get handles GET /api/discover.
func (h *DiscoverHandler) Get(c fiber.Ctx) error {
	if !h.apiKeySet {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest,
			"server is missing its YouTube API credential", nil)
	}

	params := service.RawParams{
		Query:          middleware.SanitizeQuery(fiber.Query[string](c, "q")),
		Model:          fiber.Query[string](c, "model"),
		Mode:           fiber.Query[string](c, "mode"),
		MinViews:       fiber.Query[string](c, "minViews"),
		MaxSubs:        fiber.Query[string](c, "maxSubs"),
		MinDurationSec: fiber.Query[string](c, "minDurationSec"),
		Days:           fiber.Query[string](c, "days"),
		Pages:          fiber.Query[string](c, "pages"),
		Langs:          fiber.Query[string](c, "langs"),
	}

	cfg, terms, err := h.resolver.Resolve(params)
	if err != nil {
		return mapError(c, err)
	}

	start := time.Now()
	resp, err := h.pipeline.Run(c.Context(), cfg, terms, time.Now().UTC())
	if Metrics.PipelineDuration != nil {
		Metrics.PipelineDuration.WithLabelValues(string(cfg.Mode)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return mapError(c, err)
	}

	if resp.Meta.Total > 0 {
		c.Set(fiber.HeaderCacheControl, cacheControlHit)
	} else {
		c.Set(fiber.HeaderCacheControl, cacheControlMiss)
	}
	return c.JSON(resp)
}

// mapError translates the error taxonomy into HTTP responses: invalid
// requests get 400, upstream failures get the upstream's own status code and
// body as detail, everything else gets a generic 500.
func mapError(c fiber.Ctx, err error) error {
	var invalid *model.InvalidRequestError
	if errors.As(err, &invalid) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, invalid.Reason, nil)
	}

	var upstream *model.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.StatusCode
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return middleware.ErrorResponse(c, status, "upstream API error", upstream.Body)
	}

	middleware.Logger.Error().Err(err).Msg("pipeline failed")
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal error", nil)
}
