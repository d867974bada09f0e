package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"rtsd/internal/countdown"
	"rtsd/internal/models"
	"rtsd/internal/providers"
	"rtsd/internal/services"
	"rtsd/internal/sources"
)

// Cache keys per endpoint. The refresh scheduler pre-warms CacheKeyStatus
// with the freshly serialized snapshot every cycle.
const (
	CacheKeyStatus    = "status"
	CacheKeyCountdown = "countdown"
)

type StatusController struct {
	logger  providers.Logger
	service services.StatusServiceInterface
	cache   providers.CacheProviderInterface
	calc    *countdown.Calculator
}

func NewStatusController(logger providers.Logger, service services.StatusServiceInterface, cache providers.CacheProviderInterface, calc *countdown.Calculator) *StatusController {
	return &StatusController{
		logger:  logger,
		service: service,
		cache:   cache,
		calc:    calc,
	}
}

func (sc *StatusController) serveFromCacheOrCompute(w http.ResponseWriter, ctx context.Context, cacheKey string, compute func(context.Context) (any, error)) {
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute(ctx)
	if err != nil {
		sc.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// writeError maps a failed snapshot build to a response: upstream outages
// are the upstream's fault (502), unknown channels are the caller's (404),
// anything else is ours (500).
func (sc *StatusController) writeError(w http.ResponseWriter, err error) {
	var ue *sources.UpstreamError
	switch {
	case errors.As(err, &ue):
		sc.logger.Errorf(providers.TypeHTTP, "Upstream failure: %s", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	case errors.Is(err, services.ErrUnknownChannel):
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		sc.logger.Errorf(providers.TypeHTTP, "Request failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// GetStatus serves the full status snapshot: per-channel records plus the
// raw time-sorted event list consumers re-match against.
func (sc *StatusController) GetStatus(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, r.Context(), CacheKeyStatus, func(ctx context.Context) (any, error) {
		return sc.service.BuildSnapshot(ctx)
	})
}

// GetMilestones serves the full matcher candidate table for one channel,
// for the per-channel milestone table.
func (sc *StatusController) GetMilestones(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = models.PlatformDesktop
	}
	track := r.URL.Query().Get("track")
	if track == "" {
		track = models.TrackRelease
	}

	sc.serveFromCacheOrCompute(w, r.Context(), "milestones:"+platform+":"+track, func(ctx context.Context) (any, error) {
		return sc.service.ChannelMilestones(ctx, platform, track)
	})
}

// GetCountdown serves the next-release target for the banner, or JSON null
// when no target can be determined.
func (sc *StatusController) GetCountdown(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, r.Context(), CacheKeyCountdown, func(ctx context.Context) (any, error) {
		snap, err := sc.service.BuildSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		rec := snap.Channels[models.PlatformDesktop][models.TrackRelease]
		version := ""
		if rec.Version != nil {
			version = *rec.Version
		}
		return sc.calc.Next(snap.Events, version, time.Now()), nil
	})
}
