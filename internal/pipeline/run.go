package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mweston/tahoe-conditions/internal/adapters"
	"github.com/mweston/tahoe-conditions/internal/fetch"
	"github.com/mweston/tahoe-conditions/internal/logging"
	"github.com/mweston/tahoe-conditions/internal/models"
	"github.com/mweston/tahoe-conditions/internal/output"
	"github.com/mweston/tahoe-conditions/internal/weather"
)

// DefaultConditionsTTL bounds how long a cached conditions page is
// reused before refetching.
const DefaultConditionsTTL = 15 * time.Minute

// Runner drives one update cycle across all configured resorts.
type Runner struct {
	client        *fetch.Client
	weather       *weather.Service
	store         *output.Store
	log           *zap.SugaredLogger
	concurrency   int
	conditionsTTL time.Duration
	noCache       bool
}

// Config holds the collaborators and knobs for a Runner.
type Config struct {
	Client  *fetch.Client
	Weather *weather.Service
	Store   *output.Store

	// Concurrency is the number of resorts processed at once.
	// Values below 1 mean sequential.
	Concurrency int

	// ConditionsTTL overrides DefaultConditionsTTL when positive.
	ConditionsTTL time.Duration

	// NoCache bypasses the fetch cache for this run.
	NoCache bool
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(cfg Config) *Runner {
	ttl := cfg.ConditionsTTL
	if ttl <= 0 {
		ttl = DefaultConditionsTTL
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		client:        cfg.Client,
		weather:       cfg.Weather,
		store:         cfg.Store,
		log:           logging.S(),
		concurrency:   concurrency,
		conditionsTTL: ttl,
		noCache:       cfg.NoCache,
	}
}

// Run processes every resort and returns one ResortConditions per
// input, in input order. Individual resort failures never fail the
// run; they surface as stale records.
func (r *Runner) Run(ctx context.Context, resorts []models.ResortConfig) []models.ResortConditions {
	runID := uuid.NewString()
	start := time.Now()
	r.log.Infow("starting update run", "run_id", runID, "resorts", len(resorts), "concurrency", r.concurrency)

	results := make([]models.ResortConditions, len(resorts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, cfg := range resorts {
		i, cfg := i, cfg
		g.Go(func() error {
			results[i] = r.safeProcess(gctx, cfg)
			return nil
		})
	}
	g.Wait()

	r.log.Infow("update run complete", "run_id", runID, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// safeProcess is the per-resort panic boundary: a panicking adapter or
// collaborator degrades that one resort to stale instead of killing
// the run.
func (r *Runner) safeProcess(ctx context.Context, cfg models.ResortConfig) (rec models.ResortConditions) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Errorw("resort processing panicked", "slug", cfg.Slug, "panic", v)
			rec = r.staleRecord(ctx, cfg, fmt.Sprintf("panic: %v", v))
		}
	}()
	return r.processResort(ctx, cfg)
}

func (r *Runner) processResort(ctx context.Context, cfg models.ResortConfig) models.ResortConditions {
	log := r.log.With("slug", cfg.Slug, "kind", cfg.Kind)

	needsRendering := adapters.RequiresRendering(cfg.Kind)
	if needsRendering && !r.client.RendererAvailable() {
		log.Warnw("source needs a headless browser but none is available; keeping last known conditions")
		return r.staleRecord(ctx, cfg, "headless rendering unavailable")
	}

	var html string
	var err error
	if needsRendering {
		html, err = r.client.FetchRendered(ctx, cfg.SourceURL, fetch.RenderOptions{
			TTL:     r.conditionsTTL,
			NoCache: r.noCache,
		})
	} else {
		html, err = r.client.Fetch(ctx, cfg.SourceURL, fetch.Options{
			TTL:     r.conditionsTTL,
			NoCache: r.noCache,
		})
	}
	if err != nil {
		log.Warnw("fetch failed; keeping last known conditions", "error", err)
		return r.staleRecord(ctx, cfg, err.Error())
	}

	adapter := adapters.Resolve(cfg.Kind)
	outcome := adapter.Parse(html)
	if !outcome.Success {
		if outcome.NeedsRendering {
			log.Warnw("source requires rendering and has no dedicated parser", "error", outcome.Err)
		} else {
			log.Warnw("parse failed; keeping last known conditions", "error", outcome.Err)
		}
		return r.staleRecord(ctx, cfg, outcome.Err)
	}

	rec := models.ResortConditions{
		Slug:         cfg.Slug,
		Name:         cfg.Name,
		FetchedAtUTC: time.Now().UTC(),
		Sources:      models.Sources{OpsURL: cfg.SourceURL},
		Ops:          outcome.Ops,
		Snow:         outcome.Snow,
	}
	r.enrichWeather(ctx, cfg, &rec)
	log.Infow("resort updated",
		"lifts_open", intOrDash(rec.Ops.LiftsOpen),
		"trails_open", intOrDash(rec.Ops.TrailsOpen))
	return rec
}

// staleRecord builds the fallback record for a resort whose update
// failed: the previously published ops and snow facts carried forward
// under a stale marker, or an empty stale record when no prior
// publication exists. Weather is still refreshed when possible.
func (r *Runner) staleRecord(ctx context.Context, cfg models.ResortConfig, reason string) models.ResortConditions {
	rec := models.ResortConditions{
		Slug:    cfg.Slug,
		Name:    cfg.Name,
		Stale:   true,
		Sources: models.Sources{OpsURL: cfg.SourceURL},
	}
	if prev := r.store.LoadResort(cfg.Slug); prev != nil {
		rec.FetchedAtUTC = prev.FetchedAtUTC
		rec.Ops = prev.Ops
		rec.Snow = prev.Snow
		rec.Weather = prev.Weather
	} else {
		rec.FetchedAtUTC = time.Now().UTC()
	}
	r.log.Debugw("produced stale record", "slug", cfg.Slug, "reason", reason)
	r.enrichWeather(ctx, cfg, &rec)
	return rec
}

// enrichWeather attaches an NWS forecast when the resort has
// coordinates. Enrichment is best effort and never fails a resort.
func (r *Runner) enrichWeather(ctx context.Context, cfg models.ResortConfig, rec *models.ResortConditions) {
	if r.weather == nil || cfg.Lat == 0 || cfg.Lon == 0 {
		return
	}
	wx, pointsURL, forecastURL := r.weather.Fetch(ctx, cfg.Lat, cfg.Lon)
	if wx.TempF != nil || wx.ShortForecast != nil || wx.WindMph != nil {
		rec.Weather = wx
	}
	rec.Sources.WeatherPointsURL = pointsURL
	rec.Sources.WeatherForecastURL = forecastURL
}

func intOrDash(n *int) any {
	if n == nil {
		return "-"
	}
	return *n
}
