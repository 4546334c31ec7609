package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/observability"
)

// Cache key types reported to observability.CacheHooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the server and the watcher all use it so that caching and
// logging behave the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different jobs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache entry the runner writes.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs the complete compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, job Job, opts Options) (*Result, error) {
	r.applyLogger(&opts)

	result := &Result{}

	computeStart := time.Now()
	res, layoutHit, err := r.ComputeWithCacheInfo(ctx, job, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Chart = res
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.Components = job.Chart.Components()
	result.Stats.Series = len(res.Series)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"size", fmt.Sprintf("%gx%g", res.Layout.Outer.Width(), res.Layout.Outer.Height()),
		"components", result.Stats.Components,
		"cached", layoutHit,
		"duration", result.Stats.ComputeTime)

	renderStart := time.Now()
	hash, artifacts, renderHit, err := r.renderWithHash(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.LayoutHash = hash
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeWithCacheInfo computes a chart with caching and returns cache hit info.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, job Job, opts Options) (chart.Result, bool, error) {
	if job.Chart == nil {
		return chart.Result{}, false, errors.New(errors.ErrCodeInvalidInput, "job has no chart")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForCompute(); err != nil {
		return chart.Result{}, false, err
	}
	if err := job.Chart.Validate(); err != nil {
		return chart.Result{}, false, err
	}

	cacheKey := ""
	if job.Hash != "" {
		cacheKey = r.Keyer.LayoutKey(job.Hash, opts.LayoutKeyOpts(job.Chart))
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit := r.lookup(ctx, keyTypeLayout, cacheKey); hit {
			var cached chart.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, job.Chart.Components())
	res := job.Chart.Compute(opts.EnvWidth, opts.EnvHeight)
	hooks.OnLayoutComplete(ctx, time.Since(start), nil)

	if cacheKey != "" {
		if data, err := json.Marshal(res); err == nil {
			r.store(ctx, keyTypeLayout, cacheKey, data)
		}
	}
	return res, false, nil
}

// Compute is a convenience wrapper that calls ComputeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compute(ctx context.Context, job Job, opts Options) (chart.Result, error) {
	res, _, err := r.ComputeWithCacheInfo(ctx, job, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res chart.Result, opts Options) (map[string][]byte, bool, error) {
	_, artifacts, hit, err := r.renderWithHash(ctx, res, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res chart.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

func (r *Runner) renderWithHash(ctx context.Context, res chart.Result, opts Options) (string, map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return "", nil, false, err
	}

	// Compute cache key from the layout data
	layoutData, err := json.Marshal(res)
	if err != nil {
		return "", nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit := r.lookup(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return layoutHash, artifacts, true, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return "", nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data)
	}
	return layoutHash, rendered, false, nil
}

// lookup reads a key, treating cache errors as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes a key. Cache errors are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
