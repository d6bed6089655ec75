package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbox/pkg/cache"
	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger: it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BoxCount = len(layout.Boxes)
	result.Stats.LineCount = len(layout.Lines)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := document.MarshalLayout(layout); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("measured layout",
		"lines", len(layout.Lines),
		"width", layout.Width,
		"height", layout.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc document.Document, opts Options) (document.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return document.Layout{}, false, err
	}
	width, height, err := opts.Constraints(doc)
	if err != nil {
		return document.Layout{}, false, err
	}

	docData, err := document.MarshalDocument(doc, document.FormatJSON)
	if err != nil {
		return document.Layout{}, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(docData), LayoutKeyOpts(width, height))
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := document.UnmarshalLayout(data); err == nil {
				hooks.OnCacheHit(ctx, cache.KeyTypeLayout)
				r.Logger.Debug("layout cache hit", "key", cacheKey)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	layout, err := ComputeLayout(ctx, doc, opts)
	if err != nil {
		return document.Layout{}, false, err
	}

	if data, err := document.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}

	return layout, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc document.Document, opts Options) (document.Layout, error) {
	layout, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit is reported only when every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout document.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := document.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
			r.Logger.Debug("artifact cache hit", "formats", opts.Formats)
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	rendered, err := RenderFromLayout(ctx, layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout document.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
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
