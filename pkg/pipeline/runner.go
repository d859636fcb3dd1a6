package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/cache"
	"github.com/matzehuels/engrave/pkg/observability"
	"github.com/matzehuels/engrave/pkg/score"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs decode, layout and render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Decode
	decodeStart := time.Now()
	hooks.OnDecodeStart(ctx, opts.source())
	doc, err := Decode(opts)
	result.Stats.DecodeTime = time.Since(decodeStart)
	if err != nil {
		hooks.OnDecodeComplete(ctx, opts.source(), 0, result.Stats.DecodeTime, err)
		return nil, err
	}
	staves, notes, anns := doc.Counts()
	hooks.OnDecodeComplete(ctx, opts.source(), notes, result.Stats.DecodeTime, nil)
	result.Document = doc
	result.Stats.StaveCount, result.Stats.NoteCount, result.Stats.AnnotationCount = staves, notes, anns
	opts.ApplyDocument(doc)

	if result.ScoreHash, err = HashDocument(doc); err != nil {
		return nil, err
	}
	r.Logger.Info("decoded score",
		"source", opts.source(),
		"staves", staves,
		"notes", notes,
		"annotations", anns,
		"duration", result.Stats.DecodeTime)

	// Cached artifacts skip layout altogether.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.ScoreHash, doc, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", true)
			return result, nil
		}
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, staves, anns)
	layout, err := Layout(doc, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("computed layout",
		"slots", len(layout.Slots),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(ctx, layout, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	r.storeArtifacts(ctx, result.ScoreHash, doc, opts, artifacts)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedArtifacts returns every requested format from the cache, or false if
// any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, scoreHash string, doc *score.Document, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(scoreHash, opts.ArtifactKeyOpts(format, doc))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// storeArtifacts caches each format. Write failures are logged, not returned.
func (r *Runner) storeArtifacts(ctx context.Context, scoreHash string, doc *score.Document, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(scoreHash, opts.ArtifactKeyOpts(format, doc))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
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
