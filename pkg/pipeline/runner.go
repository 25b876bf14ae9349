package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/basegen/pkg/cache"
	"github.com/matzehuels/basegen/pkg/compose"
	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/layout"
	"github.com/matzehuels/basegen/pkg/sink"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, keyer, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL bounds cache entry lifetime. Zero means no expiration;
	// generation is deterministic, so entries never go stale on their own.
	ArtifactTTL time.Duration
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Generate runs the complete pipeline without caching. It is the plain
// library entry point; use a Runner when artifact caching is wanted.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	return NewRunner(cache.NewNullCache(), nil, opts.Logger).Execute(ctx, opts)
}

// Execute runs the complete layout → compose → finalize → render pipeline
// with artifact caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg, err := opts.BuildConfig()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Config:    cfg,
		Seed:      cfg.Seed,
		Handles:   make(map[string]sink.Handle),
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{ArtifactHits: make(map[string]bool)},
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	gen := layout.New(cfg)
	result.Plan = gen.Plan()
	result.Rooms = gen.GenerateRooms()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RoomCount = len(result.Rooms)

	r.Logger.Info("drew layout",
		"corridors", result.Plan.Corridors,
		"ramps", result.Plan.Ramps,
		"rooms", result.Stats.RoomCount,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2 + 3: Compose and finalize
	composeStart := time.Now()
	store := sink.NewStore()
	registry := sink.NewRegistry()
	result.Store = store

	for _, part := range compose.New(cfg, gen, opts.Logger).Compose() {
		h := store.Finalize(part.Name, part)
		if err := registry.ApplyDefaults(store, h); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "tag part %s", part.Name)
		}
		result.Handles[part.Name] = h
	}
	for _, m := range store.All() {
		result.Stats.VertexCount += len(m.Verts)
		result.Stats.FaceCount += len(m.Faces)
	}
	result.Stats.ComposeTime = time.Since(composeStart)

	r.Logger.Info("composed geometry",
		"parts", len(result.Handles),
		"verts", result.Stats.VertexCount,
		"faces", result.Stats.FaceCount,
		"duration", result.Stats.ComposeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Render
	renderStart := time.Now()
	optionsHash := opts.Hash()
	for _, format := range opts.Formats {
		if err := r.renderFormat(ctx, result, optionsHash, format); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderFormat produces one artifact, consulting the cache first.
func (r *Runner) renderFormat(ctx context.Context, result *Result, optionsHash, format string) error {
	key := r.Keyer.ArtifactKey(optionsHash, format)
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		result.Artifacts[format] = data
		result.CacheInfo.ArtifactHits[format] = true
		if format == FormatOBJ {
			return r.renderMTL(ctx, result, optionsHash)
		}
		return nil
	}

	var data []byte
	var err error
	switch format {
	case FormatOBJ:
		data = sink.RenderOBJ(result.Store.All(), "base.mtl")
		if mtlErr := r.renderMTL(ctx, result, optionsHash); mtlErr != nil {
			return mtlErr
		}
	case FormatJSON:
		data, err = sink.RenderJSON(result.Store.All(), sink.JSONMeta{
			Style:  string(result.Config.Style),
			Seed:   result.Seed,
			Levels: result.Config.NumLevels,
		})
	case FormatDOT:
		data = []byte(layout.RoomsToDOT(result.Rooms))
	case FormatSVG:
		data, err = layout.RenderRoomsSVG(result.Rooms)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	if err != nil {
		return err
	}

	result.Artifacts[format] = data
	if cacheErr := r.Cache.Set(ctx, key, data, r.ArtifactTTL); cacheErr != nil {
		r.Logger.Warn("artifact cache write failed", "format", format, "err", cacheErr)
	}
	return nil
}

// renderMTL fills the companion material library for an OBJ artifact.
func (r *Runner) renderMTL(ctx context.Context, result *Result, optionsHash string) error {
	key := r.Keyer.ArtifactKey(optionsHash, "mtl")
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		result.Artifacts["mtl"] = data
		result.CacheInfo.ArtifactHits["mtl"] = true
		return nil
	}

	data := sink.RenderMTL(result.Store.All())
	result.Artifacts["mtl"] = data
	if err := r.Cache.Set(ctx, key, data, r.ArtifactTTL); err != nil {
		r.Logger.Warn("artifact cache write failed", "format", "mtl", "err", err)
	}
	return nil
}
