package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ripple/pkg/cache"
	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Each call compiles its own graph, so multiple
// goroutines can safely share one Runner with different options.
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

// Execute runs the complete parse → build → eval → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	logger := opts.Logger.With("run", uuid.NewString()[:8])

	result, err := r.evaluate(ctx, logger, &opts)
	if err != nil {
		return nil, err
	}

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Program, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Evaluate runs parse → build → eval without rendering.
func (r *Runner) Evaluate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	logger := opts.Logger.With("run", uuid.NewString()[:8])
	return r.evaluate(ctx, logger, &opts)
}

// evaluate runs the uncached stages: parse, build, and eval.
func (r *Runner) evaluate(ctx context.Context, logger *log.Logger, opts *Options) (*Result, error) {
	result := &Result{
		ScriptHash: cache.Hash([]byte(opts.Source)),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Name)
	script, err := expr.Parse(opts.Source)
	result.Stats.ParseTime = time.Since(parseStart)
	stmts := 0
	if script != nil {
		stmts = len(script.Stmts)
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Name, stmts, result.Stats.ParseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.StmtCount = stmts

	// Stage 2: Build
	buildStart := time.Now()
	program, err := expr.Build(script)
	result.Stats.BuildTime = time.Since(buildStart)
	nodes := 0
	if program != nil {
		nodes = len(program.InputNames()) + len(program.Names())
	}
	observability.Pipeline().OnBuildComplete(ctx, opts.Name, nodes, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Program = program
	result.Stats.NodeCount = nodes

	logger.Info("built graph",
		"statements", stmts,
		"inputs", len(program.InputNames()),
		"derived", len(program.Names()),
		"duration", result.Stats.ParseTime+result.Stats.BuildTime)

	// Stage 3: Eval
	evalStart := time.Now()
	values, err := evalValues(program, opts)
	result.Stats.EvalTime = time.Since(evalStart)
	observability.Pipeline().OnEvalComplete(ctx, opts.Name, len(values), result.Stats.EvalTime, err)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	result.Values = values

	logger.Info("evaluated script",
		"values", len(values),
		"duration", result.Stats.EvalTime)

	return result, nil
}

// evalValues applies input overrides and pulls the reported values.
func evalValues(p *expr.Program, opts *Options) ([]expr.NamedValue, error) {
	for name, v := range opts.Sets {
		if err := p.SetInput(name, v); err != nil {
			return nil, err
		}
	}
	if len(opts.Only) == 0 {
		return p.Eval(), nil
	}
	out := make([]expr.NamedValue, len(opts.Only))
	for i, name := range opts.Only {
		v, err := p.Value(name)
		if err != nil {
			return nil, err
		}
		out[i] = expr.NamedValue{Name: name, Value: v}
	}
	return out, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
// The program must be the one compiled from opts.Source: cache keys are
// derived from the source text, not from the graph.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *expr.Program, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	scriptHash := cache.Hash([]byte(opts.Source))

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(ctx, p, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p *expr.Program, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, opts)
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
