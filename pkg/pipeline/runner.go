package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hwidmann/taskcanvas/pkg/assemble"
	"github.com/hwidmann/taskcanvas/pkg/cache"
	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/layout"
	"github.com/hwidmann/taskcanvas/pkg/observability"
	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
	"github.com/hwidmann/taskcanvas/pkg/schema"
)

// Runner executes builds with a shared cache and logger.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same
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

// Build runs the full validate → render → layout → assemble pipeline.
// Schema violations return a *SchemaErrors; figure render failures
// degrade to placeholders and never abort the build.
func (r *Runner) Build(ctx context.Context, cfg map[string]any, bundle render.Bundle, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid build options")
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		bundle.Seed = opts.Seed
	}

	configHash, bundleHash, err := hashes(cfg, bundle)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "hash configuration")
	}
	result := &Result{BuildID: uuid.New(), ConfigHash: configHash}
	docKey := r.Keyer.DocumentKey(configHash, cache.DocumentKeyOpts{BundleHash: bundleHash, Seed: bundle.Seed})

	if !opts.NoCache {
		if doc, ok := r.cachedDocument(ctx, docKey); ok {
			result.Document = doc
			result.CacheInfo.DocumentHit = true
			result.Stats.TaskCount = docTaskCount(doc)
			result.Stats.PageCount = len(doc.Pages)
			result.Stats.FigureCount = len(doc.Figures)
			r.Logger.Info("document cache hit", "pages", len(doc.Pages))
			return result, nil
		}
	}

	// Stage 1: Validate
	validateStart := time.Now()
	observability.Build().OnValidateStart(ctx, taskCount(cfg))
	doc, violations := schema.Build(cfg)
	result.Stats.ValidateTime = time.Since(validateStart)
	observability.Build().OnValidateComplete(ctx, len(violations), result.Stats.ValidateTime)
	if len(violations) > 0 {
		return nil, &SchemaErrors{Violations: violations}
	}
	result.Stats.TaskCount = len(doc.Tasks)

	r.Logger.Info("configuration valid",
		"tasks", len(doc.Tasks),
		"duration", result.Stats.ValidateTime)

	// Stage 2: Render figures
	renderStart := time.Now()
	figures, failures, err := r.renderFigures(ctx, doc, bundle, bundleHash, opts, &result.CacheInfo)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.FigureCount = len(figures)

	r.Logger.Info("rendered figures",
		"count", len(figures),
		"failed", len(failures),
		"duration", result.Stats.RenderTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	observability.Build().OnLayoutStart(ctx, len(doc.Tasks))
	engine, err := layout.NewEngine(bundle)
	if err != nil {
		return nil, err
	}
	units, err := engine.Plan(doc, figures)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Build().OnLayoutComplete(ctx, len(units), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutOverflow, err, "layout")
	}

	r.Logger.Info("planned pages",
		"pages", len(units),
		"duration", result.Stats.LayoutTime)

	// Stage 4: Assemble
	assembleStart := time.Now()
	structural, err := assemble.Assemble(doc, units, figures, bundle.CanvasSize)
	result.Stats.AssembleTime = time.Since(assembleStart)
	observability.Build().OnAssembleComplete(ctx, len(structural.Pages), len(structural.Figures),
		result.Stats.AssembleTime, err)
	if err != nil {
		return nil, err
	}
	markFailures(&structural, failures)
	result.Document = structural
	result.Stats.PageCount = len(structural.Pages)

	if !opts.NoCache {
		r.storeDocument(ctx, docKey, structural)
	}
	return result, nil
}

// renderFigures renders every visualized task's figure concurrently.
// Render-class failures become placeholders recorded in failures; any
// other error (context cancellation, cache corruption) aborts.
func (r *Runner) renderFigures(ctx context.Context, doc problem.Document, bundle render.Bundle, bundleHash string, opts Options, info *CacheInfo) (map[int]render.Figure, map[int]string, error) {
	renderer, err := render.NewRenderer(bundle)
	if err != nil {
		return nil, nil, err
	}

	var mu sync.Mutex
	figures := make(map[int]render.Figure)
	failures := make(map[int]string)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)

	for _, task := range doc.Tasks {
		if task.Viz == nil {
			continue
		}
		g.Go(func() error {
			fig, cached, err := r.renderOne(gctx, renderer, bundle, bundleHash, task, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if !errors.IsRenderError(err) {
					return err
				}
				// Broken geometry degrades to a placeholder; the document
				// still carries every other task.
				r.Logger.Warn("figure failed, using placeholder",
					"task", task.Number, "type", task.Viz.Type, "error", err)
				figures[task.Number] = render.Placeholder(bundle, err)
				failures[task.Number] = errors.UserMessage(err)
				return nil
			}
			figures[task.Number] = fig
			if cached {
				info.FigureHits++
			} else {
				info.FigureMisses++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return figures, failures, nil
}

// renderOne renders a single task figure through the cache.
func (r *Runner) renderOne(ctx context.Context, renderer *render.Renderer, bundle render.Bundle, bundleHash string, task problem.Task, opts Options) (render.Figure, bool, error) {
	specData, err := json.Marshal(task.Viz)
	if err != nil {
		return render.Figure{}, false, errors.Wrap(errors.ErrCodeInternal, err, "marshal visualization spec")
	}
	key := r.Keyer.FigureKey(cache.Hash(specData), cache.FigureKeyOpts{BundleHash: bundleHash})

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var fig render.Figure
			if err := json.Unmarshal(data, &fig); err == nil {
				observability.Caches().OnCacheHit(ctx, "figure")
				return fig, true, nil
			}
			// Corrupt entry: drop it and re-render.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Caches().OnCacheMiss(ctx, "figure")
	}

	start := time.Now()
	observability.Build().OnRenderTaskStart(ctx, task.Number, task.Viz.Type)
	fig, err := renderer.Render(task.Viz)
	observability.Build().OnRenderTaskComplete(ctx, task.Number, task.Viz.Type, time.Since(start), err)
	if err != nil {
		return render.Figure{}, false, err
	}

	if !opts.NoCache {
		if data, err := json.Marshal(fig); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.FigureTTL); err == nil {
				observability.Caches().OnCacheSet(ctx, "figure", len(data))
			}
		}
	}
	return fig, false, nil
}

func (r *Runner) cachedDocument(ctx context.Context, key string) (problem.StructuralDocument, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Caches().OnCacheMiss(ctx, "document")
		return problem.StructuralDocument{}, false
	}
	doc, err := problem.UnmarshalStructural(data)
	if err != nil {
		_ = r.Cache.Delete(ctx, key)
		observability.Caches().OnCacheMiss(ctx, "document")
		return problem.StructuralDocument{}, false
	}
	observability.Caches().OnCacheHit(ctx, "document")
	return doc, true
}

func (r *Runner) storeDocument(ctx context.Context, key string, doc problem.StructuralDocument) {
	data, err := problem.MarshalStructural(doc)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DocumentTTL); err != nil {
		r.Logger.Warn("document cache write failed", "error", err)
		return
	}
	observability.Caches().OnCacheSet(ctx, "document", len(data))
}

// markFailures flags placeholder figures in the assembled document.
func markFailures(doc *problem.StructuralDocument, failures map[int]string) {
	for number, msg := range failures {
		ref := layout.FigureRef(number)
		fig, ok := doc.Figures[ref]
		if !ok {
			continue
		}
		fig.Failed = true
		fig.Error = msg
		doc.Figures[ref] = fig
	}
}

// hashes derives the content hashes used as cache keys.
func hashes(cfg map[string]any, bundle render.Bundle) (configHash, bundleHash string, err error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return "", "", err
	}
	bundleData, err := json.Marshal(bundle)
	if err != nil {
		return "", "", err
	}
	return cache.Hash(cfgData), cache.Hash(bundleData), nil
}

// docTaskCount counts distinct tasks across a document's sections. Long
// tasks span several pages and paired shorts share one, so neither pages
// nor sections map one-to-one to tasks.
func docTaskCount(doc problem.StructuralDocument) int {
	seen := make(map[int]bool)
	for _, page := range doc.Pages {
		for _, section := range page.Sections {
			seen[section.Task] = true
		}
	}
	return len(seen)
}

func taskCount(cfg map[string]any) int {
	tasks, ok := cfg["tasks"].([]any)
	if !ok {
		return 0
	}
	return len(tasks)
}
