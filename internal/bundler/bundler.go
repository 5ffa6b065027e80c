// Package bundler orchestrates discovery, transform, and emission into a
// single synchronous bundle file.
package bundler

import (
	"context"
	"os"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/graph"
	"github.com/jsbundle/jsbundle/internal/plugin"
	"github.com/jsbundle/jsbundle/internal/transform"
)

// Bundler ties the pipeline stages together for one bundle invocation.
type Bundler struct {
	config  *domain.BundleConfig
	host    *plugin.Host
	onEach  func(rec *domain.ModuleRecord) // progress callback, optional
}

// New creates a Bundler from cfg, resolving cfg.Plugins against registry.
func New(cfg *domain.BundleConfig, registry *plugin.Registry) (*Bundler, error) {
	resolved, err := registry.Resolve(cfg.Plugins)
	if err != nil {
		return nil, err
	}
	return &Bundler{config: cfg, host: plugin.NewHost(resolved)}, nil
}

// OnEachModule registers a callback invoked once per module as it finishes
// transforming, used to drive a progress bar.
func (b *Bundler) OnEachModule(fn func(rec *domain.ModuleRecord)) {
	b.onEach = fn
}

// Result is the product of a successful Run.
type Result struct {
	Source   string
	Graph    *domain.Graph
	Warnings []domain.AnalyzerWarning
}

// Run discovers the dependency graph rooted at cfg.Entry, transforms every
// module, runs plugin hooks, and emits the final bundle text. It does not
// write anything to disk; callers write Result.Source wherever they like.
func (b *Bundler) Run(ctx context.Context) (*Result, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	builder := graph.New()
	defer builder.Close()

	g, warnings, err := builder.Build(b.config.Entry)
	if err != nil {
		return nil, err
	}

	for _, key := range g.Order {
		rec := g.Modules[key]
		if err := b.host.RunPreTransform(ctx, rec); err != nil {
			return nil, err
		}
	}

	if err := transform.ParallelTransform(ctx, g, root, b.config.Concurrency); err != nil {
		return nil, err
	}

	for _, key := range g.Order {
		rec := g.Modules[key]
		if err := b.host.RunPostTransform(ctx, rec); err != nil {
			return nil, err
		}
		if b.onEach != nil {
			b.onEach(rec)
		}
	}

	source := Emit(g, root)
	if b.config.Minify {
		source = minify(source)
	}

	source, err = b.host.RunBundle(ctx, source)
	if err != nil {
		return nil, err
	}

	return &Result{Source: source, Graph: g, Warnings: warnings}, nil
}
