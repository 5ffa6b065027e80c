package service

import (
	"context"
	"time"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/analyzer"
	"github.com/jsbundle/jsbundle/internal/graph"
	"github.com/jsbundle/jsbundle/internal/version"
)

// DependencyGraphServiceImpl backs the `jsbundle deps` command. It is a
// thin, read-only view over the same internal/graph discovery the bundler
// itself runs: it never re-implements resolution or analysis, only
// converts the resulting domain.Graph into the domain.DependencyGraph shape
// the text/JSON/DOT formatters and cycle detector consume.
type DependencyGraphServiceImpl struct {
	includeExternal bool
}

// NewDependencyGraphService creates a service with the given external-module
// inclusion policy.
func NewDependencyGraphService(includeExternal bool) *DependencyGraphServiceImpl {
	return &DependencyGraphServiceImpl{includeExternal: includeExternal}
}

// NewDependencyGraphServiceWithDefaults creates a service with external
// modules excluded from the view, matching the `deps` command's default.
func NewDependencyGraphServiceWithDefaults() *DependencyGraphServiceImpl {
	return &DependencyGraphServiceImpl{includeExternal: false}
}

// Analyze discovers every module reachable from req.Paths via
// internal/graph.Builder.Discover, builds the read-only DependencyGraph view
// over the resulting domain.Graph, and runs cycle detection unless
// req.DetectCycles is explicitly false.
func (s *DependencyGraphServiceImpl) Analyze(ctx context.Context, req domain.DependencyGraphRequest) (*domain.DependencyGraphResponse, error) {
	includeExternal := s.includeExternal
	if req.IncludeExternal != nil {
		includeExternal = *req.IncludeExternal
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := graph.New()
	defer builder.Close()

	g, warnings := builder.Discover(req.Paths)

	depGraph := domain.NewDependencyGraphFromGraph(g, includeExternal)

	var circularDeps *domain.CircularDependencyAnalysis
	if req.DetectCycles == nil || *req.DetectCycles {
		cycleDetector := analyzer.NewCircularDependencyDetector()
		circularDeps = cycleDetector.DetectCycles(depGraph)
	}

	analysis := &domain.DependencyAnalysisResult{
		Circular:   circularDeps,
		TotalNodes: depGraph.NodeCount(),
		TotalEdges: depGraph.EdgeCount(),
	}

	warningStrings := make([]string, 0, len(warnings))
	for _, w := range warnings {
		warningStrings = append(warningStrings, w.String())
	}

	return &domain.DependencyGraphResponse{
		Graph:       depGraph,
		Analysis:    analysis,
		Warnings:    warningStrings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}
