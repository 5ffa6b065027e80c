package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsbundle/jsbundle/domain"
)

func writeTempModule(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDependencyGraphServiceAnalyzeLinear(t *testing.T) {
	dir := t.TempDir()
	writeTempModule(t, dir, "a.js", `import { b } from './b';
export const a = b;`)
	writeTempModule(t, dir, "b.js", `export const b = 1;`)

	svc := NewDependencyGraphServiceWithDefaults()
	resp, err := svc.Analyze(context.Background(), domain.DependencyGraphRequest{
		Paths: []string{filepath.Join(dir, "a.js")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Graph.NodeCount() != 2 {
		t.Errorf("expected 2 nodes, got %d: %v", resp.Graph.NodeCount(), resp.Graph.GetAllNodeIDs())
	}
	if resp.Analysis.TotalEdges != 1 {
		t.Errorf("expected 1 edge, got %d", resp.Analysis.TotalEdges)
	}
	if resp.Analysis.Circular == nil || resp.Analysis.Circular.HasCircularDependencies {
		t.Errorf("expected no circular dependencies, got %+v", resp.Analysis.Circular)
	}
}

func TestDependencyGraphServiceAnalyzeDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeTempModule(t, dir, "a.js", `import { b } from './b';
export const a = b;`)
	writeTempModule(t, dir, "b.js", `import { a } from './a';
export const b = a;`)

	svc := NewDependencyGraphServiceWithDefaults()
	resp, err := svc.Analyze(context.Background(), domain.DependencyGraphRequest{
		Paths: []string{filepath.Join(dir, "a.js")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Analysis.Circular == nil || !resp.Analysis.Circular.HasCircularDependencies {
		t.Fatalf("expected a circular dependency between a.js and b.js, got %+v", resp.Analysis.Circular)
	}
}

func TestDependencyGraphServiceAnalyzeExcludesExternalByDefault(t *testing.T) {
	dir := t.TempDir()
	writeTempModule(t, dir, "a.js", `import lodash from 'lodash';
console.log(lodash);`)

	svc := NewDependencyGraphServiceWithDefaults()
	resp, err := svc.Analyze(context.Background(), domain.DependencyGraphRequest{
		Paths: []string{filepath.Join(dir, "a.js")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Graph.NodeCount() != 1 {
		t.Errorf("expected external specifier to be excluded, got nodes: %v", resp.Graph.GetAllNodeIDs())
	}
}

func TestDependencyGraphServiceAnalyzeIncludesExternalWhenRequested(t *testing.T) {
	dir := t.TempDir()
	writeTempModule(t, dir, "a.js", `import lodash from 'lodash';
console.log(lodash);`)

	svc := NewDependencyGraphService(true)
	resp, err := svc.Analyze(context.Background(), domain.DependencyGraphRequest{
		Paths: []string{filepath.Join(dir, "a.js")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Graph.NodeCount() != 2 {
		t.Errorf("expected lodash to appear as an external node, got: %v", resp.Graph.GetAllNodeIDs())
	}
	node := resp.Graph.GetNode("lodash")
	if node == nil || !node.IsExternal {
		t.Errorf("expected an external node for lodash, got %+v", node)
	}
}

func TestDependencyGraphServiceAnalyzeSkipsCycleDetectionWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	writeTempModule(t, dir, "a.js", `export const a = 1;`)

	svc := NewDependencyGraphServiceWithDefaults()
	resp, err := svc.Analyze(context.Background(), domain.DependencyGraphRequest{
		Paths:        []string{filepath.Join(dir, "a.js")},
		DetectCycles: domain.BoolPtr(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Analysis.Circular != nil {
		t.Errorf("expected cycle detection to be skipped, got %+v", resp.Analysis.Circular)
	}
}
