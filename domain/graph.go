package domain

import (
	"path/filepath"
	"strings"
)

// Graph is the bundler's own dependency graph: every discovered
// ModuleRecord keyed by its canonical ModuleKey, plus Order, the
// contiguous first-seen discovery order that ModuleRecord.Id indexes into.
// Unlike DependencyGraph (built for the `deps` introspection command),
// Graph carries the full module body through the pipeline rather than
// just its metadata.
type Graph struct {
	Modules map[ModuleKey]*ModuleRecord
	Order   []ModuleKey
	Entry   ModuleKey
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{Modules: make(map[ModuleKey]*ModuleRecord)}
}

// Add registers a module in discovery order, assigning it the next
// contiguous Id. Re-adding an already-known key is a no-op.
func (g *Graph) Add(rec *ModuleRecord) {
	if _, ok := g.Modules[rec.Key]; ok {
		return
	}
	rec.Id = len(g.Order)
	g.Modules[rec.Key] = rec
	g.Order = append(g.Order, rec.Key)
}

// Get returns the record for key, or nil if it hasn't been discovered.
func (g *Graph) Get(key ModuleKey) *ModuleRecord {
	return g.Modules[key]
}

// Has reports whether key has already been discovered.
func (g *Graph) Has(key ModuleKey) bool {
	_, ok := g.Modules[key]
	return ok
}

// RelKey rewrites an absolute canonical key into the working-directory
// relative, "./"-prefixed form used consistently by both the emitted
// module table and every require() call that targets it, so a lookup by
// one always matches a key written by the other. root is the process
// working directory a bundle call was invoked from.
func RelKey(root string, key ModuleKey) string {
	rel, err := filepath.Rel(root, string(key))
	if err != nil {
		rel = string(key)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
