// Package graph discovers a module's transitive dependencies by walking
// import declarations depth-first from an entry point, building the
// domain.Graph the transform and bundler stages operate on.
package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/analyzer"
	"github.com/jsbundle/jsbundle/internal/parser"
	"github.com/jsbundle/jsbundle/internal/resolver"
)

// Builder discovers and parses every module reachable from an entry file.
type Builder struct {
	resolver *resolver.Resolver
	parser   *parser.Parser
	analyzer *analyzer.BundleAnalyzer
}

// New creates a Builder.
func New() *Builder {
	return &Builder{
		resolver: resolver.New(),
		parser:   parser.NewParser(),
		analyzer: analyzer.NewBundleAnalyzer(),
	}
}

// Close releases the underlying parser.
func (b *Builder) Close() {
	b.parser.Close()
}

// Build discovers every module reachable from entry and returns the
// resulting Graph. Cycles are tolerated: a module already in the graph
// (even mid-discovery) is never re-visited. entry is canonicalized
// (absolute, cleaned) before discovery starts, the same way resolver.Resolve
// canonicalizes every dependency it resolves — otherwise a module that
// imports the entry back would resolve to the entry's absolute key while
// g.Entry still held the raw (often relative) one, producing a second
// record for the same file instead of closing the cycle.
func (b *Builder) Build(entry string) (*domain.Graph, []domain.AnalyzerWarning, error) {
	key, err := canonicalize(entry)
	if err != nil {
		return nil, nil, &domain.UnresolvableSpecifierError{Specifier: entry}
	}

	g := domain.NewGraph()
	g.Entry = key

	warnings, err := b.discover(g, []domain.ModuleKey{key}, true)
	if err != nil {
		return nil, warnings, fmt.Errorf("building dependency graph from %s: %w", entry, err)
	}
	return g, warnings, nil
}

// Discover builds a Graph from every root in roots without treating a
// missing or unparseable root as fatal: the `deps` introspection command
// scans whatever files it finds on disk, some of which may not be valid
// entry points, and a best-effort view is more useful than aborting on the
// first bad file. Read and parse failures are folded into the returned
// warnings rather than stopping discovery; resolution, recursion, and
// cycle tolerance otherwise behave exactly as Build's do.
func (b *Builder) Discover(roots []string) (g *domain.Graph, warnings []domain.AnalyzerWarning) {
	g = domain.NewGraph()

	keys := make([]domain.ModuleKey, 0, len(roots))
	for _, root := range roots {
		key, err := canonicalize(root)
		if err != nil {
			warnings = append(warnings, domain.AnalyzerWarning{
				Module:  domain.ModuleKey(root),
				Message: (&domain.UnresolvableSpecifierError{Specifier: root}).Error(),
			})
			continue
		}
		keys = append(keys, key)
	}

	// fatal is always false here: discover can only return an error when
	// fatal is true, so the error is unreachable for Discover's own roots.
	warnings2, _ := b.discover(g, keys, false)
	return g, append(warnings, warnings2...)
}

// discover runs the shared depth-first walk from each of roots into g.
// When fatal is true (the bundler's own single-entry Build), a read or
// parse failure aborts discovery and the error is returned. When fatal is
// false (the multi-root Discover used by `deps`), the same failures are
// recorded as warnings and discovery continues with whatever roots remain.
func (b *Builder) discover(g *domain.Graph, roots []domain.ModuleKey, fatal bool) ([]domain.AnalyzerWarning, error) {
	var warnings []domain.AnalyzerWarning
	visiting := make(map[domain.ModuleKey]bool)

	var visit func(key domain.ModuleKey) error
	visit = func(key domain.ModuleKey) error {
		if g.Has(key) {
			return nil
		}
		if visiting[key] {
			return nil // cycle: the other side of the edge already owns discovery
		}
		visiting[key] = true
		defer delete(visiting, key)

		source, err := os.ReadFile(string(key))
		if err != nil {
			readErr := &domain.ModuleReadError{Key: key, Err: err}
			if fatal {
				return readErr
			}
			warnings = append(warnings, domain.AnalyzerWarning{Module: key, Message: readErr.Error()})
			return nil
		}

		ast, err := b.parser.ParseFile(string(key), source)
		if err != nil {
			parseErr := &domain.ParseError{Key: key, Err: err}
			if fatal {
				return parseErr
			}
			warnings = append(warnings, domain.AnalyzerWarning{Module: key, Message: parseErr.Error()})
			return nil
		}

		result := b.analyzer.Analyze(key, ast)
		warnings = append(warnings, result.Warnings...)

		rec := &domain.ModuleRecord{
			Key:       key,
			Source:    string(source),
			AST:       ast,
			Imports:   result.Imports,
			Reexports: result.Reexports,
			Exports:   result.Exports,
			State:     domain.StateAnalyzed,
		}
		g.Add(rec)

		for i := range rec.Imports {
			imp := &rec.Imports[i]
			resolved, ok, err := b.resolver.Resolve(key, imp.Specifier)
			if err != nil {
				// A specifier that can't even be joined into a path is
				// logged and left unfollowed; the import is still
				// rewritten in place and fails at runtime if ever
				// actually required.
				warnings = append(warnings, domain.AnalyzerWarning{Module: key, Message: err.Error()})
				continue
			}
			if !ok {
				continue // external package: left unresolved, require() passes the specifier through
			}
			imp.Resolved = resolved
			if err := visit(resolved); err != nil {
				return err
			}
		}

		for i := range rec.Reexports {
			re := &rec.Reexports[i]
			resolved, ok, err := b.resolver.Resolve(key, re.Specifier)
			if err != nil {
				warnings = append(warnings, domain.AnalyzerWarning{Module: key, Message: err.Error()})
				continue
			}
			if !ok {
				continue // external re-export source: left unresolved
			}
			re.Resolved = resolved
			if err := visit(resolved); err != nil {
				return err
			}
		}

		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return warnings, err
		}
	}

	return warnings, nil
}

// canonicalize makes path absolute and clean, matching the form
// resolver.Resolve produces for every dependency it resolves.
func canonicalize(path string) (domain.ModuleKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return domain.ModuleKey(filepath.Clean(abs)), nil
}
