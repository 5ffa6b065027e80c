// Package domain holds the shared record shapes passed between the
// resolver, parser, analyzer, graph, transform, plugin, and bundler
// packages. None of these types carry behavior beyond small invariant
// helpers; the packages that build and consume them own the logic.
package domain

import "github.com/jsbundle/jsbundle/internal/parser"

// ModuleKey is a canonical module identifier: an absolute, `.js`-suffixed
// filesystem path. Two imports that resolve to the same file resolve to
// the same ModuleKey.
type ModuleKey string

// SourceLocation describes a position range in a source file.
type SourceLocation struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// Edit is a single positional rewrite: replace the byte range [Start, End)
// of a module's source with Replacement. Within one ModuleRecord, edits
// are pairwise non-overlapping and Start <= End always holds.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ImportKind is a bitset describing the shape of a single import
// declaration; a declaration may combine a default specifier with named or
// namespace specifiers (e.g. `import Foo, { bar } from './x'`).
type ImportKind uint8

const (
	ImportDefault ImportKind = 1 << iota
	ImportNamed
	ImportNamespace
	ImportSideEffect
	ImportDynamic
)

// Has reports whether kind includes the given flag.
func (k ImportKind) Has(flag ImportKind) bool {
	return k&flag != 0
}

// ImportItem is one named binding pulled out of a module.
type ImportItem struct {
	Imported string
	Local    string
}

// Import is a single import declaration discovered by the analyzer.
type Import struct {
	Specifier string
	Resolved  ModuleKey // empty when Specifier classifies as external
	Kind      ImportKind
	Items     []ImportItem
	Span      Edit // Start/End cover the whole declaration; Replacement unused here
}

// Exports is the set of names a module makes available, derived from its
// export declarations.
type Exports struct {
	Names      []string
	HasDefault bool
}

// Reexport is a dependency introduced by `export { a } from S` or
// `export * from S`. It is tracked separately from Import because the
// transform stage emits its require() call inline with the rewritten export
// statement rather than as a standalone hoisted statement, but the graph
// builder must still discover and resolve it like any other local
// specifier so the re-exported module ends up in the bundle.
type Reexport struct {
	Specifier string
	Resolved  ModuleKey // empty when Specifier classifies as external
	AtByte    int        // StartByte of the export declaration, used to match a Reexport back to the AST node the transformer is rewriting
}

// ModuleState tracks a ModuleRecord's progress through the pipeline.
type ModuleState int

const (
	StateDiscovered ModuleState = iota
	StateParsed
	StateAnalyzed
	StateTransformed
	StateEmitted
)

func (s ModuleState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateParsed:
		return "parsed"
	case StateAnalyzed:
		return "analyzed"
	case StateTransformed:
		return "transformed"
	case StateEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}

// ModuleRecord is the unit of work threaded through discovery, parsing,
// analysis, transform, and emission.
type ModuleRecord struct {
	Id     int
	Key    ModuleKey
	Source string
	AST    *parser.Node

	Imports   []Import
	Reexports []Reexport
	Exports   Exports
	Edits     []Edit

	// Transformed is the module body after edits have been applied and
	// after trailing `exports.x = x;` statements have been appended for
	// every export name not already covered by an edit.
	Transformed string

	// AppendedExports lists the trailing assignments the transformer
	// appended, one "name=local" pair per `exports.name = local;` statement
	// (as opposed to exports rewritten in-place by an edit).
	AppendedExports []string

	// Satisfied tracks, by export name, whether an edit or an appended
	// statement already emits an `exports.x = ...` assignment for it.
	Satisfied map[string]bool

	State ModuleState
}

// AnalyzerWarning is a non-fatal observation surfaced during analysis (an
// `export * from` re-export, or a CommonJS `module.exports`/`exports.x`
// assignment mixed into an otherwise ESM file). It does not stop the
// pipeline.
type AnalyzerWarning struct {
	Module  ModuleKey
	Message string
}

func (w AnalyzerWarning) String() string {
	return string(w.Module) + ": " + w.Message
}

// OutputFormat selects how the `deps` command renders a dependency graph.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatDOT  OutputFormat = "dot"
)

// BoolPtr returns a pointer to b, for optional boolean request fields.
func BoolPtr(b bool) *bool {
	return &b
}
