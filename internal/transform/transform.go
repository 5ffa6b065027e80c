// Package transform rewrites a module's ES import/export syntax into the
// synchronous require()-based form the bundler's runtime understands, and
// applies the resulting byte-range edits to produce the module's final
// body.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/parser"
)

// Transformer rewrites one module at a time. root is the project root
// (the process working directory at bundle time); require() targets for
// local modules are emitted relative to it, matching the module table keys
// the emitter builds with the same root (see bundler.Emit).
type Transformer struct {
	root string
}

// New creates a Transformer that emits require() targets relative to root.
func New(root string) *Transformer {
	return &Transformer{root: root}
}

// Transform builds rec.Edits from rec.Imports (already resolved by the
// graph builder) and rec.AST's export declarations, then applies them to
// produce rec.Transformed. It mutates rec in place.
func (tr *Transformer) Transform(rec *domain.ModuleRecord) error {
	rec.Satisfied = make(map[string]bool)

	reexportByByte := make(map[int]domain.Reexport, len(rec.Reexports))
	for _, re := range rec.Reexports {
		reexportByByte[re.AtByte] = re
	}

	edits := make([]domain.Edit, 0, len(rec.Imports))
	for i, imp := range rec.Imports {
		edits = append(edits, tr.importEdit(imp, i))
	}

	exportEdits, appended := tr.exportEdits(rec.AST, rec.Source, reexportByByte, rec.Satisfied)
	edits = append(edits, exportEdits...)

	// Any name the analyzer recorded as exported but that no edit above
	// already satisfies still gets a trailing assignment, so the module's
	// declared export surface and its runtime exports object always match.
	for _, name := range rec.Exports.Names {
		if !rec.Satisfied[name] {
			appended = append(appended, name+"="+name)
			rec.Satisfied[name] = true
		}
	}

	rec.Edits = edits
	rec.AppendedExports = appended
	rec.Transformed = applyEdits(rec.Source, edits, appended)
	rec.State = domain.StateTransformed
	return nil
}

// requireCall renders the require() expression for one dependency: a
// relative-path require() that flows through the runtime's own module
// cache for local specifiers, or an __hostRequire() of the raw specifier
// (left to the host's own module system to resolve) for external ones.
func (tr *Transformer) requireCall(specifier string, resolved domain.ModuleKey) string {
	if resolved == "" {
		return fmt.Sprintf("__hostRequire(%s)", quote(specifier))
	}
	return fmt.Sprintf("require(%s)", quote(domain.RelKey(tr.root, resolved)))
}

func (tr *Transformer) importEdit(imp domain.Import, index int) domain.Edit {
	call := tr.requireCall(imp.Specifier, imp.Resolved)
	modVar := fmt.Sprintf("__mod%d", index)

	var b strings.Builder
	fmt.Fprintf(&b, "var %s = %s;", modVar, call)

	if imp.Kind.Has(domain.ImportSideEffect) {
		return domain.Edit{Start: imp.Span.Start, End: imp.Span.End, Replacement: b.String()}
	}

	// Per §4.3, a declaration may combine a namespace, default, and named
	// specifiers in one statement (`import def, * as ns from 'x'`); branch
	// per item on what it imports rather than assuming every item in the
	// declaration shares the same shape.
	for _, item := range imp.Items {
		switch item.Imported {
		case "*":
			fmt.Fprintf(&b, " var %s = %s;", item.Local, modVar)
		case "default":
			fmt.Fprintf(&b, " var %s = %s.default;", item.Local, modVar)
		default:
			fmt.Fprintf(&b, " var %s = %s.%s;", item.Local, modVar, item.Imported)
		}
	}

	return domain.Edit{Start: imp.Span.Start, End: imp.Span.End, Replacement: b.String()}
}

// exportEdits walks ast for export declarations and builds the edits that
// turn them into `exports.x = ...` assignments (or, for re-exports, a
// require() of the re-exported module). appended collects "name=local"
// pairs that must be assigned after the statement they came from, since an
// `export { foo }` clause exports a binding that still has to be declared
// earlier in the file. source is the module's original text, needed
// verbatim for the anonymous/expression default-export shape.
func (tr *Transformer) exportEdits(ast *parser.Node, source string, reexports map[int]domain.Reexport, satisfied map[string]bool) ([]domain.Edit, []string) {
	var edits []domain.Edit
	var appended []string
	if ast == nil {
		return edits, appended
	}

	ast.Walk(func(node *parser.Node) bool {
		switch node.Type {
		case parser.NodeExportDefaultDeclaration:
			edit, appendedName := tr.defaultExportEdit(node, source)
			edits = append(edits, edit)
			if appendedName != "" {
				appended = append(appended, appendedName)
			}
			satisfied["default"] = true
			return false

		case parser.NodeExportNamedDeclaration:
			if node.Source != nil {
				re := reexports[node.Location.StartByte]
				edits = append(edits, tr.reExportEdit(node, re))
				for _, spec := range node.Specifiers {
					satisfied[spec.Name] = true
				}
			} else if node.Declaration != nil {
				edits = append(edits, tr.stripExportPrefix(node))
				for _, name := range declaredNames(node.Declaration) {
					appended = append(appended, name+"="+name)
					satisfied[name] = true
				}
			} else {
				edits = append(edits, domain.Edit{
					Start: node.Location.StartByte,
					End:   node.Location.EndByte,
				})
				for _, spec := range node.Specifiers {
					local := spec.Name
					if spec.Local != nil {
						local = spec.Local.Name
					}
					appended = append(appended, spec.Name+"="+local)
					satisfied[spec.Name] = true
				}
			}
			return false

		case parser.NodeExportAllDeclaration:
			re := reexports[node.Location.StartByte]
			edits = append(edits, tr.exportAllEdit(node, re))
			return false
		}
		return true
	})

	return edits, appended
}

// declaredNames returns every identifier a declaration introduces: the
// function/class name itself, or one name per non-destructured
// variable_declarator in a `const`/`let`/`var` declaration. A destructured
// declarator (`export const {a} = o`) is skipped rather than guessed at.
func declaredNames(decl *parser.Node) []string {
	if decl == nil {
		return nil
	}
	if decl.Name != "" {
		return []string{decl.Name}
	}
	var names []string
	for _, child := range decl.Children {
		if child.Type == "variable_declarator" && child.Name != "" {
			names = append(names, child.Name)
		}
	}
	return names
}

// namedDeclaration reports whether decl is a function/class declaration
// that keeps its own name (as opposed to an identifier, an anonymous
// function/class, or any other expression).
func namedDeclaration(decl *parser.Node) bool {
	if decl == nil || decl.Name == "" {
		return false
	}
	switch string(decl.Type) {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		return true
	default:
		return false
	}
}

// defaultExportEdit handles the three default-export shapes:
//
//   - a named function/class declaration: strip "export default ", keep
//     the declaration verbatim, and append `exports.default = name;`
//     after it (the binding must exist before it can be assigned).
//   - an identifier, an anonymous function/class, or any other
//     expression: replace the whole statement with
//     `exports.default = <expression-text>;`, where the expression text
//     is the original source span of the declaration's payload.
func (tr *Transformer) defaultExportEdit(node *parser.Node, source string) (domain.Edit, string) {
	if namedDeclaration(node.Declaration) {
		return tr.stripExportPrefix(node), "default=" + node.Declaration.Name
	}

	expr := source
	if node.Declaration != nil {
		expr = source[node.Declaration.Location.StartByte:node.Declaration.Location.EndByte]
	}
	replacement := fmt.Sprintf("exports.default = %s;", expr)
	return domain.Edit{Start: node.Location.StartByte, End: node.Location.EndByte, Replacement: replacement}, ""
}

func (tr *Transformer) stripExportPrefix(node *parser.Node) domain.Edit {
	end := node.Location.EndByte
	if node.Declaration != nil {
		end = node.Declaration.Location.StartByte
	}
	return domain.Edit{Start: node.Location.StartByte, End: end}
}

func (tr *Transformer) reExportEdit(node *parser.Node, re domain.Reexport) domain.Edit {
	call := tr.requireCall(re.Specifier, re.Resolved)
	var b strings.Builder
	fmt.Fprintf(&b, "var __reexport = %s;", call)
	for _, spec := range node.Specifiers {
		local := spec.Name
		if spec.Local != nil {
			local = spec.Local.Name
		}
		fmt.Fprintf(&b, " exports.%s = __reexport.%s;", spec.Name, local)
	}
	return domain.Edit{Start: node.Location.StartByte, End: node.Location.EndByte, Replacement: b.String()}
}

func (tr *Transformer) exportAllEdit(node *parser.Node, re domain.Reexport) domain.Edit {
	call := tr.requireCall(re.Specifier, re.Resolved)
	replacement := fmt.Sprintf("Object.assign(exports, %s);", call)
	return domain.Edit{Start: node.Location.StartByte, End: node.Location.EndByte, Replacement: replacement}
}

func stringLiteralValue(n *parser.Node) string {
	if n == nil {
		return ""
	}
	raw := n.Raw
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

// applyEdits applies non-overlapping edits in descending-start order so
// earlier byte offsets stay valid as later ones are rewritten, then
// appends one `exports.x = y;` statement per entry in appended.
func applyEdits(source string, edits []domain.Edit, appended []string) string {
	sorted := append([]domain.Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	out := source
	for _, e := range sorted {
		out = out[:e.Start] + e.Replacement + out[e.End:]
	}

	var tail strings.Builder
	for _, a := range appended {
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 {
			continue
		}
		fmt.Fprintf(&tail, "\nexports.%s = %s;", parts[0], parts[1])
	}

	return out + tail.String()
}
