package analyzer

import (
	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/parser"
)

// BundleAnalyzer walks a parsed module and extracts the import/export
// surface the bundler's transform stage needs: every import declaration
// (so the graph builder can discover dependencies and the transform stage
// can rewrite them into require() calls), every exported name (so the
// transform stage knows what to attach to the module's exports object),
// and any CommonJS interop it can't safely rewrite in place.
type BundleAnalyzer struct{}

// NewBundleAnalyzer creates a BundleAnalyzer.
func NewBundleAnalyzer() *BundleAnalyzer {
	return &BundleAnalyzer{}
}

// Result is everything the transform stage needs out of one module's AST.
type Result struct {
	Imports   []domain.Import
	Reexports []domain.Reexport
	Exports   domain.Exports
	Warnings  []domain.AnalyzerWarning
}

// Analyze walks ast and builds a Result. key identifies the module being
// analyzed, for attribution in warnings.
func (a *BundleAnalyzer) Analyze(key domain.ModuleKey, ast *parser.Node) *Result {
	res := &Result{}
	if ast == nil {
		return res
	}

	ast.Walk(func(node *parser.Node) bool {
		switch node.Type {
		case parser.NodeImportDeclaration:
			if imp := a.buildImport(node); imp != nil {
				res.Imports = append(res.Imports, *imp)
			}
			return false

		case parser.NodeExportNamedDeclaration:
			a.collectNamedExport(node, res)
			if node.Source != nil {
				res.Reexports = append(res.Reexports, domain.Reexport{
					Specifier: stringLiteralValue(node.Source),
					AtByte:    node.Location.StartByte,
				})
			}
			return false

		case parser.NodeExportDefaultDeclaration:
			res.Exports.HasDefault = true
			return false

		case parser.NodeExportAllDeclaration:
			if node.Source != nil {
				res.Warnings = append(res.Warnings, domain.AnalyzerWarning{
					Module:  key,
					Message: "export * from re-export widens the module's export surface at bundle time",
				})
				res.Reexports = append(res.Reexports, domain.Reexport{
					Specifier: stringLiteralValue(node.Source),
					AtByte:    node.Location.StartByte,
				})
			}
			return false

		case parser.NodeAssignmentExpression:
			a.checkCommonJSInterop(key, node, res)

		case parser.NodeCallExpression:
			a.checkBareRequire(key, node, res)
		}
		return true
	})

	return res
}

func (a *BundleAnalyzer) buildImport(node *parser.Node) *domain.Import {
	source := stringLiteralValue(node.Source)
	if source == "" {
		return nil
	}

	imp := &domain.Import{
		Specifier: source,
		Span: domain.Edit{
			Start: node.Location.StartByte,
			End:   node.Location.EndByte,
		},
	}

	if len(node.Specifiers) == 0 {
		imp.Kind = domain.ImportSideEffect
		return imp
	}

	for _, spec := range node.Specifiers {
		switch spec.Type {
		case parser.NodeImportDefaultSpecifier:
			imp.Kind |= domain.ImportDefault
			imp.Items = append(imp.Items, domain.ImportItem{Imported: "default", Local: spec.Name})

		case parser.NodeImportNamespaceSpecifier:
			imp.Kind |= domain.ImportNamespace
			imp.Items = append(imp.Items, domain.ImportItem{Imported: "*", Local: spec.Name})

		case parser.NodeImportSpecifier:
			imp.Kind |= domain.ImportNamed
			imported := spec.Name
			if spec.Imported != nil {
				imported = spec.Imported.Name
			}
			imp.Items = append(imp.Items, domain.ImportItem{Imported: imported, Local: spec.Name})
		}
	}

	return imp
}

func (a *BundleAnalyzer) collectNamedExport(node *parser.Node, res *Result) {
	if node.Declaration != nil {
		res.Exports.Names = append(res.Exports.Names, declaredNames(node.Declaration)...)
	}
	for _, spec := range node.Specifiers {
		res.Exports.Names = append(res.Exports.Names, spec.Name)
	}
}

// declaredNames returns every identifier a declaration introduces:
// the function/class name itself, or one name per non-destructured
// variable_declarator in a `const`/`let`/`var` declaration (`export const
// x = 1, y = 2` exports both x and y; a destructured declarator is
// deliberately skipped rather than guessed at).
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

// checkCommonJSInterop flags module.exports / exports.x assignments and
// require() calls mixed into an ESM file, which the transform stage leaves
// untouched rather than trying to rewrite.
func (a *BundleAnalyzer) checkCommonJSInterop(key domain.ModuleKey, node *parser.Node, res *Result) {
	if node.Left == nil || node.Left.Type != parser.NodeMemberExpression {
		return
	}
	if node.Left.Object == nil || node.Left.Object.Type != parser.NodeIdentifier {
		return
	}

	switch node.Left.Object.Name {
	case "module":
		if node.Left.Property != nil && node.Left.Property.Name == "exports" {
			res.Warnings = append(res.Warnings, domain.AnalyzerWarning{
				Module:  key,
				Message: "module.exports assignment found alongside ES module syntax",
			})
		}
	case "exports":
		res.Warnings = append(res.Warnings, domain.AnalyzerWarning{
			Module:  key,
			Message: "exports." + propertyName(node.Left.Property) + " assignment found alongside ES module syntax",
		})
	}
}

func (a *BundleAnalyzer) checkBareRequire(key domain.ModuleKey, node *parser.Node, res *Result) {
	if node.Callee != nil && node.Callee.Type == parser.NodeIdentifier && node.Callee.Name == "require" {
		res.Warnings = append(res.Warnings, domain.AnalyzerWarning{
			Module:  key,
			Message: "require() call found alongside ES module syntax",
		})
	}
}

func propertyName(n *parser.Node) string {
	if n == nil {
		return ""
	}
	return n.Name
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
