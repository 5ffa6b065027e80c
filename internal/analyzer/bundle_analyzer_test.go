package analyzer

import (
	"testing"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/parser"
)

func parse(t *testing.T, src string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()
	ast, err := p.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	return ast
}

func TestAnalyzeImports(t *testing.T) {
	ast := parse(t, `import Foo, { bar, baz as qux } from './mod';`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(res.Imports))
	}
	imp := res.Imports[0]
	if imp.Specifier != "./mod" {
		t.Errorf("expected specifier ./mod, got %s", imp.Specifier)
	}
	if !imp.Kind.Has(domain.ImportDefault) || !imp.Kind.Has(domain.ImportNamed) {
		t.Errorf("expected default+named kind, got %v", imp.Kind)
	}
	if len(imp.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(imp.Items))
	}
}

func TestAnalyzeExports(t *testing.T) {
	ast := parse(t, `export { foo, bar as baz };
export default function main() {}`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if !res.Exports.HasDefault {
		t.Error("expected HasDefault")
	}
	if len(res.Exports.Names) != 2 {
		t.Fatalf("expected 2 named exports, got %v", res.Exports.Names)
	}
}

func TestAnalyzeCommonJSInteropWarning(t *testing.T) {
	ast := parse(t, `import x from './x';
module.exports = x;`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
}

func TestAnalyzeExportAllWarning(t *testing.T) {
	ast := parse(t, `export * from './utils';`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
}

func TestAnalyzeExportAllTracksReexport(t *testing.T) {
	ast := parse(t, `export * from './utils';`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Reexports) != 1 || res.Reexports[0].Specifier != "./utils" {
		t.Fatalf("expected a reexport of ./utils, got %v", res.Reexports)
	}
}

func TestAnalyzeReexportFrom(t *testing.T) {
	ast := parse(t, `export { foo } from './lib';`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Reexports) != 1 || res.Reexports[0].Specifier != "./lib" {
		t.Fatalf("expected a reexport of ./lib, got %v", res.Reexports)
	}
	if len(res.Exports.Names) != 1 || res.Exports.Names[0] != "foo" {
		t.Fatalf("expected foo in export names, got %v", res.Exports.Names)
	}
}

func TestAnalyzeMultiDeclaratorNamedExport(t *testing.T) {
	ast := parse(t, `export const x = 1, y = 2;`)
	res := NewBundleAnalyzer().Analyze("entry.js", ast)

	if len(res.Exports.Names) != 2 {
		t.Fatalf("expected 2 named exports, got %v", res.Exports.Names)
	}
}
