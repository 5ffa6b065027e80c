package transform

import (
	"strings"
	"testing"

	"github.com/jsbundle/jsbundle/domain"
	"github.com/jsbundle/jsbundle/internal/parser"
)

func buildRecord(t *testing.T, source string, imports []domain.Import) *domain.ModuleRecord {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()
	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatal(err)
	}
	return &domain.ModuleRecord{Key: "entry.js", Source: source, AST: ast, Imports: imports}
}

func TestTransformDefaultImport(t *testing.T) {
	src := `import Foo from './foo';
console.log(Foo);`
	rec := buildRecord(t, src, []domain.Import{{
		Specifier: "./foo",
		Resolved:  "/abs/foo.js",
		Kind:      domain.ImportDefault,
		Items:     []domain.ImportItem{{Imported: "default", Local: "Foo"}},
		Span:      domain.Edit{Start: 0, End: len("import Foo from './foo';")},
	}})

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, `require("./foo.js")`) {
		t.Errorf("expected require call, got: %s", rec.Transformed)
	}
	if !strings.Contains(rec.Transformed, "Foo = __mod0.default") {
		t.Errorf("expected default binding, got: %s", rec.Transformed)
	}
}

func TestTransformCombinedDefaultAndNamespaceImport(t *testing.T) {
	src := `import def, * as ns from './foo';
console.log(def, ns);`
	rec := buildRecord(t, src, []domain.Import{{
		Specifier: "./foo",
		Resolved:  "/abs/foo.js",
		Kind:      domain.ImportDefault | domain.ImportNamespace,
		Items: []domain.ImportItem{
			{Imported: "default", Local: "def"},
			{Imported: "*", Local: "ns"},
		},
		Span: domain.Edit{Start: 0, End: len("import def, * as ns from './foo';")},
	}})

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, "var def = __mod0.default;") {
		t.Errorf("expected default binding bound to .default, got: %s", rec.Transformed)
	}
	if !strings.Contains(rec.Transformed, "var ns = __mod0;") {
		t.Errorf("expected namespace binding bound to the whole module, got: %s", rec.Transformed)
	}
}

func TestTransformNamedExport(t *testing.T) {
	src := `const foo = 1;
export { foo };`
	rec := buildRecord(t, src, nil)

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, "exports.foo = foo;") {
		t.Errorf("expected exports.foo assignment, got: %s", rec.Transformed)
	}
}

func TestTransformExportDefaultFunction(t *testing.T) {
	src := `export default function greet() {}`
	rec := buildRecord(t, src, nil)

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, "function greet() {}") {
		t.Errorf("expected function kept, got: %s", rec.Transformed)
	}
	if !strings.Contains(rec.Transformed, "exports.default = greet;") {
		t.Errorf("expected default export assignment, got: %s", rec.Transformed)
	}
}

func TestTransformExportDefaultExpression(t *testing.T) {
	src := `export default { a: 1 };`
	rec := buildRecord(t, src, nil)

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, "exports.default = { a: 1 };") {
		t.Errorf("expected inline default export assignment, got: %s", rec.Transformed)
	}
}

func TestTransformMultiDeclaratorNamedExport(t *testing.T) {
	src := `export const x = 1, y = 2;`
	rec := buildRecord(t, src, nil)

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, "exports.x = x;") || !strings.Contains(rec.Transformed, "exports.y = y;") {
		t.Errorf("expected both x and y exported, got: %s", rec.Transformed)
	}
}

func TestTransformReExportFrom(t *testing.T) {
	src := `export { foo } from './lib';`
	rec := buildRecord(t, src, nil)
	rec.Reexports = []domain.Reexport{{
		Specifier: "./lib",
		Resolved:  "/abs/lib.js",
		AtByte:    0,
	}}

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, `require("./lib.js")`) {
		t.Errorf("expected require of re-exported module, got: %s", rec.Transformed)
	}
	if !strings.Contains(rec.Transformed, "exports.foo = __reexport.foo;") {
		t.Errorf("expected re-export assignment, got: %s", rec.Transformed)
	}
	if strings.Contains(rec.Transformed, "exports.foo = foo;") {
		t.Errorf("re-export should not also get a spurious local assignment, got: %s", rec.Transformed)
	}
}

func TestTransformExportAllFrom(t *testing.T) {
	src := `export * from './lib';`
	rec := buildRecord(t, src, nil)
	rec.Reexports = []domain.Reexport{{
		Specifier: "./lib",
		Resolved:  "/abs/lib.js",
		AtByte:    0,
	}}

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, `Object.assign(exports, require("./lib.js"));`) {
		t.Errorf("expected Object.assign re-export, got: %s", rec.Transformed)
	}
}

func TestTransformExternalImportUsesHostRequire(t *testing.T) {
	src := `import lodash from 'lodash';
console.log(lodash);`
	rec := buildRecord(t, src, []domain.Import{{
		Specifier: "lodash",
		Resolved:  "",
		Kind:      domain.ImportDefault,
		Items:     []domain.ImportItem{{Imported: "default", Local: "lodash"}},
		Span:      domain.Edit{Start: 0, End: len("import lodash from 'lodash';")},
	}})

	if err := New("/abs").Transform(rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Transformed, `__hostRequire("lodash")`) {
		t.Errorf("expected external specifier routed through __hostRequire, got: %s", rec.Transformed)
	}
	if strings.Contains(rec.Transformed, `require("lodash")`) && !strings.Contains(rec.Transformed, `__hostRequire`) {
		t.Errorf("external specifier should not be required directly, got: %s", rec.Transformed)
	}
}
