package bundler

import (
	"fmt"
	"strings"

	"github.com/jsbundle/jsbundle/domain"
)

// runtimePrelude is the synchronous CommonJS-style loader every bundle
// ships with: a module table keyed by each module's "./"-relative path
// (domain.RelKey against the working directory), a cache so a module
// body runs at most once, and a require() that populates the cache before
// executing the target module's body (so a require cycle sees the
// partially-populated exports object of the module already in progress,
// rather than recursing forever). __hostRequire captures whatever
// `require` the enclosing script already had in scope (Node's own, when
// the bundle runs as a CommonJS module) before this IIFE's local `require`
// parameter ever shadows it, so external package specifiers can still
// fall through to the host's own module system.
const runtimePrelude = `(function () {
  var __hostRequire = typeof require === "function" ? require : function (key) {
    throw new Error("Module not found: " + key);
  };

  var __modules = {};
  var __cache = {};

  function __define(key, factory) {
    __modules[key] = factory;
  }

  function __require(key) {
    if (__cache[key]) {
      return __cache[key].exports;
    }
    var module = { exports: {} };
    __cache[key] = module;
    var factory = __modules[key];
    if (!factory) {
      throw new Error("Module not found: " + key);
    }
    factory(module, module.exports, __require);
    return module.exports;
  }
`

const runtimeTrailer = `
})();
`

// Emit assembles the final bundle: the runtime prelude, one __define call
// per transformed module (in discovery order: the entry module first, then
// its dependencies in depth-first, first-seen order), and an invocation of
// the entry module. root is
// the working directory the module table's keys (and every require() call
// transform.Transformer emitted) are made relative to, so lookups agree.
func Emit(g *domain.Graph, root string) string {
	var b strings.Builder
	b.WriteString(runtimePrelude)

	for _, key := range g.Order {
		rec := g.Modules[key]
		fmt.Fprintf(&b, "\n  __define(%s, function (module, exports, require) {\n", quote(domain.RelKey(root, key)))
		writeIndented(&b, rec.Transformed, "    ")
		b.WriteString("\n  });\n")
	}

	fmt.Fprintf(&b, "\n  __require(%s);\n", quote(domain.RelKey(root, g.Entry)))
	b.WriteString(runtimeTrailer)

	return b.String()
}

func writeIndented(b *strings.Builder, source, indent string) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}
