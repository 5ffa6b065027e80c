// Package resolver turns an import specifier written in a module's source
// into either a canonical domain.ModuleKey on disk or a classification as
// an external package the bundle does not ship. Resolution is pure string
// manipulation: it never touches the filesystem, tries alternate
// extensions, or expands a directory to its index file. A specifier that
// points at a file that doesn't actually exist still resolves; the graph
// builder discovers that when it tries to read the file.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/jsbundle/jsbundle/domain"
)

// Resolver resolves relative and absolute specifiers against a module's
// importer path. Bare specifiers (package names) are classified as
// external and never touch disk.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// IsExternal reports whether specifier names an external package rather
// than a project-relative file: anything not starting with "./", "../",
// or "/".
func IsExternal(specifier string) bool {
	return !strings.HasPrefix(specifier, "./") &&
		!strings.HasPrefix(specifier, "../") &&
		!strings.HasPrefix(specifier, "/")
}

// Resolve resolves specifier, written inside the module at fromKey, to a
// canonical ModuleKey: it joins the directory component of fromKey with
// specifier, appends ".js" if no ".js" suffix is already present, and
// cleans the result to an absolute path. It returns ok=false (no error) if
// specifier is external. A non-nil error means the path itself could not
// be joined/canonicalized (not that the target file is missing — that
// surfaces later as a ModuleReadError when the graph builder tries to
// read it).
func (r *Resolver) Resolve(fromKey domain.ModuleKey, specifier string) (domain.ModuleKey, bool, error) {
	if IsExternal(specifier) {
		return "", false, nil
	}

	joined := filepath.Join(filepath.Dir(string(fromKey)), specifier)
	if !strings.HasSuffix(joined, ".js") {
		joined += ".js"
	}

	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", false, &domain.UnresolvableSpecifierError{Importer: fromKey, Specifier: specifier}
	}

	return domain.ModuleKey(filepath.Clean(abs)), true, nil
}
