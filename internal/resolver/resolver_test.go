package resolver

import (
	"path/filepath"
	"testing"

	"github.com/jsbundle/jsbundle/domain"
)

func TestIsExternal(t *testing.T) {
	cases := map[string]bool{
		"./foo":   false,
		"../foo":  false,
		"/foo":    false,
		"lodash":  true,
		"react":   true,
		"@/utils": true,
	}
	for spec, want := range cases {
		if got := IsExternal(spec); got != want {
			t.Errorf("IsExternal(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestResolveRelativeFile(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "entry.js"))

	r := New()
	key, ok, err := r.Resolve(entry, "./utils")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	want := filepath.Clean(filepath.Join("/project", "utils.js"))
	if string(key) != want {
		t.Errorf("got %s, want %s", key, want)
	}
}

func TestResolveAlreadyHasJSSuffix(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "entry.js"))

	r := New()
	key, ok, err := r.Resolve(entry, "./utils.js")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || filepath.Base(string(key)) != "utils.js" {
		t.Errorf("expected utils.js, got %s (ok=%v)", key, ok)
	}
}

// Resolution is pure string joining: it never probes the filesystem, so a
// directory specifier is NOT expanded to an index.js, unlike Node's own
// resolution algorithm. `./lib` resolves to the file `lib.js`.
func TestResolveNoDirectoryIndexExpansion(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "entry.js"))

	r := New()
	key, ok, err := r.Resolve(entry, "./lib")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || filepath.Base(string(key)) != "lib.js" {
		t.Errorf("expected lib.js (no index.js expansion), got %s (ok=%v)", key, ok)
	}
}

func TestResolveExternalSkipped(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "entry.js"))

	r := New()
	_, ok, err := r.Resolve(entry, "lodash")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected external specifier to not resolve")
	}
}

// A specifier pointing at a file that doesn't exist on disk still resolves
// to a canonical key; whether the file is actually there is a concern for
// the module reader, not the resolver.
func TestResolveDoesNotCheckExistence(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "entry.js"))

	r := New()
	key, ok, err := r.Resolve(entry, "./missing")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || filepath.Base(string(key)) != "missing.js" {
		t.Errorf("expected missing.js, got %s (ok=%v)", key, ok)
	}
}

func TestResolveParentDirectory(t *testing.T) {
	entry := domain.ModuleKey(filepath.Join("/project", "src", "entry.js"))

	r := New()
	key, ok, err := r.Resolve(entry, "../shared/util")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Clean(filepath.Join("/project", "shared", "util.js"))
	if !ok || string(key) != want {
		t.Errorf("got %s, want %s (ok=%v)", key, want, ok)
	}
}
