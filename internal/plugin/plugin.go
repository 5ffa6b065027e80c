// Package plugin hosts the bundler's plugin hooks. A plugin is identified
// by name in a BundleConfig and resolved against an in-process Registry;
// Go has no way to unmarshal a function out of a config file, so plugins
// live in code and are only ever referenced by name from configuration.
package plugin

import (
	"context"
	"fmt"

	"github.com/jsbundle/jsbundle/domain"
)

// Plugin hooks into the bundle pipeline at three points: once per module
// before its edits are applied, once per module after, and once for the
// whole bundle right before it's written out.
//
// The transform never re-parses: its edits use byte offsets from the AST
// parsed from the module's original source. A PreTransform hook that changes
// rec.Source before or inside an import/export declaration shifts the text
// under those offsets, and the edits then land in the wrong place.
type Plugin struct {
	Name          string
	PreTransform  func(ctx context.Context, rec *domain.ModuleRecord) error
	PostTransform func(ctx context.Context, rec *domain.ModuleRecord) error
	Bundle        func(ctx context.Context, source string) (string, error)
}

// Registry resolves plugin names (as listed in BundleConfig.Plugins) to
// their implementation.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a Registry seeded with the bundler's built-in
// plugins.
func NewRegistry() *Registry {
	r := &Registry{plugins: make(map[string]Plugin)}
	for _, p := range builtins() {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a plugin by name.
func (r *Registry) Register(p Plugin) {
	r.plugins[p.Name] = p
}

// Resolve looks up every name in names, in order, returning an error for
// the first one not found.
func (r *Registry) Resolve(names []string) ([]Plugin, error) {
	resolved := make([]Plugin, 0, len(names))
	for _, name := range names {
		p, ok := r.plugins[name]
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q", name)
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}

// Host sequences a list of resolved plugins through the pipeline's hook
// points, stopping and returning the first error any plugin raises.
type Host struct {
	plugins []Plugin
}

// NewHost creates a Host over the given plugins, applied in order.
func NewHost(plugins []Plugin) *Host {
	return &Host{plugins: plugins}
}

// RunPreTransform runs every plugin's PreTransform hook against rec.
func (h *Host) RunPreTransform(ctx context.Context, rec *domain.ModuleRecord) error {
	for _, p := range h.plugins {
		if p.PreTransform == nil {
			continue
		}
		if err := p.PreTransform(ctx, rec); err != nil {
			return &domain.PluginError{Plugin: p.Name, Hook: "preTransform", Err: err}
		}
	}
	return nil
}

// RunPostTransform runs every plugin's PostTransform hook against rec.
func (h *Host) RunPostTransform(ctx context.Context, rec *domain.ModuleRecord) error {
	for _, p := range h.plugins {
		if p.PostTransform == nil {
			continue
		}
		if err := p.PostTransform(ctx, rec); err != nil {
			return &domain.PluginError{Plugin: p.Name, Hook: "postTransform", Err: err}
		}
	}
	return nil
}

// RunBundle runs every plugin's Bundle hook over the assembled bundle
// source, threading each plugin's output into the next.
func (h *Host) RunBundle(ctx context.Context, source string) (string, error) {
	for _, p := range h.plugins {
		if p.Bundle == nil {
			continue
		}
		out, err := p.Bundle(ctx, source)
		if err != nil {
			return "", &domain.PluginError{Plugin: p.Name, Hook: "bundle", Err: err}
		}
		source = out
	}
	return source, nil
}
