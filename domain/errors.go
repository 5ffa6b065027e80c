package domain

import "fmt"

// ConfigError wraps a failure loading or validating a BundleConfig.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ModuleReadError wraps a failure reading a module's source from disk.
type ModuleReadError struct {
	Key ModuleKey
	Err error
}

func (e *ModuleReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Key, e.Err)
}

func (e *ModuleReadError) Unwrap() error { return e.Err }

// ParseError wraps a tree-sitter parse failure for a single module.
type ParseError struct {
	Key ModuleKey
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnresolvableSpecifierError reports a local import specifier whose joined
// path cannot be turned into an absolute module key. Resolution never
// checks the disk, so a missing file does not raise it.
type UnresolvableSpecifierError struct {
	Importer  ModuleKey
	Specifier string
}

func (e *UnresolvableSpecifierError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %q", e.Importer, e.Specifier)
}

// PluginError wraps a failure raised by a plugin hook.
type PluginError struct {
	Plugin string
	Hook   string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s (%s): %v", e.Plugin, e.Hook, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }

// EmitError wraps a failure writing the final bundle to its output path.
type EmitError struct {
	Path string
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit %s: %v", e.Path, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }

// TaskError associates an error with the module whose pipeline stage
// produced it, used when aggregating failures from parallel module
// transforms.
type TaskError struct {
	Key ModuleKey
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// AggregatedError collects every TaskError raised while processing a batch
// of modules concurrently. The pipeline keeps going after a single module
// fails so the caller sees every failure at once instead of just the first.
type AggregatedError struct {
	Errors []*TaskError
}

func (e *AggregatedError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d modules failed: %v", len(e.Errors), e.Errors[0])
}

func (e *AggregatedError) Add(key ModuleKey, err error) {
	e.Errors = append(e.Errors, &TaskError{Key: key, Err: err})
}

func (e *AggregatedError) HasErrors() bool {
	return len(e.Errors) > 0
}
