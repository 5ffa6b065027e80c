package domain

// ModuleType classifies a dependency-graph node by where its specifier
// resolves: a file discovered by the graph builder, or a bare package left
// to the host's own module system.
type ModuleType string

const (
	// ModuleTypeRelative represents a module resolved to a file on disk
	// (the graph builder followed it): ./foo, ../bar.
	ModuleTypeRelative ModuleType = "relative"

	// ModuleTypePackage represents an external, unresolved specifier the
	// graph builder did not follow: lodash, react.
	ModuleTypePackage ModuleType = "package"
)
