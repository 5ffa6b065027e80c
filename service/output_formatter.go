package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsbundle/jsbundle/domain"
)

// OutputFormatterImpl renders a DependencyGraphResponse in the formats the
// `jsbundle deps` command supports (text, JSON; DOT is handled by
// DOTFormatter).
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteDependencyGraph writes the dependency graph response in the
// specified format.
func (f *OutputFormatterImpl) WriteDependencyGraph(response *domain.DependencyGraphResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatText:
		return f.writeDependencyGraphText(response, writer)
	case domain.OutputFormatDOT:
		dotFormatter := NewDOTFormatter(nil)
		return dotFormatter.WriteDependencyGraph(response, writer)
	default:
		return fmt.Errorf("unsupported output format for dependency graph: %s", format)
	}
}

// writeDependencyGraphText writes the dependency graph as plain text.
func (f *OutputFormatterImpl) writeDependencyGraphText(response *domain.DependencyGraphResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Dependency Graph Analysis ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	if response.Graph == nil {
		fmt.Fprintln(writer, "No graph data available.")
		return nil
	}

	graph := response.Graph
	analysis := response.Analysis

	fmt.Fprintln(writer, "Summary:")
	fmt.Fprintf(writer, "  Total modules: %d\n", graph.NodeCount())
	fmt.Fprintf(writer, "  Total dependencies: %d\n", graph.EdgeCount())
	fmt.Fprintln(writer)

	if analysis != nil && analysis.Circular != nil && analysis.Circular.HasCircularDependencies {
		cd := analysis.Circular
		fmt.Fprintln(writer, "Circular Dependencies:")
		fmt.Fprintf(writer, "  Total cycles: %d\n", cd.TotalCycles)
		fmt.Fprintf(writer, "  Modules in cycles: %d\n", cd.TotalModulesInCycles)
		fmt.Fprintln(writer)

		for i, cycle := range cd.CircularDependencies {
			fmt.Fprintf(writer, "  Cycle %d [%s]:\n", i+1, cycle.Severity)
			for _, mod := range cycle.Modules {
				fmt.Fprintf(writer, "    - %s\n", mod)
			}
		}
		fmt.Fprintln(writer)
	} else if analysis != nil {
		fmt.Fprintln(writer, "No circular dependencies detected.")
		fmt.Fprintln(writer)
	}

	var entryPoints, leafModules []string
	for id, node := range graph.Nodes {
		if node.IsEntryPoint {
			entryPoints = append(entryPoints, id)
		}
		if node.IsLeaf {
			leafModules = append(leafModules, id)
		}
	}

	if len(entryPoints) > 0 {
		fmt.Fprintln(writer, "Entry Points:")
		for _, mod := range entryPoints {
			fmt.Fprintf(writer, "  - %s\n", mod)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintln(writer, "Warnings:")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Errors) > 0 {
		fmt.Fprintln(writer, "Errors:")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
		fmt.Fprintln(writer)
	}

	return nil
}
