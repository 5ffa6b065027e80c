package bundler

import "strings"

// minify trims leading and trailing whitespace from every line of the
// emitted bundle and drops blank lines. It does not tell the scaffolding
// emit.go generated apart from module source: lines of module bodies are
// trimmed and dropped the same way.
func minify(source string) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
