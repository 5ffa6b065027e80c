package plugin

import (
	"context"
	"fmt"
	"time"
)

// builtins returns the plugins shipped with the bundler itself.
func builtins() []Plugin {
	return []Plugin{bannerPlugin()}
}

// bannerPlugin prepends a one-line comment identifying the bundle and when
// it was built. It only implements the Bundle hook since it operates on
// the assembled output, not individual modules.
func bannerPlugin() Plugin {
	return Plugin{
		Name: "banner",
		Bundle: func(_ context.Context, source string) (string, error) {
			banner := fmt.Sprintf("/* bundled %s */\n", time.Now().UTC().Format(time.RFC3339))
			return banner + source, nil
		},
	}
}
