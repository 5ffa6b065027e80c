package domain

// BundleConfig is the full set of knobs a bundle invocation accepts,
// whether supplied via flags, a config file, or an interactive wizard.
type BundleConfig struct {
	// Entry is the entry module path, resolved relative to the working
	// directory (also when it comes from a config file elsewhere).
	Entry string `mapstructure:"entry" yaml:"entry"`

	// Output is the path the bundle is written to.
	Output string `mapstructure:"output" yaml:"output"`

	// Plugins names entries in the in-process plugin registry, applied in
	// the order listed.
	Plugins []string `mapstructure:"plugins" yaml:"plugins"`

	// Minify trims leading and trailing whitespace from every line of the
	// bundle and drops blank lines, module source lines included.
	Minify bool `mapstructure:"minify" yaml:"minify"`

	// SourceMap is read from and written to config files, but the bundler
	// does not consult it: no .map file is ever emitted.
	SourceMap bool `mapstructure:"source_map" yaml:"source_map"`

	// Concurrency caps how many modules are transformed in parallel.
	// Zero means runtime.NumCPU().
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`

	// Verbose enables per-module progress logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultBundleConfig returns the configuration used when no config file or
// flags override it.
func DefaultBundleConfig() *BundleConfig {
	return &BundleConfig{
		Output:      "bundle.js",
		Plugins:     []string{},
		Minify:      false,
		SourceMap:   false,
		Concurrency: 0,
		Verbose:     false,
	}
}

// Validate checks that the configuration is complete enough to run a bundle.
func (c *BundleConfig) Validate() error {
	if c.Entry == "" {
		return &ConfigError{Path: "entry", Err: errEntryRequired}
	}
	if c.Output == "" {
		return &ConfigError{Path: "output", Err: errOutputRequired}
	}
	return nil
}

var (
	errEntryRequired  = simpleError("entry module is required")
	errOutputRequired = simpleError("output path is required")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
