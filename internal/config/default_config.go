package config

import "github.com/jsbundle/jsbundle/domain"

// LoadDefaultConfig returns the bundler's built-in defaults, used when no
// config file is present and no flags override them.
func LoadDefaultConfig() *domain.BundleConfig {
	return domain.DefaultBundleConfig()
}
