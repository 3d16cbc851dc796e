// Package config handles tool configuration from flags and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// externalPathEnv overrides the external binary search path; entries are
// colon-separated like PATH.
const externalPathEnv = "OTK_EXTERNAL_PATH"

// defaultExternalPath lists where external binaries are installed by
// distribution packages.
var defaultExternalPath = []string{
	"/usr/libexec/otk",
	"/usr/local/libexec/otk",
}

// Config holds the resolved tool configuration.
type Config struct {
	// ExternalPath lists the directories searched for otk-external-*
	// binaries, in order.
	ExternalPath []string
}

// Load builds the configuration. flagPath comes from --external-path and
// takes precedence; then OTK_EXTERNAL_PATH; then the packaged defaults.
func Load(flagPath []string) *Config {
	cfg := &Config{}
	switch {
	case len(flagPath) > 0:
		cfg.ExternalPath = cleanPaths(flagPath)
	case os.Getenv(externalPathEnv) != "":
		cfg.ExternalPath = cleanPaths(strings.Split(os.Getenv(externalPathEnv), ":"))
	default:
		cfg.ExternalPath = defaultExternalPath
	}
	return cfg
}

func cleanPaths(paths []string) []string {
	var res []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		res = append(res, filepath.Clean(p))
	}
	return res
}
