// Package env applies BOREDOM_* environment overrides to the config.
package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/boredom-js/boredom-build/internal/config"
)

const (
	LogLevel           = "BOREDOM_LOG_LEVEL"
	LogFormat          = "BOREDOM_LOG_FORMAT"
	OutDir             = "BOREDOM_OUT_DIR"
	InlineRuntime      = "BOREDOM_INLINE_RUNTIME"
	StrictDependencies = "BOREDOM_STRICT_DEPENDENCIES"
)

// Apply overrides cfg with the variables set in the process environment.
func Apply(cfg *config.Config) error {
	return ApplyFrom(cfg, os.LookupEnv)
}

func ApplyFrom(cfg *config.Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(LogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(LogFormat); ok && v != "" {
		cfg.Log.Format = v
	}
	if v, ok := lookup(OutDir); ok && v != "" {
		cfg.OutDir = v
	}
	for name, dst := range map[string]*bool{
		InlineRuntime:      &cfg.InlineRuntime,
		StrictDependencies: &cfg.StrictDependencies,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", name, v)
		}
		*dst = b
	}
	return nil
}
