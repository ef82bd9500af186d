// Package config holds the build configuration and its YAML form.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = "boredom.yaml"

var ErrNotFound = errors.New("config file not found")

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Root   string   `yaml:"root"`
	HTML   []string `yaml:"html"`
	OutDir string   `yaml:"outDir"`
	// Entry is the file name of the bootstrap module script removed from
	// the finalized HTML.
	Entry string `yaml:"entry"`

	InlineRuntime      bool `yaml:"inlineRuntime"`
	ValidateComponents bool `yaml:"validateComponents"`
	OptimizeStyles     bool `yaml:"optimizeStyles"`
	StrictDependencies bool `yaml:"strictDependencies"`
	Manifest           bool `yaml:"manifest"`

	ComponentInclude Matchers `yaml:"componentInclude"`
	ComponentExclude Matchers `yaml:"componentExclude"`

	// RuntimeCandidates are tried in order when inlining the runtime.
	// Relative paths are resolved against Root.
	RuntimeCandidates []string `yaml:"runtimeCandidates"`

	Log LogConfig `yaml:"log"`
}

func DefaultInclude() Matchers {
	return Matchers{Suffix(".js"), Suffix(".mjs"), Suffix(".cjs")}
}

func DefaultExclude() Matchers {
	return Matchers{Segment("node_modules")}
}

func DefaultRuntimeCandidates() []string {
	return []string{
		"node_modules/@mr_hugo/boredom/dist/boreDOM.min.js",
		"node_modules/@mr_hugo/boredom/dist/boreDOM.js",
		"node_modules/boredom/dist/boreDOM.min.js",
		"node_modules/boredom/dist/boreDOM.js",
		"boreDOM.js",
		"runtime.js",
	}
}

func Default() Config {
	return Config{
		Root:               ".",
		HTML:               []string{"index.html"},
		OutDir:             "dist",
		Entry:              "main.js",
		InlineRuntime:      true,
		ValidateComponents: true,
		OptimizeStyles:     true,
		ComponentInclude:   DefaultInclude(),
		ComponentExclude:   DefaultExclude(),
		RuntimeCandidates:  DefaultRuntimeCandidates(),
		Log:                LogConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. A missing file is ErrNotFound so callers can fall back
// to Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail late in the build.
func (c Config) Validate() error {
	if len(c.HTML) == 0 {
		return errors.New("html: at least one HTML file is required")
	}
	if c.OutDir == "" {
		return errors.New("outDir must not be empty")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// Accepts reports whether the module id is subject to component analysis.
func (c Config) Accepts(id string) bool {
	id = NormalizeID(id)
	include := c.ComponentInclude
	if len(include) == 0 {
		include = DefaultInclude()
	}
	return include.Match(id) && !c.ComponentExclude.Match(id)
}

// Path resolves a project relative path against Root.
func (c Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, rel)
}

// RuntimePaths returns the runtime candidates resolved against Root.
func (c Config) RuntimePaths() []string {
	out := make([]string, 0, len(c.RuntimeCandidates))
	for _, p := range c.RuntimeCandidates {
		out = append(out, c.Path(p))
	}
	return out
}
