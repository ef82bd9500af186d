package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	envvar "github.com/boredom-js/boredom-build/internal/adapters/env"
	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/config"
	"github.com/boredom-js/boredom-build/internal/ctxlog"
)

const (
	appName          = "boredom"
	configFileName   = config.FileName
	manifestFileName = compiler.ManifestFile
)

var (
	flagConfig     string
	flagRoot       string
	flagLogLevel   string
	flagLogFormat  string
	flagOutDir     string
	flagHTML       []string
	flagNoInline   bool
	flagNoOptimize bool
	flagStrict     bool
	flagManifest   bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Compile boreDOM component modules into a single HTML file",
	Long: "Compile boreDOM component modules into a single HTML file.\n\n" +
		"Modules exporting metadata, style, template and logic are analysed\n" +
		"without running them and inlined as <style>, <template> and <script>\n" +
		"blocks into the HTML entry.",
}

// env bundles what every command needs.
type env struct {
	ctx    context.Context
	cfg    config.Config
	fs     *fs.OSFileSystem
	output *cli.Output
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	return &env{
		ctx:    ctx,
		cfg:    cfg,
		fs:     fs.NewOSFileSystem(),
		output: cli.NewOutput(),
	}, nil
}

// loadConfig reads the config file, then applies BOREDOM_* variables and
// finally explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root := flagRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, configFileName)
	}

	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrNotFound) && !explicit:
		cfg = config.Default()
	case err != nil:
		return config.Config{}, err
	}

	if cfg.Root == "" || cfg.Root == "." || flagRoot != "" {
		cfg.Root = root
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := envvar.Apply(&cfg); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.OutDir = flagOutDir
	}
	if flags.Changed("html") {
		cfg.HTML = flagHTML
	}
	if flags.Changed("no-inline-runtime") {
		cfg.InlineRuntime = !flagNoInline
	}
	if flags.Changed("no-optimize-styles") {
		cfg.OptimizeStyles = !flagNoOptimize
	}
	if flags.Changed("strict-dependencies") {
		cfg.StrictDependencies = flagStrict
	}
	if flags.Changed("manifest") {
		cfg.Manifest = flagManifest
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}
	return cfg, cfg.Validate()
}
