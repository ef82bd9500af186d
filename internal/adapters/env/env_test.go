package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/config"
)

func lookup(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestApplyFrom(t *testing.T) {
	cfg := config.Default()
	err := ApplyFrom(&cfg, lookup(map[string]string{
		LogLevel:           "debug",
		LogFormat:          "json",
		OutDir:             "public",
		InlineRuntime:      "false",
		StrictDependencies: "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "public", cfg.OutDir)
	assert.False(t, cfg.InlineRuntime)
	assert.True(t, cfg.StrictDependencies)
}

func TestApplyFromKeepsUnset(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, ApplyFrom(&cfg, lookup(map[string]string{OutDir: ""})))
	want := config.Default()
	assert.Equal(t, want.OutDir, cfg.OutDir)
	assert.Equal(t, want.Log, cfg.Log)
	assert.Equal(t, want.InlineRuntime, cfg.InlineRuntime)
}

func TestApplyFromInvalidBool(t *testing.T) {
	cfg := config.Default()
	err := ApplyFrom(&cfg, lookup(map[string]string{InlineRuntime: "sometimes"}))
	assert.EqualError(t, err, `BOREDOM_INLINE_RUNTIME: "sometimes" is not a boolean`)
}

func TestApply(t *testing.T) {
	t.Setenv(LogLevel, "warn")
	cfg := config.Default()
	require.NoError(t, Apply(&cfg))
	assert.Equal(t, "warn", cfg.Log.Level)
}
