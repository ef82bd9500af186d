package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/config"
)

func newCheckService(files map[string]string) (*CheckService, *bytes.Buffer) {
	mapFS := fs.NewMapFileSystem(files)
	out := &bytes.Buffer{}
	c := compiler.New(config.Default(), mapFS)
	return NewCheckService(c, mapFS, cli.NewWriterOutput(out)), out
}

func TestCheckModules(t *testing.T) {
	svc, out := newCheckService(map[string]string{
		"src/greeting.js": greetingSource,
		"src/badge.js":    badgeSource,
		"src/util.js":     "export const x = 1;",
	})

	res := svc.Check(context.Background(), CheckInput{Paths: []string{"src/greeting.js", "src/badge.js", "src/util.js"}})
	require.NoError(t, res.Error)
	assert.True(t, res.Success)
	require.Len(t, res.Modules, 3)
	assert.Equal(t, "greeting-card", res.Modules[0].Analysis.Record.Metadata.Name)
	assert.Nil(t, res.Modules[2].Analysis.Record)

	report := out.String()
	assert.Contains(t, report, `src/greeting.js: component "greeting-card"`)
	assert.Contains(t, report, "src/util.js: not a component")
	assert.NotContains(t, report, "Only these calls are folded")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("name-badge (src/badge.js)")), bytes.Index(out.Bytes(), []byte("greeting-card (src/greeting.js)")))
}

func TestCheckModulesFailsOnInvalidComponent(t *testing.T) {
	svc, out := newCheckService(map[string]string{
		"src/broken.js": `export const metadata = {}; export const style = "";`,
	})

	res := svc.Check(context.Background(), CheckInput{Paths: []string{"src/broken.js"}})
	assert.False(t, res.Success)
	assert.NoError(t, res.Error)
	assert.Contains(t, res.Modules[0].Warning, "src/broken.js is not a valid component:")
	assert.Contains(t, out.String(), "✗ src/broken.js is not a valid component:")
	assert.Contains(t, out.String(), "Only these calls are folded at build time: Array.from, Boolean, Number, Object.assign, Object.freeze, String")
}

func TestCheckModulesReportsUnresolvedDependencies(t *testing.T) {
	svc, out := newCheckService(map[string]string{"src/greeting.js": greetingSource})

	res := svc.Check(context.Background(), CheckInput{Paths: []string{"src/greeting.js"}})
	assert.True(t, res.Success)
	assert.Contains(t, out.String(), `src/greeting.js depends on unknown component "name-badge"`)
}

func TestCheckModulesMissingFile(t *testing.T) {
	svc, _ := newCheckService(nil)
	res := svc.Check(context.Background(), CheckInput{Paths: []string{"nope.js"}})
	assert.False(t, res.Success)
	assert.ErrorContains(t, res.Error, "failed to read nope.js")
}
