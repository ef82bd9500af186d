package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/config"
)

func componentSource(name string, deps ...string) string {
	quoted := make([]string, 0, len(deps))
	for _, d := range deps {
		quoted = append(quoted, `"`+d+`"`)
	}
	return `
export const metadata = { name: "` + name + `", version: "1.0.0", dependencies: [` + strings.Join(quoted, ", ") + `] };
export const style = ".` + name + ` { display: block; }";
export const template = "<p>` + name + `</p>";
export const logic = () => {};
`
}

const indexHTML = `<html>
<body>
  <script src="./boreDOM.js"></script>
  <script type="module" src="./main.js"></script>
</body>
</html>`

func newCompiler(mutate func(*config.Config)) *Compiler {
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	files := fs.NewMapFileSystem(map[string]string{"boreDOM.js": "/* runtime */"})
	return New(cfg, files)
}

func htmlBundle() *bundle.Bundle {
	b := bundle.New()
	b.Add(&bundle.File{Name: "index.html", Kind: bundle.Asset, Contents: []byte(indexHTML)})
	b.Add(&bundle.File{Name: "main.js", Kind: bundle.Chunk, Contents: []byte("import './a.js'")})
	return b
}

func TestCompilerEndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newCompiler(func(cfg *config.Config) { cfg.Manifest = true })

	assert.Empty(t, c.Transform(ctx, "src/a.js", []byte(componentSource("a", "b"))))
	assert.Empty(t, c.Transform(ctx, "src/b.js", []byte(componentSource("b"))))
	assert.Empty(t, c.Transform(ctx, "src/util.js", []byte(`export const x = 1;`)))
	assert.Empty(t, c.Transform(ctx, "styles/site.css", []byte(`body {}`)))

	order := c.Order()
	require.Len(t, order, 2)
	assert.Equal(t, "src/b.js", order[0].ID)
	assert.Equal(t, "src/a.js", order[1].ID)

	b := htmlBundle()
	warnings, err := c.Finalize(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"index.html", ManifestFile}, b.Names())

	f, _ := b.Get("index.html")
	doc := string(f.Contents)
	assert.Equal(t, 2, strings.Count(doc, `<template data-component=`))
	assert.Less(t, strings.Index(doc, `data-component="b"`), strings.Index(doc, `data-component="a"`))
	assert.Contains(t, doc, "<script>/* runtime */</script>")
	assert.NotContains(t, doc, "main.js")
	assert.Contains(t, doc, `<style data-component="b">.b{display:block}</style>`)

	mf, _ := b.Get(ManifestFile)
	m, err := ParseManifest(mf.Contents)
	require.NoError(t, err)
	require.Len(t, m.Components, 2)
	assert.Equal(t, ManifestEntry{
		Name:         "a",
		Version:      "1.0.0",
		Module:       "src/a.js",
		Dependencies: []string{"b"},
		Props:        []string{},
		Events:       []string{},
	}, m.Components[1])
}

func TestCompilerTransformReplacesEntry(t *testing.T) {
	ctx := context.Background()
	c := newCompiler(nil)

	c.Transform(ctx, "src/a.js", []byte(componentSource("a")))
	require.Len(t, c.Order(), 1)

	w := c.Transform(ctx, "src/a.js", []byte(`
		export const metadata = { name: "" };
		export const style = "";
	`))
	assert.Contains(t, w, "src/a.js is not a valid component:")
	assert.Empty(t, c.Order())
}

func TestCompilerWarningsCanBeDisabled(t *testing.T) {
	c := newCompiler(func(cfg *config.Config) { cfg.ValidateComponents = false })
	w := c.Transform(context.Background(), "src/a.js", []byte(`export const metadata = {}; export const style = "";`))
	assert.Empty(t, w)
	assert.Empty(t, c.Order())
}

func TestCompilerExcludedModules(t *testing.T) {
	c := newCompiler(nil)
	w := c.Transform(context.Background(), "node_modules/lib/index.js", []byte(componentSource("lib")))
	assert.Empty(t, w)
	assert.Equal(t, 0, c.Session().Len())
}

func TestCompilerBatch(t *testing.T) {
	ctx := context.Background()
	c := newCompiler(nil)
	c.Transform(ctx, "src/stale.js", []byte(componentSource("stale")))

	batch := c.NewBatch()
	c.Record(ctx, batch, "src/b.js", []byte(componentSource("b")))
	c.Record(ctx, batch, "src/a.js", []byte(componentSource("a", "b")))
	assert.Equal(t, 1, c.Session().Len(), "recording leaves the session alone")

	c.Commit(batch, true)
	var ids []string
	for _, e := range c.Order() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"src/b.js", "src/a.js"}, ids)
}

func TestCompilerStrictDependencies(t *testing.T) {
	ctx := context.Background()
	c := newCompiler(func(cfg *config.Config) { cfg.StrictDependencies = true })
	c.Transform(ctx, "src/a.js", []byte(componentSource("a", "ghost")))

	warnings, err := c.Finalize(ctx, htmlBundle())
	require.NoError(t, err)
	assert.Equal(t, []string{`src/a.js depends on unknown component "ghost"`}, warnings)
}

func TestCompilerNormalizesIDs(t *testing.T) {
	c := newCompiler(nil)
	a := c.Analyze(context.Background(), `src\a.js?raw`, []byte(componentSource("a")))
	assert.Equal(t, "src/a.js", a.ID)
}
