package boredom

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/bundle"
)

func TestAnalyze(t *testing.T) {
	a := Analyze(context.Background(), "card.js", []byte(`
		export const metadata = { name: "card" };
		export const style = "";
		export const template = "<p></p>";
		export const logic = () => {};
	`))
	require.NotNil(t, a.Record)
	assert.Equal(t, "card", a.Record.Metadata.Name)
}

// TestPluginHost drives the plugin from a caller owned esbuild build, the
// way an existing esbuild setup would embed the compiler.
func TestPluginHost(t *testing.T) {
	root := t.TempDir()
	write := func(name, contents string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(contents), 0644))
	}
	write("main.js", `import "./card.js";`)
	write("card.js", `
export const metadata = { name: "card" };
export const style = "";
export const template = "<p></p>";
export const logic = () => {};
`)

	cfg := DefaultConfig()
	cfg.Root = root
	b := New(cfg)

	ctx := context.Background()
	res := api.Build(api.BuildOptions{
		AbsWorkingDir: root,
		EntryPoints:   []string{"./main.js"},
		Bundle:        true,
		Outdir:        filepath.Join(root, "dist"),
		Format:        api.FormatESModule,
		Plugins:       []api.Plugin{b.Plugin(ctx)},
	})
	require.Empty(t, res.Errors)

	comps := b.Components()
	require.Len(t, comps, 1)
	assert.Equal(t, "card", comps[0].Metadata.Name)

	out := bundle.New()
	out.Add(&File{Name: "index.html", Kind: bundle.Asset, Contents: []byte(`<body><script type="module" src="main.js"></script></body>`)})
	warnings, err := b.Finalize(ctx, out)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	f, _ := out.Get("index.html")
	doc := string(f.Contents)
	assert.True(t, strings.HasPrefix(doc, `<body><style data-component="card">`))
	assert.NotContains(t, doc, "main.js")
}
