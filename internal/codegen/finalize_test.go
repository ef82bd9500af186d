package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/graph"
)

const page = `<!doctype html>
<html>
<head>
  <script src="./boreDOM.js" type="module"></script>
  <script src="/main.js?v=3" type="module"></script>
</head>
<body>
  <user-card></user-card>
</body>
</html>
`

func newBundle(html string) *bundle.Bundle {
	b := bundle.New()
	b.Add(&bundle.File{Name: "index.html", Kind: bundle.Asset, Contents: []byte(html)})
	b.Add(&bundle.File{Name: "main.js", Kind: bundle.Chunk, Contents: []byte("import './card.js';")})
	b.Add(&bundle.File{Name: "chunks/card-ABC.js", Kind: bundle.Chunk, Contents: []byte("export {}")})
	b.Add(&bundle.File{Name: "style.css", Kind: bundle.Asset, Contents: []byte("body{}")})
	return b
}

func defaultOptions(files FileReader) Options {
	return Options{
		InlineRuntime:     true,
		OptimizeStyles:    true,
		Entry:             "main.js",
		RuntimeCandidates: []string{"node_modules/@mr_hugo/boredom/dist/boreDOM.min.js", "boreDOM.js"},
		Files:             files,
	}
}

func TestFinalize(t *testing.T) {
	files := fs.NewMapFileSystem(map[string]string{
		"boreDOM.js": "export const runtime = 1;",
	})
	entries := []graph.Entry{
		entry("icon", ".i { width: 1em; }", "<svg></svg>", "() => {}"),
		entry("user-card", ".card { color: red; }", "<div><slot></slot></div>", "function logic({ on }) { on('x', () => {}); }"),
	}

	b := newBundle(page)
	warnings := Finalize(b, entries, defaultOptions(files))
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"index.html", "style.css"}, b.Names())

	f, ok := b.Get("index.html")
	require.True(t, ok)
	doc := string(f.Contents)

	assert.Equal(t, 2, strings.Count(doc, `<script type="text/boredom"`))
	assert.Contains(t, doc, `<script type="module">export const runtime = 1;</script>`)
	assert.NotContains(t, doc, "main.js")
	assert.NotContains(t, doc, `src="./boreDOM.js"`)
	assert.Less(t, strings.Index(doc, `data-component="icon"`), strings.Index(doc, `data-component="user-card"`))
	assert.Less(t, strings.LastIndex(doc, "</script>"), strings.Index(doc, "</body>"))

	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, doc)
}

func TestFinalizeMissingRuntime(t *testing.T) {
	b := newBundle(page)
	warnings := Finalize(b, nil, defaultOptions(fs.NewMapFileSystem(nil)))

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "index.html: runtime script not found")

	f, _ := b.Get("index.html")
	assert.Contains(t, string(f.Contents), `src="./boreDOM.js"`)
}

func TestFinalizeWithoutInlining(t *testing.T) {
	b := newBundle(page)
	b.Add(&bundle.File{Name: "boreDOM.js", Kind: bundle.Chunk, Contents: []byte("runtime")})

	opts := defaultOptions(nil)
	opts.InlineRuntime = false
	warnings := Finalize(b, []graph.Entry{entry("x", "", "", "() => {}")}, opts)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"index.html", "style.css", "boreDOM.js"}, b.Names())
	f, _ := b.Get("index.html")
	assert.Contains(t, string(f.Contents), `<script src="./boreDOM.js" type="module"></script>`)
}

func TestFinalizeNoBody(t *testing.T) {
	b := bundle.New()
	b.Add(&bundle.File{Name: "partial.html", Kind: bundle.Asset, Contents: []byte("<div></div>")})

	warnings := Finalize(b, []graph.Entry{entry("x", "", "", "() => {}")}, Options{})
	assert.Equal(t, []string{"partial.html has no </body>; 1 component(s) were not inserted"}, warnings)

	f, _ := b.Get("partial.html")
	assert.Equal(t, "<div></div>", string(f.Contents))
}

func TestFinalizeNoComponents(t *testing.T) {
	b := bundle.New()
	b.Add(&bundle.File{Name: "index.html", Kind: bundle.Asset, Contents: []byte("<body></body>")})

	assert.Empty(t, Finalize(b, nil, Options{}))
	f, _ := b.Get("index.html")
	assert.Equal(t, "<body></body>", string(f.Contents))
}
