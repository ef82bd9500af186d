package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertBeforeBodyEnd(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
		ok   bool
	}{
		{"simple", "<body>x</body>", "<body>x[M]</body>", true},
		{"case and spacing", "<BODY></BODY >", "<BODY>[M]</BODY >", true},
		{"last one wins", "<body><code></body></code></body>", "<body><code></body></code>[M]</body>", true},
		{"missing", "<div></div>", "<div></div>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InsertBeforeBodyEnd(tt.doc, "[M]")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveBootstrap(t *testing.T) {
	t.Run("own line", func(t *testing.T) {
		doc := "<head>\n  <script type=\"module\" src=\"./main.js\"></script>\n</head>"
		got, n := RemoveBootstrap(doc, "main.js")
		assert.Equal(t, 1, n)
		assert.Equal(t, "<head>\n</head>", got)
	})

	t.Run("inline with other markup", func(t *testing.T) {
		doc := `<p>a</p><script type=module src='/js/main.js#x'></script><p>b</p>`
		got, n := RemoveBootstrap(doc, "main.js")
		assert.Equal(t, 1, n)
		assert.Equal(t, "<p>a</p><p>b</p>", got)
	})

	t.Run("leaves other scripts", func(t *testing.T) {
		doc := `<script src="main.js"></script><script type="module" src="other.js"></script>`
		got, n := RemoveBootstrap(doc, "main.js")
		assert.Equal(t, 0, n)
		assert.Equal(t, doc, got)
	})
}

func TestInlineRuntime(t *testing.T) {
	files := mapReader{"dist/boreDOM.min.js": "let a = '</script>';"}

	got, found, inlined := InlineRuntime(`<script src="boreDOM.min.js"></script>`, files, []string{"missing.js", "dist/boreDOM.min.js"})
	assert.True(t, found)
	assert.True(t, inlined)
	assert.Equal(t, `<script>let a = '<\/script>';</script>`, got)

	doc := `<script type="module" src="app.js"></script>`
	got, found, inlined = InlineRuntime(doc, files, []string{"dist/boreDOM.min.js"})
	assert.False(t, found)
	assert.False(t, inlined)
	assert.Equal(t, doc, got)
}

func TestScriptDiscovery(t *testing.T) {
	doc := `
<script type="module" src="./main.js"></script>
<script type="module" src="https://cdn.example.com/lib.js"></script>
<script type="module" src="./vendor/boreDOM.js"></script>
<script src="./legacy.js"></script>
<script type="module">console.log(1)</script>
`
	assert.Equal(t, []string{"./main.js"}, ModuleScripts(doc))
	assert.Equal(t, []string{"./vendor/boreDOM.js"}, RuntimeScripts(doc))
}

func TestIsRuntimeFile(t *testing.T) {
	for name, want := range map[string]bool{
		"boreDOM.js":                  true,
		"/dist/boreDOM.min.js?v=1":    true,
		"runtime.js":                  true,
		"runtime-4f2a.js":             true,
		"main.js":                     false,
		"chunks/boredom-component.js": false,
	} {
		assert.Equal(t, want, IsRuntimeFile(name), name)
	}
}

type mapReader map[string]string

func (m mapReader) ReadFile(path string) ([]byte, error) {
	if s, ok := m[path]; ok {
		return []byte(s), nil
	}
	return nil, assert.AnError
}
