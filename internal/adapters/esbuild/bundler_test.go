package esbuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/config"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, contents := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	}
	return root
}

func newCompiler(root string) *compiler.Compiler {
	cfg := config.Default()
	cfg.Root = root
	return compiler.New(cfg, fs.NewOSFileSystem())
}

func TestBundleRecordsComponents(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.js": `import "./components/card.js";`,
		"components/card.js": `
import "./icon.js";
export const metadata = { name: "card", dependencies: ["icon"] };
export const style = "";
export const template = "<div></div>";
export const logic = () => {};
`,
		"components/icon.js": `
export const metadata = { name: "icon" };
export const style = "";
export const template = "<i></i>";
export const logic = function () {};
`,
		"components/broken.js": `export const metadata = { name: 1 }; export const style = "";`,
		"lazy.js":              `import "./components/broken.js";`,
	})

	c := newCompiler(root)
	b, warnings, err := NewBundler(c).Bundle(context.Background(), root, []string{"./main.js", "./lazy.js"}, "dist")
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "components/broken.js is not a valid component:")

	f, ok := b.Get("main.js")
	require.True(t, ok)
	assert.Equal(t, bundle.Chunk, f.Kind)

	order := c.Order()
	require.Len(t, order, 2)
	assert.Equal(t, "components/icon.js", order[0].ID)
	assert.Equal(t, "components/card.js", order[1].ID)
}

func TestBundlePrunesRemovedModules(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.js": `import "./a.js";`,
		"a.js": `
export const metadata = { name: "a" };
export const style = "";
export const template = "";
export const logic = () => {};
`,
	})

	c := newCompiler(root)
	bundler := NewBundler(c)
	_, _, err := bundler.Bundle(context.Background(), root, []string{"./main.js"}, "dist")
	require.NoError(t, err)
	require.Len(t, c.Order(), 1)

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.js"), []byte(`console.log("no components");`), 0644))
	_, _, err = bundler.Bundle(context.Background(), root, []string{"./main.js"}, "dist")
	require.NoError(t, err)
	assert.Empty(t, c.Order())
}

func TestBundleFailureKeepsSession(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.js": `import "./a.js";`,
		"a.js": `
export const metadata = { name: "a" };
export const style = "";
export const template = "";
export const logic = () => {};
`,
	})

	c := newCompiler(root)
	bundler := NewBundler(c)
	_, _, err := bundler.Bundle(context.Background(), root, []string{"./main.js"}, "dist")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "main.js"), []byte(`import "./missing.js";`), 0644))
	_, _, err = bundler.Bundle(context.Background(), root, []string{"./main.js"}, "dist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.js")
	assert.Len(t, c.Order(), 1, "a failed build does not prune")
}

func TestModuleID(t *testing.T) {
	root := t.TempDir()
	p := NewPlugin(context.Background(), newCompiler(root), root)
	assert.Equal(t, "src/card.js", p.ModuleID(filepath.Join(root, "src", "card.js")))
}
