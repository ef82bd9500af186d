package usecase

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/config"
)

func diagnose(files map[string]string, mutate func(*config.Config)) (DoctorOutput, string) {
	cfg := config.Default()
	cfg.Root = "/project"
	if mutate != nil {
		mutate(&cfg)
	}
	var out bytes.Buffer
	res := NewDoctorService(cfg, fs.NewMapFileSystem(files), cli.NewWriterOutput(&out)).Diagnose()
	return res, out.String()
}

func TestDoctorHealthyProject(t *testing.T) {
	res, out := diagnose(map[string]string{
		"/project/index.html": projectHTML,
		"/project/main.js":    `import "./card.js";`,
		"/project/boreDOM.js": "/* boreDOM */",
	}, nil)

	assert.True(t, res.Success)
	assert.Empty(t, res.Problems)
	assert.Empty(t, res.Warnings)
	assert.Contains(t, out, "✓ index.html checked")
	assert.Contains(t, out, "No problems found (0 warnings)")
}

func TestDoctorMissingFiles(t *testing.T) {
	res, out := diagnose(map[string]string{
		"/project/index.html": projectHTML,
	}, nil)

	assert.False(t, res.Success)
	assert.Equal(t, []string{
		"index.html: module script ./main.js not found",
		"runtime not found in any of " + "[node_modules/@mr_hugo/boredom/dist/boreDOM.min.js node_modules/@mr_hugo/boredom/dist/boreDOM.js node_modules/boredom/dist/boreDOM.min.js node_modules/boredom/dist/boreDOM.js boreDOM.js runtime.js]",
	}, res.Problems)
	assert.Equal(t, []string{"index.html: no module script loads main.js, no components will be found"}, res.Warnings)
	assert.Contains(t, out, "2 problems found")
}

func TestDoctorExternalRuntimeNeedsNoCandidate(t *testing.T) {
	res, _ := diagnose(map[string]string{
		"/project/index.html": projectHTML,
		"/project/main.js":    "",
	}, func(cfg *config.Config) {
		cfg.InlineRuntime = false
	})
	assert.True(t, res.Success)
}

func TestDoctorPageProblems(t *testing.T) {
	res, _ := diagnose(map[string]string{
		"/project/index.html": `<html><script src="./app.js" type="module"></script></html>`,
		"/project/app.js":     "",
	}, func(cfg *config.Config) {
		cfg.HTML = []string{"index.html", "about.html"}
	})

	assert.False(t, res.Success)
	assert.Len(t, res.Problems, 2)
	assert.Equal(t, "index.html: no </body>, components cannot be inlined", res.Problems[0])
	assert.Contains(t, res.Problems[1], "about.html: cannot be read:")
	assert.Equal(t, []string{
		"index.html: no module script loads main.js, no components will be found",
		"no page loads the boreDOM runtime script",
	}, res.Warnings)
}
