package templates

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed all:minimal
var minimalFS embed.FS

//go:embed all:list
var listFS embed.FS

var validTemplates = []string{"minimal", "list"}

var ErrInvalidTemplate = errors.New("invalid template name")

// Names lists the templates accepted by GetTemplate.
func Names() []string {
	return append([]string(nil), validTemplates...)
}

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "minimal":
		return fs.Sub(minimalFS, "minimal")
	case "list":
		return fs.Sub(listFS, "list")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Name string
}

func ProcessFilename(filename string, data TemplateData) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

// ProcessContent executes content as a text/template when isTemplate is
// set and returns it unchanged otherwise.
func ProcessContent(content []byte, isTemplate bool, data TemplateData) ([]byte, error) {
	if !isTemplate {
		return content, nil
	}

	tmpl, err := template.New("file").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeriveProjectName turns the project directory into a package name.
func DeriveProjectName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "boredom-app"
	}
	return strings.ToLower(strings.ReplaceAll(base, " ", "-"))
}
