package adapters

import (
	"io/fs"

	"github.com/boredom-js/boredom-build/internal/templates"
)

// TemplateSource serves the project templates embedded in the binary.
type TemplateSource struct{}

func NewTemplateSource() *TemplateSource {
	return &TemplateSource{}
}

func (t *TemplateSource) GetTemplate(name string) (fs.FS, error) {
	return templates.GetTemplate(name)
}

func (t *TemplateSource) Names() []string {
	return templates.Names()
}
