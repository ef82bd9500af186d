package component

import (
	"fmt"
	"strings"
)

// Names of the exports that make up a component module.
const (
	ExportMetadata = "metadata"
	ExportStyle    = "style"
	ExportTemplate = "template"
	ExportLogic    = "logic"
)

var requiredExports = []string{ExportMetadata, ExportStyle, ExportTemplate, ExportLogic}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies"`
	Props        []string `json:"props"`
	Events       []string `json:"events"`
}

// Record is a validated component. Records are only built when every
// required export folded to a valid shape and are not modified after.
type Record struct {
	Metadata    Metadata `json:"metadata"`
	Style       string   `json:"style"`
	Template    string   `json:"template"`
	LogicSource string   `json:"logicSource"`
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	r.Metadata.Dependencies = cloneStrings(r.Metadata.Dependencies)
	r.Metadata.Props = cloneStrings(r.Metadata.Props)
	r.Metadata.Events = cloneStrings(r.Metadata.Events)
	return r
}

func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

// Issue is one validation problem. Fatal issues prevent a Record.
type Issue struct {
	Field   string
	Message string
	Fatal   bool
}

func (i Issue) String() string {
	if i.Fatal {
		return i.Message
	}
	return i.Message + " (ignored)"
}

// Analysis is the outcome of analysing one module.
type Analysis struct {
	ID                 string
	Record             *Record
	Issues             []Issue
	LooksLikeComponent bool
}

func (a Analysis) HasFatal() bool {
	for _, issue := range a.Issues {
		if issue.Fatal {
			return true
		}
	}
	return false
}

// Warning renders the single aggregated warning for the module, or ""
// when there is nothing to report.
func (a Analysis) Warning() string {
	if !a.LooksLikeComponent || len(a.Issues) == 0 {
		return ""
	}
	return FormatWarning(a.ID, a.Issues)
}

// FormatWarning lists every issue found for one module id.
func FormatWarning(id string, issues []Issue) string {
	var sb strings.Builder
	fatal := false
	for _, issue := range issues {
		fatal = fatal || issue.Fatal
	}
	if fatal {
		fmt.Fprintf(&sb, "%s is not a valid component:", id)
	} else {
		fmt.Fprintf(&sb, "%s has component issues:", id)
	}
	for _, issue := range issues {
		sb.WriteString("\n  - ")
		sb.WriteString(issue.String())
	}
	return sb.String()
}
