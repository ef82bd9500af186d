package codegen

import (
	"path"
	"regexp"
	"strings"
)

var (
	bodyEnd = regexp.MustCompile(`(?i)</body\s*>`)
	// empty script elements, the only ones that can carry a src worth
	// rewriting
	scriptTag = regexp.MustCompile(`(?is)<script\b([^>]*)>\s*</script\s*>`)
	attribute = regexp.MustCompile(`([^\s=/>"']+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+)))?`)

	runtimeFile = regexp.MustCompile(`^(?:boreDOM|runtime)[^/]*\.js$`)
)

// InsertBeforeBodyEnd splices markup in front of the last </body>. It
// reports false and leaves doc untouched when there is none.
func InsertBeforeBodyEnd(doc, markup string) (string, bool) {
	all := bodyEnd.FindAllStringIndex(doc, -1)
	if len(all) == 0 {
		return doc, false
	}
	at := all[len(all)-1][0]
	return doc[:at] + markup + doc[at:], true
}

type scriptElement struct {
	start, end int
	attrs      map[string]string
}

func (s scriptElement) src() string {
	return s.attrs["src"]
}

func (s scriptElement) isModule() bool {
	return strings.EqualFold(strings.TrimSpace(s.attrs["type"]), "module")
}

func parseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attribute.FindAllStringSubmatch(raw, -1) {
		name := strings.ToLower(m[1])
		if _, dup := attrs[name]; dup {
			continue
		}
		attrs[name] = m[2] + m[3] + m[4]
	}
	return attrs
}

func scriptElements(doc string) []scriptElement {
	var out []scriptElement
	for _, m := range scriptTag.FindAllStringSubmatchIndex(doc, -1) {
		out = append(out, scriptElement{
			start: m[0],
			end:   m[1],
			attrs: parseAttributes(doc[m[2]:m[3]]),
		})
	}
	return out
}

// fileName returns the last path segment of a script URL without query
// string or fragment.
func fileName(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	return path.Base(strings.ReplaceAll(src, `\`, "/"))
}

// IsRuntimeFile reports whether name is the runtime script.
func IsRuntimeFile(name string) bool {
	return runtimeFile.MatchString(fileName(name))
}

// FileReader is the part of the filesystem runtime inlining needs.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// InlineRuntime replaces the first external runtime script with an inline
// script holding the contents of the first readable candidate. When no
// candidate can be read the tag is left in place; found reports whether a
// runtime tag exists at all.
func InlineRuntime(doc string, files FileReader, candidates []string) (out string, found, inlined bool) {
	for _, s := range scriptElements(doc) {
		if s.src() == "" || !IsRuntimeFile(s.src()) {
			continue
		}
		body, ok := readFirst(files, candidates)
		if !ok {
			return doc, true, false
		}
		open := "<script>"
		if s.isModule() {
			open = `<script type="module">`
		}
		inline := open + escapeRawText(closingScript, string(body)) + "</script>"
		return doc[:s.start] + inline + doc[s.end:], true, true
	}
	return doc, false, false
}

func readFirst(files FileReader, candidates []string) ([]byte, bool) {
	if files == nil {
		return nil, false
	}
	for _, c := range candidates {
		data, err := files.ReadFile(c)
		if err == nil {
			return data, true
		}
	}
	return nil, false
}

// RemoveBootstrap deletes every module script whose src file is entry,
// together with the indentation and line break around it. It returns the
// number of tags removed.
func RemoveBootstrap(doc, entry string) (string, int) {
	removed := 0
	elems := scriptElements(doc)
	for i := len(elems) - 1; i >= 0; i-- {
		s := elems[i]
		if !s.isModule() || s.src() == "" || fileName(s.src()) != entry {
			continue
		}
		start, end := widenToLine(doc, s.start, s.end)
		doc = doc[:start] + doc[end:]
		removed++
	}
	return doc, removed
}

// widenToLine grows [start,end) over surrounding blanks and one trailing
// newline when the element sits on a line of its own.
func widenToLine(doc string, start, end int) (int, int) {
	s := start
	for s > 0 && (doc[s-1] == ' ' || doc[s-1] == '\t') {
		s--
	}
	if s > 0 && doc[s-1] != '\n' {
		return start, end
	}
	e := end
	for e < len(doc) && (doc[e] == ' ' || doc[e] == '\t' || doc[e] == '\r') {
		e++
	}
	if e < len(doc) && doc[e] != '\n' {
		return start, end
	}
	if e < len(doc) {
		e++
	}
	return s, e
}

// isLocal reports whether src points into the project rather than at
// another origin.
func isLocal(src string) bool {
	lower := strings.ToLower(src)
	return src != "" && !strings.HasPrefix(lower, "http:") && !strings.HasPrefix(lower, "https:") &&
		!strings.HasPrefix(src, "//") && !strings.HasPrefix(lower, "data:")
}

// ModuleScripts returns the src of every local module script except the
// runtime, in document order. These are the bundler entry points.
func ModuleScripts(doc string) []string {
	var out []string
	for _, s := range scriptElements(doc) {
		if s.isModule() && isLocal(s.src()) && !IsRuntimeFile(s.src()) {
			out = append(out, s.src())
		}
	}
	return out
}

// RuntimeScripts returns the src of every local runtime script.
func RuntimeScripts(doc string) []string {
	var out []string
	for _, s := range scriptElements(doc) {
		if isLocal(s.src()) && IsRuntimeFile(s.src()) {
			out = append(out, s.src())
		}
	}
	return out
}
