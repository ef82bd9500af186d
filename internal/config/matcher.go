package config

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matcher tests a normalised module id.
type Matcher interface {
	Match(id string) bool
}

// Suffix matches ids ending with the string.
type Suffix string

func (s Suffix) Match(id string) bool { return strings.HasSuffix(id, string(s)) }

// Pattern matches ids the regular expression matches anywhere.
type Pattern struct{ *regexp.Regexp }

func (p Pattern) Match(id string) bool { return p.Regexp.MatchString(id) }

// Func adapts a predicate.
type Func func(id string) bool

func (f Func) Match(id string) bool { return f(id) }

// Segment matches ids with a path segment equal to the string.
type Segment string

func (s Segment) Match(id string) bool {
	for _, part := range strings.Split(id, "/") {
		if part == string(s) {
			return true
		}
	}
	return false
}

// Matchers matches when one of its elements does; an empty list matches
// nothing. In YAML it is a suffix string, a mapping with one of suffix,
// regex or segment, or a sequence of those.
type Matchers []Matcher

func (ms Matchers) Match(id string) bool {
	for _, m := range ms {
		if m.Match(id) {
			return true
		}
	}
	return false
}

func (ms *Matchers) UnmarshalYAML(node *yaml.Node) error {
	m, err := decodeMatcher(node)
	if err != nil {
		return err
	}
	if list, ok := m.(Matchers); ok {
		*ms = list
	} else {
		*ms = Matchers{m}
	}
	return nil
}

func decodeMatcher(node *yaml.Node) (Matcher, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Suffix(node.Value), nil

	case yaml.SequenceNode:
		out := make(Matchers, 0, len(node.Content))
		for _, child := range node.Content {
			m, err := decodeMatcher(child)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, nil

	case yaml.MappingNode:
		var raw struct {
			Suffix  *string `yaml:"suffix"`
			Regex   *string `yaml:"regex"`
			Segment *string `yaml:"segment"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, err
		}
		switch {
		case raw.Suffix != nil:
			return Suffix(*raw.Suffix), nil
		case raw.Regex != nil:
			re, err := regexp.Compile(*raw.Regex)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid regex: %w", node.Line, err)
			}
			return Pattern{re}, nil
		case raw.Segment != nil:
			return Segment(*raw.Segment), nil
		}
		return nil, fmt.Errorf("line %d: matcher needs one of suffix, regex or segment", node.Line)
	}
	return nil, fmt.Errorf("line %d: unsupported matcher", node.Line)
}

// NormalizeID turns a host module path into the form matchers see:
// forward slashes, no query string.
func NormalizeID(id string) string {
	if i := strings.IndexByte(id, '?'); i >= 0 {
		id = id[:i]
	}
	return strings.ReplaceAll(id, `\`, "/")
}
