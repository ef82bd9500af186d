package codegen

import (
	"html"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"

	"github.com/boredom-js/boredom-build/internal/graph"
)

var styleMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return m
}()

// OptimizeStyle strips comments and collapses whitespace. Styles the
// minifier rejects are returned unchanged.
func OptimizeStyle(style string) string {
	out, err := styleMinifier.String("text/css", style)
	if err != nil {
		return style
	}
	return out
}

var (
	closingScript = regexp.MustCompile(`(?i)</(script)`)
	closingStyle  = regexp.MustCompile(`(?i)</(style)`)
)

// escapeRawText keeps a closing tag inside raw text from ending the
// element early. "<\/" means the same thing in JS strings and CSS.
func escapeRawText(re *regexp.Regexp, s string) string {
	return re.ReplaceAllString(s, `<\/$1`)
}

// Triplet renders the style, template and script blocks of one component.
func Triplet(e graph.Entry, optimizeStyles bool) string {
	name := html.EscapeString(e.Record.Metadata.Name)
	style := e.Record.Style
	if optimizeStyles {
		style = OptimizeStyle(style)
	}

	var sb strings.Builder
	sb.WriteString(`<style data-component="` + name + `">`)
	sb.WriteString(escapeRawText(closingStyle, style))
	sb.WriteString("</style>\n")
	sb.WriteString(`<template data-component="` + name + `">`)
	sb.WriteString(e.Record.Template)
	sb.WriteString("</template>\n")
	sb.WriteString(`<script type="text/boredom" data-component="` + name + `">`)
	sb.WriteString("export default ")
	sb.WriteString(escapeRawText(closingScript, e.Record.LogicSource))
	sb.WriteString(";</script>\n")
	return sb.String()
}

// RenderTriplets concatenates the triplets of entries in order.
func RenderTriplets(entries []graph.Entry, optimizeStyles bool) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(Triplet(e, optimizeStyles))
	}
	return sb.String()
}
