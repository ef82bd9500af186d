package codegen

import (
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"

	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/graph"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func entry(name, style, template, logic string) graph.Entry {
	return graph.Entry{
		ID: name + ".js",
		Record: component.Record{
			Metadata:    component.Metadata{Name: name, Dependencies: []string{}, Props: []string{}, Events: []string{}},
			Style:       style,
			Template:    template,
			LogicSource: logic,
		},
	}
}

func TestTriplet(t *testing.T) {
	got := Triplet(entry("user-card", ".card { color: red; }", "<div class=\"card\"></div>", "function logic() {}"), false)

	want := `<style data-component="user-card">.card { color: red; }</style>
<template data-component="user-card"><div class="card"></div></template>
<script type="text/boredom" data-component="user-card">export default function logic() {};</script>
`
	assert.Equal(t, want, got)
}

func TestTripletOptimizesStyles(t *testing.T) {
	got := Triplet(entry("x", "/* note */\n.card {\n  color: red;\n}\n", "", "() => {}"), true)
	assert.Contains(t, got, `<style data-component="x">.card{color:red}</style>`)
}

func TestTripletEscapesRawText(t *testing.T) {
	got := Triplet(entry(`a"b`, `.x::after { content: "</style>"; }`, "<p></p>", `() => "</SCRIPT>"`), false)

	assert.Contains(t, got, `data-component="a&#34;b"`)
	assert.Contains(t, got, `content: "<\/style>"`)
	assert.Contains(t, got, `export default () => "<\/SCRIPT>";</script>`)
	assert.Equal(t, 1, strings.Count(got, "</style>"))
	assert.Equal(t, 1, strings.Count(got, "</script>"))
}

func TestRenderTripletsKeepsOrder(t *testing.T) {
	out := RenderTriplets([]graph.Entry{
		entry("b", "", "", "() => 1"),
		entry("a", "", "", "() => 2"),
	}, false)

	assert.Less(t, strings.Index(out, `data-component="b"`), strings.Index(out, `data-component="a"`))
	assert.Equal(t, 2, strings.Count(out, `<script type="text/boredom"`))
}

func TestOptimizeStyleFallsBack(t *testing.T) {
	assert.Equal(t, "", OptimizeStyle(""))
	assert.Equal(t, "a{b:c}", OptimizeStyle("a { b: c; }"))
}
