package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportMinimal(t *testing.T) {
	var buf bytes.Buffer
	r := NewBuildReport(NewWriterOutput(&buf), "dist")
	r.SetComponentCount(3)
	step := r.StartStep("Bundling modules")
	r.EndStep(step, true, "")
	r.Render()

	out := buf.String()
	assert.False(t, r.HasFailures())
	assert.Contains(t, out, "✓ 3 components")
	assert.Contains(t, out, "Build complete in")
	assert.Contains(t, out, "Output: dist")
	assert.NotContains(t, out, "\033[")
}

func TestBuildReportProblems(t *testing.T) {
	var buf bytes.Buffer
	r := NewBuildReport(NewWriterOutput(&buf), "")
	r.AddWarning("Warning", "src/a.js has component issues:", []string{"x (ignored)", "x (ignored)", "y (ignored)"})
	step := r.StartStep("Writing output")
	r.EndStep(step, false, "disk full")
	r.AddError("Output", "disk full", nil)
	r.Render()

	out := buf.String()
	assert.True(t, r.HasFailures())
	assert.Len(t, r.Warnings(), 1)
	assert.Len(t, r.Errors(), 1)
	assert.Contains(t, out, "Warnings (1):")
	assert.Contains(t, out, "Errors (1):")
	assert.Contains(t, out, "• x (ignored) (2 occurrences)")
	assert.Contains(t, out, "• y (ignored)")
	assert.Contains(t, out, "✗ Writing output")
	assert.Contains(t, out, "Build failed after")
}

func TestDeduplicateStrings(t *testing.T) {
	assert.Equal(t, []string{"b (2 occurrences)", "a"}, deduplicateStrings([]string{"b", "a", "b"}))
	assert.Nil(t, deduplicateStrings(nil))
}
