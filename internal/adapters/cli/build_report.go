package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type reportOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Stdout() io.Writer
	Stderr() io.Writer
}

// Problem is a warning or error attached to a file or module.
type Problem struct {
	Subject string
	Message string
	Details []string
}

type BuildReport struct {
	out            reportOutput
	steps          []*BuildStep
	warnings       []Problem
	errors         []Problem
	startTime      time.Time
	componentCount int
	outputDir      string
	hasFailures    bool
}

func NewBuildReport(out reportOutput, outputDir string) *BuildReport {
	return &BuildReport{
		out:       out,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetComponentCount(count int) {
	r.componentCount = count
}

func (r *BuildReport) StartStep(name string) *BuildStep {
	step := &BuildStep{
		Name:      name,
		StartTime: time.Now(),
	}
	r.steps = append(r.steps, step)
	return step
}

func (r *BuildReport) EndStep(step *BuildStep, success bool, err string) {
	step.EndTime = time.Now()
	step.Success = success
	step.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddWarning(subject, message string, details []string) {
	r.warnings = append(r.warnings, Problem{Subject: subject, Message: message, Details: details})
}

func (r *BuildReport) AddError(subject, message string, details []string) {
	r.errors = append(r.errors, Problem{Subject: subject, Message: message, Details: details})
	r.hasFailures = true
}

func (r *BuildReport) Warnings() []Problem { return r.warnings }
func (r *BuildReport) Errors() []Problem   { return r.errors }

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func (r *BuildReport) Render() {
	duration := time.Since(r.startTime)
	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	w := r.out.Stdout()
	fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"%d components\n", r.componentCount)

	var failed []string
	for _, step := range r.steps {
		if !step.Success {
			failed = append(failed, "  "+r.out.Red("✗ ")+step.Name)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failed steps:")
		for _, line := range failed {
			fmt.Fprintln(w, line)
		}
	}

	if r.outputDir != "" {
		fmt.Fprintf(w, "\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	w, ew := r.out.Stdout(), r.out.Stderr()
	fmt.Fprintf(w, "  %d components\n", r.componentCount)

	fmt.Fprintln(w)
	for _, step := range r.steps {
		status := r.out.Green("✓")
		if !step.Success {
			status = r.out.Red("✗")
		}
		fmt.Fprintf(w, "  %s %s\n", status, step.Name)
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(ew, "  "+r.out.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderProblems(ew, r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  "+r.out.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderProblems(w, r.warnings)
	}

	fmt.Fprintln(w)
	if len(r.errors) > 0 {
		fmt.Fprintf(ew, "  %s\n", r.out.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	if r.outputDir != "" {
		fmt.Fprintf(w, "\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderProblems(w io.Writer, problems []Problem) {
	for _, p := range problems {
		fmt.Fprintf(w, "  %s %s\n", r.out.Red("✗"), p.Subject)
		for i, line := range strings.Split(p.Message, "\n") {
			if i == 0 {
				fmt.Fprintf(w, "    %s\n", line)
				continue
			}
			fmt.Fprintf(w, "    %s\n", strings.TrimLeft(line, " "))
		}
		for _, detail := range deduplicateStrings(p.Details) {
			fmt.Fprintf(w, "      • %s\n", detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	var order []string
	for _, item := range items {
		if seen[item] == 0 {
			order = append(order, item)
		}
		seen[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if count := seen[item]; count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}
	return result
}
