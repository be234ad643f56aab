package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/toyz/vtwrap/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics.
// It also receives slot synthesis failures from the wrapper generator.
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer

	mu       sync.Mutex
	failures []*errors.SlotSynthesisError
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects the reporter, mainly for tests
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportSlotFailure records and prints a slot that produced no wrapper
func (r *DiagnosticReporter) ReportSlotFailure(err *errors.SlotSynthesisError) {
	r.mu.Lock()
	r.failures = append(r.failures, err)
	r.mu.Unlock()

	r.ReportWarning(err.Message)
}

// SlotFailures returns the slot failures reported so far
func (r *DiagnosticReporter) SlotFailures() []*errors.SlotSynthesisError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.SlotSynthesisError(nil), r.failures...)
}

// ResetSlotFailures forgets previously reported slot failures
func (r *DiagnosticReporter) ResetSlotFailures() {
	r.mu.Lock()
	r.failures = nil
	r.mu.Unlock()
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, s := range suggestions {
		fmt.Fprintf(r.errOut, "  - %s\n", s)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	var multi *errors.MultipleErrors
	var ve errors.VtwrapError
	switch {
	case stderrors.As(err, &multi):
		for i, e := range multi.Errors {
			fmt.Fprintf(r.errOut, "[%d/%d]\n", i+1, multi.Count())
			r.reportVtwrapError(e)
		}
	case stderrors.As(err, &ve):
		r.reportVtwrapError(ve)
	default:
		fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.errOut, "Run with --verbose for more detailed output\n\n")
}

func (r *DiagnosticReporter) reportVtwrapError(err errors.VtwrapError) {
	header := r.errorTypeTitle(err.ErrorCode())
	fmt.Fprintf(r.errOut, "Type: %s\n", header)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(header)+6))

	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc.String())
	}

	if context := err.Context(); len(context) > 0 && r.verbose {
		r.printContext(context)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.errOut, "Error Chain:\n")
		level := 1
		for cause := err.Unwrap(); cause != nil; cause = stderrors.Unwrap(cause) {
			fmt.Fprintf(r.errOut, "    %d. %s\n", level, cause.Error())
			level++
		}
		fmt.Fprintln(r.errOut)
	}
}

func (r *DiagnosticReporter) errorTypeTitle(code errors.ErrorCode) string {
	switch code {
	case errors.SyntaxErrorCode:
		return "Descriptor Syntax Error"
	case errors.ValidationErrorCode:
		return "Validation Error"
	case errors.SlotSynthesisErrorCode:
		return "Slot Synthesis Error"
	case errors.TemplateErrorCode:
		return "Rendering Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	default:
		return "Unknown Error"
	}
}

// printContext prints context information in a stable order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func (r *DiagnosticReporter) formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.errOut, "\n")
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "=======================================\n\n")

	fmt.Fprintf(r.out, "Processed %d descriptor files\n", summary.DescriptorFiles)
	fmt.Fprintf(r.out, "Generated %d wrapper classes\n", summary.ClassesGenerated)
	fmt.Fprintf(r.out, "Generated %d slot wrappers\n", summary.SlotsGenerated)
	if summary.SlotsSkipped > 0 {
		fmt.Fprintf(r.out, "Skipped %d slots\n", summary.SlotsSkipped)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	DescriptorFiles  int
	Pairs            int
	ClassesGenerated int
	SlotsGenerated   int
	SlotsSkipped     int
	GeneratedFiles   []string
}
