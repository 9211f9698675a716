// Package console prints the tagged diagnostic lines of the favicon-export
// CLI.
//
// Every progress message is prefixed with [DEBUG], every failure with
// [ERROR]. Extra detail enabled by --verbose is prefixed with [verbose] and
// goes to a separate writer (stderr in the CLI), the same split the CLI has
// always used between command output and trace output.
//
// Tags are coloured with github.com/fatih/color. The library disables colour
// automatically when stdout is not a terminal or NO_COLOR is set, so piped
// output and tests see plain text.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	debugTag   = color.New(color.FgCyan)
	errorTag   = color.New(color.FgRed, color.Bold)
	verboseTag = color.New(color.Faint)
)

// Printer writes tagged diagnostic lines. The zero value is not usable;
// construct one with New.
type Printer struct {
	// out receives [DEBUG] and [ERROR] lines.
	out io.Writer

	// trace receives [verbose] lines.
	trace io.Writer

	// verbose gates Verbosef.
	verbose bool
}

// New creates a Printer. out receives the [DEBUG]/[ERROR] diagnostics,
// trace receives [verbose] lines, which are only printed when verbose is true.
func New(out, trace io.Writer, verbose bool) *Printer {
	return &Printer{out: out, trace: trace, verbose: verbose}
}

// Debugf prints a progress line: "[DEBUG] <message>".
func (p *Printer) Debugf(format string, args ...interface{}) {
	p.line(p.out, debugTag, "[DEBUG]", format, args...)
}

// Errorf prints a failure line: "[ERROR] <message>".
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.line(p.out, errorTag, "[ERROR]", format, args...)
}

// Verbosef prints a trace line only when verbose mode is enabled.
func (p *Printer) Verbosef(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.line(p.trace, verboseTag, "[verbose]", format, args...)
}

func (p *Printer) line(w io.Writer, tag *color.Color, label, format string, args ...interface{}) {
	// Write errors on a diagnostics stream have nowhere better to go.
	_, _ = fmt.Fprintf(w, "%s %s\n", tag.Sprint(label), fmt.Sprintf(format, args...))
}
