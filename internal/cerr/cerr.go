// Package cerr implements the VM's compile-time failure values: a
// location-prefixed message that can render its offending source line and
// a caret under the column, plus the #include chain active when the error
// was raised. CompilationErrors aggregates every error a single compile
// pass collected into one error value.
package cerr

import (
	"fmt"
	"strings"
)

// IncludeFrame records one level of an active #include chain: the source
// name and the line/column of the #include directive itself.
type IncludeFrame struct {
	Source string
	Line   int
	Column int
}

// CompilationError is a single compile-time diagnostic.
type CompilationError struct {
	Source  string
	Line    int
	Column  int
	Message string

	// SourceLine is the full text of the offending line, captured at
	// report time so Format can render a caret without re-reading the
	// source later.
	SourceLine string

	// Chain records the #include stack active when this error was raised,
	// outermost first.
	Chain []IncludeFrame
}

// New constructs a CompilationError with no include chain.
func New(source string, line, column int, sourceLine, format string, args ...any) *CompilationError {
	return &CompilationError{
		Source:     source,
		Line:       line,
		Column:     column,
		Message:    fmt.Sprintf(format, args...),
		SourceLine: sourceLine,
	}
}

// WithChain returns a copy of e with its include chain set to chain.
func (e *CompilationError) WithChain(chain []IncludeFrame) *CompilationError {
	clone := *e
	clone.Chain = chain
	return &clone
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

// Format renders the error, its source line, and a caret under the
// offending column; color wraps the caret line in ANSI red when true.
func (e *CompilationError) Format(color bool) string {
	var b strings.Builder
	for _, frame := range e.Chain {
		fmt.Fprintf(&b, "in file included from %s:%d:%d:\n", frame.Source, frame.Line, frame.Column)
	}
	fmt.Fprintf(&b, "%s:%d:%d: %s\n", e.Source, e.Line, e.Column, e.Message)
	if e.SourceLine != "" {
		b.WriteString(e.SourceLine)
		b.WriteByte('\n')
		caret := strings.Repeat(" ", max(0, e.Column-1)) + "^"
		if color {
			caret = "\x1b[31m" + caret + "\x1b[0m"
		}
		b.WriteString(caret)
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CompilationErrors aggregates every diagnostic a single compile pass
// collected, implementing error by joining each one's one-line form.
type CompilationErrors struct {
	Errors []*CompilationError
}

func (e *CompilationErrors) Error() string {
	lines := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Format renders every diagnostic in order via CompilationError.Format.
func (e *CompilationErrors) Format(color bool) string {
	parts := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}

// Empty reports whether the aggregate carries no diagnostics.
func (e *CompilationErrors) Empty() bool { return len(e.Errors) == 0 }

// Add appends d to the aggregate.
func (e *CompilationErrors) Add(d *CompilationError) { e.Errors = append(e.Errors, d) }

// AsError returns e as an error, or nil if it carries no diagnostics —
// the usual pattern for a compile pass's terminal return statement.
func (e *CompilationErrors) AsError() error {
	if e.Empty() {
		return nil
	}
	return e
}
