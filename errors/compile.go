package errors

import (
	"fmt"
	"strings"
)

// CompileError represents a failure to compile an atom tree. Path locates
// the offending atom within the tree, e.g. "alt[1].seq[0]".
type CompileError struct {
	Code    ErrorCode
	Message string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("compile error: ")
	b.WriteString(e.Message)
	if e.Path != "" {
		fmt.Fprintf(&b, " (at %s)", e.Path)
	}
	return b.String()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// UnsupportedAtomKind returns the error raised for an atom variant without a
// compile handler.
func UnsupportedAtomKind(kind, path string) *CompileError {
	return &CompileError{
		Code:    E2001,
		Message: fmt.Sprintf("unsupported atom kind %q", kind),
		Path:    path,
		Err:     ErrUnsupportedAtomKind,
	}
}

// MaxDepthExceeded returns the error raised when the atom tree nests deeper
// than limit.
func MaxDepthExceeded(limit int, path string) *CompileError {
	return &CompileError{
		Code:    E2002,
		Message: fmt.Sprintf("maximum nesting depth of %d exceeded", limit),
		Path:    path,
		Err:     ErrMaxDepth,
	}
}

// InvalidProgram wraps a verification failure of freshly emitted bytecode.
func InvalidProgram(cause error) *CompileError {
	return &CompileError{
		Code:    E2003,
		Message: fmt.Sprintf("%s: %s", ErrInvalidProgram, cause),
		Err:     ErrInvalidProgram,
	}
}

// GrammarError reports a problem in a grammar document, positioned at the
// offending node.
type GrammarError struct {
	Code     ErrorCode
	Message  string
	Location SourceLocation
	Err      error
}

// Error implements the error interface.
func (e *GrammarError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("grammar error: %s", e.Message)
	}
	return fmt.Sprintf("grammar error: %s (%s)", e.Message, e.Location)
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// GrammarErrorf creates a GrammarError at the given location.
func GrammarErrorf(code ErrorCode, loc SourceLocation, format string, args ...any) *GrammarError {
	return &GrammarError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}
