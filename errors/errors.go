// Package errors defines error types returned while loading grammars and
// compiling them into bytecode.
//
// # Error Boundary
//
// Errors from this package describe problems in the grammar or in the
// compiler itself. Failures of the streams wrapped by a source.Source are
// never translated into these types; they reach the caller unmodified.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrUnsupportedAtomKind is matched by every CompileError raised for an atom
// variant the compiler has no handler for.
var ErrUnsupportedAtomKind = stderrors.New("unsupported atom kind")

// ErrMaxDepth is matched by CompileErrors raised when a grammar nests deeper
// than the configured limit.
var ErrMaxDepth = stderrors.New("maximum nesting depth exceeded")

// ErrInvalidProgram is matched by CompileErrors raised when emitted bytecode
// fails verification.
var ErrInvalidProgram = stderrors.New("invalid program")

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Is reports whether any error in err's tree matches target. It is a
// shortcut so callers importing this package need not also import the
// standard library errors package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
