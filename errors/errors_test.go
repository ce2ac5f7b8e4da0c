package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "input.txt", Line: 10, Column: 5},
			expected: "input.txt:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestSourceLocation_IsZero(t *testing.T) {
	require.True(t, SourceLocation{}.IsZero())
	require.True(t, SourceLocation{Filename: "x"}.IsZero())
	require.False(t, SourceLocation{Line: 1, Column: 1}.IsZero())
}

func TestUnsupportedAtomKind(t *testing.T) {
	err := UnsupportedAtomKind("repeat", "alt[1].seq[0]")
	require.Equal(t, E2001, err.Code)
	require.Equal(t, `compile error: unsupported atom kind "repeat" (at alt[1].seq[0])`, err.Error())
	require.True(t, Is(err, ErrUnsupportedAtomKind))

	wrapped := fmt.Errorf("loading grammar: %w", err)
	require.True(t, Is(wrapped, ErrUnsupportedAtomKind))
	var ce *CompileError
	require.True(t, As(wrapped, &ce))
	require.Equal(t, "alt[1].seq[0]", ce.Path)
}

func TestMaxDepthExceeded(t *testing.T) {
	err := MaxDepthExceeded(3, "seq[0].seq[0].seq[0]")
	require.Equal(t, E2002, err.Code)
	require.True(t, Is(err, ErrMaxDepth))
	require.False(t, Is(err, ErrUnsupportedAtomKind))
}

func TestInvalidProgram(t *testing.T) {
	err := InvalidProgram(fmt.Errorf("address 0 is unresolved"))
	require.Equal(t, "compile error: invalid program: address 0 is unresolved", err.Error())
	require.True(t, Is(err, ErrInvalidProgram))
}

func TestGrammarError(t *testing.T) {
	err := GrammarErrorf(E1002, SourceLocation{Line: 3, Column: 7}, "unknown atom key %q", "rep")
	require.Equal(t, `grammar error: unknown atom key "rep" (3:7)`, err.Error())

	err = GrammarErrorf(E1001, SourceLocation{}, "empty document")
	require.Equal(t, "grammar error: empty document", err.Error())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		desc     string
		category string
	}{
		{E1001, "malformed grammar document", "grammar"},
		{E1004, "invalid atom value", "grammar"},
		{E2001, "unsupported atom kind", "compile"},
		{E2003, "invalid program", "compile"},
		{ErrorCode("E9999"), "unknown error", "unknown"},
		{ErrorCode("E"), "unknown error", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			require.Equal(t, tt.desc, tt.code.Description())
			require.Equal(t, tt.category, tt.code.Category())
		})
	}
}
