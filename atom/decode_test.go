package atom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/peg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Atom
	}{
		{"scalar shorthand", `"a"`, Str("a")},
		{"str key", `str: abc`, Str("abc")},
		{"numeric scalar", `str: 42`, Str("42")},
		{"list shorthand", `["a", "b"]`, Seq(Str("a"), Str("b"))},
		{"empty seq", `seq: []`, Seq()},
		{
			"nested",
			`
alt:
  - str: "a"
  - seq: ["b", {str: "c"}]
`,
			Alt(Str("a"), Seq(Str("b"), Str("c"))),
		},
		{
			"anchors",
			`
seq:
  - &kw {str: "let"}
  - " "
  - *kw
`,
			Seq(Str("let"), Str(" "), Str("let")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
		line  int
	}{
		{"empty", ``, errors.E1001, 0},
		{"malformed", "alt: [", errors.E1001, 0},
		{"unknown key", "alt:\n  - rep: a\n", errors.E1002, 2},
		{"two keys", "str: a\nseq: []\n", errors.E1003, 1},
		{"null literal", "str: ~\n", errors.E1004, 1},
		{"seq of scalar", "seq: a\n", errors.E1004, 1},
		{"str of list", "str: [a]\n", errors.E1004, 1},
		{"self-referential alias", "seq: &x [\"a\", *x]\n", errors.E1004, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			var ge *errors.GrammarError
			require.True(t, errors.As(err, &ge), "got %T: %v", err, err)
			require.Equal(t, tt.code, ge.Code)
			if tt.line > 0 {
				require.Equal(t, tt.line, ge.Location.Line)
			}
		})
	}
}

func TestDecodeCyclicAlias(t *testing.T) {
	_, err := Decode([]byte("seq: &x [\"a\", *x]\n"))
	require.ErrorContains(t, err, "grammar nests deeper than 10000 levels")
}

func TestDecodeReader(t *testing.T) {
	result, err := DecodeReader(strings.NewReader(`alt: [a, b]`))
	require.NoError(t, err)
	require.Equal(t, Alt(Str("a"), Str("b")), result)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seq:\n  - a\n  - bogus: b\n"), 0o644))

	_, err := DecodeFile(path)
	var ge *errors.GrammarError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, path, ge.Location.Filename)
	require.Equal(t, 3, ge.Location.Line)
	require.Equal(t, 5, ge.Location.Column)

	_, err = DecodeFile(filepath.Join(dir, "missing.yaml"))
	require.True(t, os.IsNotExist(err))
}
