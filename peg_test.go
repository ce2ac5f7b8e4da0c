package peg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/peg/atom"
	"github.com/risor-io/peg/bytecode"
	"github.com/risor-io/peg/errors"
)

func TestCompile(t *testing.T) {
	program, err := Compile(atom.Alt(atom.Str("a"), atom.Str("b")), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, []bytecode.Instruction{
		bytecode.Match("a"),
		bytecode.BranchOnSuccess(0),
		bytecode.Match("b"),
		bytecode.BranchOnSuccess(0),
	}, program.Instructions())
	target, ok := program.TargetOf(1)
	require.True(t, ok)
	require.Equal(t, 4, target)
}

func TestCompileGrammar(t *testing.T) {
	grammar := []byte(`
seq:
  - alt: ["a", "b"]
  - str: "c"
`)
	program, err := CompileGrammar(grammar, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, "('a' / 'b') 'c'", program.Source())
	require.Equal(t, bytecode.Stats{
		InstructionCount: 6,
		MatchCount:       3,
		PackCount:        1,
		BranchCount:      2,
		AddressCount:     1,
	}, program.Stats())
}

func TestCompileGrammarError(t *testing.T) {
	_, err := CompileGrammar([]byte(`plus: "a"`), WithLogger(zerolog.Nop()))
	var ge *errors.GrammarError
	require.True(t, errors.As(err, &ge))
	require.Equal(t, errors.E1002, ge.Code)
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alt:\n  - x\n  - y\n"), 0o644))

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	program, err := CompileFile(path, WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 4, program.Len())
	require.Contains(t, logs.String(), "compiled grammar")

	_, err = CompileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, os.IsNotExist(err))
}

func TestWithMaxDepth(t *testing.T) {
	deep := atom.Seq(atom.Seq(atom.Seq(atom.Str("a"))))
	_, err := Compile(deep, WithLogger(zerolog.Nop()), WithMaxDepth(2))
	require.True(t, errors.Is(err, errors.ErrMaxDepth))

	_, err = Compile(deep, WithLogger(zerolog.Nop()), WithMaxDepth(0))
	require.NoError(t, err)
}
