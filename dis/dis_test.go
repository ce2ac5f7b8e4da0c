package dis

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/peg/atom"
	"github.com/risor-io/peg/bytecode"
	"github.com/risor-io/peg/compiler"
	"github.com/risor-io/peg/op"
)

func TestAlternativeDisassembly(t *testing.T) {
	// Disable colors for consistent test output
	color.NoColor = true

	grammar := atom.Alt(atom.Seq(atom.Str("a"), atom.Str("b")), atom.Str("c"))
	program, err := compiler.Compile(grammar, compiler.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	instructions, err := Disassemble(program)
	require.NoError(t, err)
	require.Len(t, instructions, 6)
	require.Equal(t, op.BranchOnSuccess, instructions[3].Opcode)
	require.Equal(t, []string{"@0"}, instructions[3].Operands)
	require.Equal(t, "-> 6 (end)", instructions[3].Annotation)

	var buf bytes.Buffer
	Print(instructions, &buf)

	expected := strings.TrimSpace(`
+--------+-------------------+----------+------------+
| OFFSET |      OPCODE       | OPERANDS |    INFO    |
+--------+-------------------+----------+------------+
|      0 | MATCH             |      "a" |            |
|      1 | MATCH             |      "b" |            |
|      2 | PACK_SEQUENCE     |        2 |            |
|      3 | BRANCH_ON_SUCCESS |       @0 | -> 6 (end) |
|      4 | MATCH             |      "c" |            |
|      5 | BRANCH_ON_SUCCESS |       @0 | -> 6 (end) |
+--------+-------------------+----------+------------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestInnerBranchTarget(t *testing.T) {
	grammar := atom.Seq(atom.Alt(atom.Str("a"), atom.Str("b")), atom.Str("c"))
	program, err := compiler.Compile(grammar, compiler.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	instructions, err := Disassemble(program)
	require.NoError(t, err)
	require.Equal(t, "-> 4", instructions[1].Annotation)
	require.Equal(t, "-> 4", instructions[3].Annotation)
	require.Equal(t, []string{`"c"`}, instructions[4].Operands)
	require.Equal(t, "PACK_SEQUENCE", instructions[5].Name)
}

func TestDisassembleInvalidProgram(t *testing.T) {
	unresolved := bytecode.NewProgram(bytecode.ProgramParams{
		Instructions: []bytecode.Instruction{bytecode.BranchOnSuccess(0)},
		Addresses:    []int{bytecode.Unresolved},
	})
	_, err := Disassemble(unresolved)
	require.EqualError(t, err, "unresolved branch target @0 at offset 0")

	unknown := bytecode.NewProgram(bytecode.ProgramParams{
		Instructions: []bytecode.Instruction{{Op: op.Code(99)}},
	})
	_, err = Disassemble(unknown)
	require.EqualError(t, err, "unknown opcode 99 at offset 0")
}

func TestEmptyProgram(t *testing.T) {
	program, err := compiler.Compile(atom.Alt(), compiler.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	instructions, err := Disassemble(program)
	require.NoError(t, err)
	require.Empty(t, instructions)
}

func TestLongOperandTruncation(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		pattern string
		prefix  string
	}{
		{"ascii", strings.Repeat("a", 50), `"` + strings.Repeat("a", 36)},
		{"accented", strings.Repeat("é", 50), `"` + strings.Repeat("é", 36)},
		{"wide", strings.Repeat("日", 30), `"` + strings.Repeat("日", 18)},
		{"combining", strings.Repeat("e\u0301", 50), `"` + strings.Repeat("e\u0301", 36)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := compiler.Compile(atom.Str(tt.pattern), compiler.WithLogger(zerolog.Nop()))
			require.NoError(t, err)
			instructions, err := Disassemble(program)
			require.NoError(t, err)
			require.Equal(t, []string{strconv.Quote(tt.pattern)}, instructions[0].Operands)

			operand := formatOperands(instructions[0])
			require.True(t, utf8.ValidString(operand))
			require.Equal(t, tt.prefix+"...", operand)
			require.Equal(t, 40, uniseg.StringWidth(operand))
		})
	}

	short := Instruction{Opcode: op.Match, Operands: []string{`"let"`}}
	require.Equal(t, `"let"`, formatOperands(short))
}
