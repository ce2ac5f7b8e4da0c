// Package dis supports analysis of compiled grammar programs by
// disassembling them. This works with the opcodes defined in the `op`
// package and resolves branch targets through the program's address table.
package dis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/risor-io/peg/bytecode"
	"github.com/risor-io/peg/internal/table"
	"github.com/risor-io/peg/op"
)

// Instruction represents a single program instruction and its operands.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []string
	Annotation string
}

// Disassemble returns a parsed representation of the given program. Branch
// instructions are annotated with the address their target resolves to.
func Disassemble(program *bytecode.Program) ([]Instruction, error) {
	var instructions []Instruction
	for offset := 0; offset < program.Len(); offset++ {
		inst := program.InstructionAt(offset)
		if !op.IsValid(inst.Op) {
			return nil, fmt.Errorf("unknown opcode %d at offset %d", inst.Op, offset)
		}
		var operands []string
		var annotation string
		switch inst.Op {
		case op.Match:
			operands = []string{strconv.Quote(inst.Pattern)}
		case op.PackSequence:
			operands = []string{strconv.Itoa(inst.Count)}
		case op.BranchOnSuccess:
			target, ok := program.Address(inst.Target)
			if !ok {
				return nil, fmt.Errorf("unresolved branch target @%d at offset %d", inst.Target, offset)
			}
			operands = []string{fmt.Sprintf("@%d", inst.Target)}
			annotation = fmt.Sprintf("-> %d", target)
			if target == program.Len() {
				annotation += " (end)"
			}
		}
		instructions = append(instructions, Instruction{
			Offset:     offset,
			Name:       op.GetInfo(inst.Op).Name,
			Opcode:     inst.Op,
			Operands:   operands,
			Annotation: annotation,
		})
	}
	return instructions, nil
}

var (
	bold     = color.New(color.Bold).SprintFunc()
	green    = color.New(color.FgGreen).SprintFunc()
	yellow   = color.New(color.FgYellow).SprintFunc()
	hiCyan   = color.New(color.FgHiCyan).SprintFunc()
	hiYellow = color.New(color.FgHiYellow).SprintFunc()
)

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		var values []string
		values = append(values, strconv.Itoa(instr.Offset))
		values = append(values, bold(instr.Name))
		values = append(values, formatOperands(instr))
		if instr.Annotation != "" {
			values = append(values, hiCyan(instr.Annotation))
		} else {
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperands(instr Instruction) string {
	colorize := yellow
	switch instr.Opcode {
	case op.Match:
		colorize = green
	case op.BranchOnSuccess:
		colorize = hiYellow
	}
	var sb strings.Builder
	for i, operand := range instr.Operands {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(colorize(truncate(operand, maxOperandWidth)))
	}
	return sb.String()
}

const maxOperandWidth = 40

// truncate shortens s to at most width display columns, cutting only on
// grapheme cluster boundaries and marking the cut with "...".
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	limit := width - 3
	var sb strings.Builder
	used := 0
	for gs := uniseg.NewGraphemes(s); gs.Next(); {
		cluster := gs.Str()
		w := uniseg.StringWidth(cluster)
		if used+w > limit {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	sb.WriteString("...")
	return sb.String()
}
