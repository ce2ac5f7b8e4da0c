package bytecode

import (
	"github.com/gofrs/uuid"

	"github.com/risor-io/peg/op"
)

// Program is a compiled grammar. It is immutable after creation and safe for
// concurrent use.
type Program struct {
	id           string
	source       string
	instructions []Instruction
	addresses    []int
}

// ProgramParams contains parameters for creating a new Program.
type ProgramParams struct {
	// ID identifies the program. A random UUID is assigned when empty.
	ID string

	// Source is a rendering of the grammar the program was compiled from.
	Source string

	Instructions []Instruction

	// Addresses is the resolved address table indexed by AddressRef.
	Addresses []int
}

// NewProgram creates a new immutable Program from the given parameters.
// Input slices are copied to ensure immutability.
func NewProgram(params ProgramParams) *Program {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	return &Program{
		id:           id,
		source:       params.Source,
		instructions: copyInstructions(params.Instructions),
		addresses:    copyInts(params.Addresses),
	}
}

// ID returns the unique identifier for this program.
func (p *Program) ID() string {
	return p.id
}

// Source returns the rendering of the grammar this program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// Len returns the number of instructions. This is also the size of the
// address space branch targets refer to; a target equal to Len() denotes the
// end of the program.
func (p *Program) Len() int {
	return len(p.instructions)
}

// InstructionAt returns the instruction at the given address.
func (p *Program) InstructionAt(index int) Instruction {
	return p.instructions[index]
}

// Instructions returns a copy of all instructions in address order.
func (p *Program) Instructions() []Instruction {
	return copyInstructions(p.instructions)
}

// AddressCount returns the number of entries in the address table.
func (p *Program) AddressCount() int {
	return len(p.addresses)
}

// Address returns the address ref resolves to. The second result is false if
// ref is outside the address table or was never resolved.
func (p *Program) Address(ref AddressRef) (int, bool) {
	if ref < 0 || int(ref) >= len(p.addresses) {
		return Unresolved, false
	}
	addr := p.addresses[ref]
	return addr, addr != Unresolved
}

// TargetOf returns the resolved branch target of the instruction at index.
// The second result is false if the instruction does not branch or its
// target is unresolved.
func (p *Program) TargetOf(index int) (int, bool) {
	if index < 0 || index >= len(p.instructions) {
		return Unresolved, false
	}
	inst := p.instructions[index]
	if inst.Op != op.BranchOnSuccess {
		return Unresolved, false
	}
	return p.Address(inst.Target)
}

// Stats returns statistics about this program.
func (p *Program) Stats() Stats {
	stats := Stats{
		InstructionCount: len(p.instructions),
		AddressCount:     len(p.addresses),
	}
	for _, inst := range p.instructions {
		switch inst.Op {
		case op.Match:
			stats.MatchCount++
		case op.PackSequence:
			stats.PackCount++
		case op.BranchOnSuccess:
			stats.BranchCount++
		}
	}
	return stats
}

func copyInstructions(src []Instruction) []Instruction {
	if src == nil {
		return nil
	}
	dst := make([]Instruction, len(src))
	copy(dst, src)
	return dst
}

func copyInts(src []int) []int {
	if src == nil {
		return nil
	}
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}
