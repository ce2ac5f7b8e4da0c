package bytecode

import (
	"fmt"

	"github.com/risor-io/peg/op"
)

// AddressRef identifies a bytecode address that may not be known yet when an
// instruction referring to it is emitted. It indexes the program's address
// table; the compiler fills the table entry in once the address is known.
type AddressRef int

// NoAddress is the Target of instructions that do not branch.
const NoAddress AddressRef = -1

// Unresolved marks an address table entry that has not been resolved.
const Unresolved = -1

// Instruction is a single bytecode instruction. Only the operand matching Op
// is meaningful.
type Instruction struct {
	Op      op.Code
	Pattern string     // MATCH: the literal to match
	Count   int        // PACK_SEQUENCE: number of preceding results to combine
	Target  AddressRef // BRANCH_ON_SUCCESS: where to continue on success
}

// Match returns an instruction that matches pattern literally at the current
// input position.
func Match(pattern string) Instruction {
	return Instruction{Op: op.Match, Pattern: pattern, Target: NoAddress}
}

// PackSequence returns an instruction that combines the n most recently
// produced results, in order, into one sequence result.
func PackSequence(n int) Instruction {
	return Instruction{Op: op.PackSequence, Count: n, Target: NoAddress}
}

// BranchOnSuccess returns an instruction that jumps to target if the
// preceding match attempt succeeded and falls through otherwise.
func BranchOnSuccess(target AddressRef) Instruction {
	return Instruction{Op: op.BranchOnSuccess, Target: target}
}

// String returns a compact rendering such as `MATCH "a"` or
// `BRANCH_ON_SUCCESS @0`. Branch targets are shown as address references,
// since resolved addresses live in the Program.
func (i Instruction) String() string {
	switch i.Op {
	case op.Match:
		return fmt.Sprintf("%s %q", i.Op, i.Pattern)
	case op.PackSequence:
		return fmt.Sprintf("%s %d", i.Op, i.Count)
	case op.BranchOnSuccess:
		return fmt.Sprintf("%s @%d", i.Op, i.Target)
	default:
		return i.Op.String()
	}
}
