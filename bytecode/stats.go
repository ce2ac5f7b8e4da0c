package bytecode

// Stats contains statistics about a compiled program.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int

	// MatchCount is the number of MATCH instructions.
	MatchCount int

	// PackCount is the number of PACK_SEQUENCE instructions.
	PackCount int

	// BranchCount is the number of BRANCH_ON_SUCCESS instructions.
	BranchCount int

	// AddressCount is the number of address table entries, one per
	// compiled alternation.
	AddressCount int
}
