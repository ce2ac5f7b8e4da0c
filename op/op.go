// Package op defines opcodes emitted by the grammar compiler and consumed by
// a parsing virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Matching
	Match Code = 1

	// Results
	PackSequence Code = 10

	// Control flow
	BranchOnSuccess Code = 20
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Match, "MATCH", 1},
		{PackSequence, "PACK_SEQUENCE", 1},
		{BranchOnSuccess, "BRANCH_ON_SUCCESS", 1},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Unknown opcodes yield
// a zero Info with an empty name.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

// IsValid reports whether the opcode is one this package defines.
func IsValid(op Code) bool {
	return op != Invalid && GetInfo(op).Name != ""
}

// String returns the opcode name, e.g. "MATCH".
func (c Code) String() string {
	if name := GetInfo(c).Name; name != "" {
		return name
	}
	return "INVALID"
}
