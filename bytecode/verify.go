package bytecode

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/risor-io/peg/op"
)

// Verify checks the program for internal consistency and reports every
// problem found: unknown opcodes, negative PACK_SEQUENCE counts, branch
// references outside the address table, unresolved addresses and addresses
// beyond the end of the program.
func (p *Program) Verify() error {
	var result *multierror.Error
	for ref, addr := range p.addresses {
		switch {
		case addr == Unresolved:
			result = multierror.Append(result, fmt.Errorf("address @%d is unresolved", ref))
		case addr < 0 || addr > len(p.instructions):
			result = multierror.Append(result,
				fmt.Errorf("address @%d resolves to %d, outside [0, %d]", ref, addr, len(p.instructions)))
		}
	}
	for i, inst := range p.instructions {
		switch inst.Op {
		case op.Match:
		case op.PackSequence:
			if inst.Count < 0 {
				result = multierror.Append(result,
					fmt.Errorf("instruction %d: negative sequence count %d", i, inst.Count))
			}
		case op.BranchOnSuccess:
			if inst.Target < 0 || int(inst.Target) >= len(p.addresses) {
				result = multierror.Append(result,
					fmt.Errorf("instruction %d: branch reference @%d outside address table", i, inst.Target))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("instruction %d: unknown opcode %d", i, inst.Op))
		}
	}
	return result.ErrorOrNil()
}
