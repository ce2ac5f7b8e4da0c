package compiler

import (
	"github.com/risor-io/peg/bytecode"
)

// code accumulates the output of a single compilation. A fresh code is
// created for every Compile call and discarded afterwards.
type code struct {
	instructions []bytecode.Instruction

	// addresses is the side table that AddressRefs index into. Entries are
	// bytecode.Unresolved until resolve is called for them.
	addresses []int
}

// emit appends inst and returns its address.
func (c *code) emit(inst bytecode.Instruction) int {
	pos := len(c.instructions)
	c.instructions = append(c.instructions, inst)
	return pos
}

// position returns the address the next emitted instruction will occupy.
func (c *code) position() int {
	return len(c.instructions)
}

// forwardAddress allocates an unresolved address table entry.
func (c *code) forwardAddress() bytecode.AddressRef {
	c.addresses = append(c.addresses, bytecode.Unresolved)
	return bytecode.AddressRef(len(c.addresses) - 1)
}

// resolve binds ref to the current position. Each ref is resolved exactly
// once; resolving it again is a compiler bug.
func (c *code) resolve(ref bytecode.AddressRef) {
	if c.addresses[ref] != bytecode.Unresolved {
		panic("compile error: address resolved twice")
	}
	c.addresses[ref] = c.position()
}

func (c *code) toProgram(source string) *bytecode.Program {
	return bytecode.NewProgram(bytecode.ProgramParams{
		Source:       source,
		Instructions: c.instructions,
		Addresses:    c.addresses,
	})
}
