// Package bytecode provides immutable representations of compiled grammars.
//
// A [Program] is a flat, ordered sequence of [Instruction] values. The index
// of an instruction is its address. Three instructions exist:
//
//   - MATCH pattern: match pattern literally at the current input position
//   - PACK_SEQUENCE n: combine the n most recently produced results, in
//     order, into one sequence result
//   - BRANCH_ON_SUCCESS target: jump to target if the preceding match
//     attempt succeeded, otherwise fall through
//
// # Address Table
//
// Branch instructions do not hold raw addresses. They hold an [AddressRef],
// an index into the program's address table. The compiler allocates a table
// entry before the address is known, lets every branch that shares the
// destination refer to the same entry, and resolves the entry exactly once
// after the destination has been emitted. Readers resolve targets with
// [Program.TargetOf] or [Program.Address].
//
// # Immutability Guarantees
//
// Programs are immutable after construction:
//
//   - No mutation methods exist
//   - All fields are unexported
//   - [NewProgram] copies its input slices
//   - [Program.Instructions] returns a copy
//
// Programs can be shared across goroutines and serialized with [Marshal].
//
// Example:
//
//	prog, err := compiler.Compile(atom.Alt(atom.Str("a"), atom.Str("b")))
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < prog.Len(); i++ {
//	    fmt.Println(i, prog.InstructionAt(i))
//	}
package bytecode
