// Package atom defines the grammar atoms that the compiler translates into
// bytecode.
//
// Atoms form an immutable tree owned by the caller. Three variants are
// defined here: Literal, Sequence and Alternative. The Atom interface is
// deliberately open so other packages can introduce further variants; the
// compiler rejects any variant it has no handler for.
package atom

import (
	"fmt"
	"strings"
)

// Atom is a node in a grammar tree.
type Atom interface {
	// Kind returns a short, stable name for the variant, e.g. "str".
	Kind() string

	// String returns a human friendly rendering of the atom in PEG notation.
	String() string
}

// Literal matches Pattern verbatim.
type Literal struct {
	Pattern string
}

// Sequence matches each of Atoms in order.
type Sequence struct {
	Atoms []Atom
}

// Alternative tries each of Atoms in order and commits to the first that
// succeeds.
type Alternative struct {
	Atoms []Atom
}

// Str returns a Literal atom.
func Str(pattern string) *Literal {
	return &Literal{Pattern: pattern}
}

// Seq returns a Sequence of the given atoms.
func Seq(atoms ...Atom) *Sequence {
	return &Sequence{Atoms: atoms}
}

// Alt returns an Alternative of the given atoms.
func Alt(atoms ...Atom) *Alternative {
	return &Alternative{Atoms: atoms}
}

func (x *Literal) Kind() string { return "str" }

func (x *Literal) String() string { return fmt.Sprintf("'%s'", escape(x.Pattern)) }

func (x *Sequence) Kind() string { return "seq" }

func (x *Sequence) String() string {
	parts := make([]string, 0, len(x.Atoms))
	for _, a := range x.Atoms {
		parts = append(parts, render(a, precSequence))
	}
	return strings.Join(parts, " ")
}

func (x *Alternative) Kind() string { return "alt" }

func (x *Alternative) String() string {
	parts := make([]string, 0, len(x.Atoms))
	for _, a := range x.Atoms {
		parts = append(parts, render(a, precAlternative))
	}
	return strings.Join(parts, " / ")
}

const (
	precAlternative = iota
	precSequence
)

// render wraps a in parentheses when it binds looser than the enclosing
// context.
func render(a Atom, prec int) string {
	if a == nil {
		return "<nil>"
	}
	var own int
	switch x := a.(type) {
	case *Alternative:
		own = precAlternative
		if len(x.Atoms) < 2 {
			own = precSequence + 1
		}
	case *Sequence:
		own = precSequence
		if len(x.Atoms) < 2 {
			own = precSequence + 1
		}
	default:
		return a.String()
	}
	if own < prec {
		return "(" + a.String() + ")"
	}
	return a.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(s)
}
