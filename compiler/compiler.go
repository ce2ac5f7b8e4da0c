// Package compiler is used to compile a grammar atom tree into the
// corresponding bytecode.
//
// # Single-Pass Compilation
//
// The compiler walks the atom tree once, depth-first and left to right,
// appending instructions to a buffer. The index of an instruction in that
// buffer is its final address.
//
//   - Literal: MATCH pattern
//   - Sequence: the code of each child in order, then PACK_SEQUENCE n
//   - Alternative: the code of each child, each followed by
//     BRANCH_ON_SUCCESS end
//
// # Forward References
//
// The destination of the branches in an alternation is the address just past
// its last child, which is unknown while the children are being compiled. The
// compiler allocates one entry in the program's address table before the
// first child, lets every branch of the alternation refer to that entry, and
// resolves it once after the last branch has been emitted. No second pass is
// needed and compilation is linear in the size of the tree.
//
// # Reuse
//
// All emission state lives in an accumulator created by each Compile call.
// A Compiler holds only configuration, so it may be reused and shared by
// concurrent goroutines.
package compiler

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/risor-io/peg/atom"
	"github.com/risor-io/peg/bytecode"
	"github.com/risor-io/peg/errors"
)

// DefaultMaxDepth is the nesting limit applied when WithMaxDepth is not used.
const DefaultMaxDepth = 10000

// Compiler is used to compile grammar atoms into bytecode.
type Compiler struct {
	logger   zerolog.Logger
	maxDepth int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for compilation events. By default the
// global zerolog logger is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMaxDepth limits how deeply atoms may nest. A limit of zero or less
// disables the check.
func WithMaxDepth(depth int) Option {
	return func(c *Compiler) {
		c.maxDepth = depth
	}
}

// New creates and returns a new Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:   log.Logger,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compile compiles the given atom tree with a new Compiler and returns the
// resulting program.
func Compile(a atom.Atom, opts ...Option) (*bytecode.Program, error) {
	return New(opts...).Compile(a)
}

// Compile compiles the given atom tree and returns an immutable program.
// On error no program is returned; errors for atom variants without a
// handler match errors.ErrUnsupportedAtomKind.
func (c *Compiler) Compile(a atom.Atom) (*bytecode.Program, error) {
	s := &state{maxDepth: c.maxDepth, code: &code{}}
	if err := s.compile(a); err != nil {
		c.logger.Debug().Err(err).Msg("grammar compilation failed")
		return nil, err
	}
	program := s.code.toProgram(a.String())
	if err := program.Verify(); err != nil {
		return nil, errors.InvalidProgram(err)
	}
	c.logger.Debug().
		Str("program", program.ID()).
		Int("atoms", atom.Count(a)).
		Int("instructions", program.Len()).
		Int("addresses", program.AddressCount()).
		Msg("compiled grammar")
	return program, nil
}

// state is the per-call compilation context.
type state struct {
	maxDepth int
	code     *code

	// path holds one segment per enclosing atom, e.g. ["alt[1]", "seq[0]"],
	// and is only joined when an error is reported.
	path []string
}

func (s *state) location() string {
	return strings.Join(s.path, ".")
}

// compile the given atom and all its children.
func (s *state) compile(a atom.Atom) error {
	if s.maxDepth > 0 && len(s.path) >= s.maxDepth {
		return errors.MaxDepthExceeded(s.maxDepth, s.location())
	}
	switch a := a.(type) {
	case *atom.Literal:
		if a == nil {
			return errors.UnsupportedAtomKind("<nil>", s.location())
		}
		s.compileLiteral(a)
	case *atom.Sequence:
		if a == nil {
			return errors.UnsupportedAtomKind("<nil>", s.location())
		}
		return s.compileSequence(a)
	case *atom.Alternative:
		if a == nil {
			return errors.UnsupportedAtomKind("<nil>", s.location())
		}
		return s.compileAlternative(a)
	case nil:
		return errors.UnsupportedAtomKind("<nil>", s.location())
	default:
		return errors.UnsupportedAtomKind(a.Kind(), s.location())
	}
	return nil
}

func (s *state) compileChild(parent string, index int, child atom.Atom) error {
	s.path = append(s.path, fmt.Sprintf("%s[%d]", parent, index))
	err := s.compile(child)
	s.path = s.path[:len(s.path)-1]
	return err
}

func (s *state) compileLiteral(node *atom.Literal) {
	s.code.emit(bytecode.Match(node.Pattern))
}

func (s *state) compileSequence(node *atom.Sequence) error {
	for i, child := range node.Atoms {
		if err := s.compileChild(node.Kind(), i, child); err != nil {
			return err
		}
	}
	s.code.emit(bytecode.PackSequence(len(node.Atoms)))
	return nil
}

func (s *state) compileAlternative(node *atom.Alternative) error {
	end := s.code.forwardAddress()
	for i, child := range node.Atoms {
		if err := s.compileChild(node.Kind(), i, child); err != nil {
			return err
		}
		s.code.emit(bytecode.BranchOnSuccess(end))
	}
	s.code.resolve(end)
	return nil
}
