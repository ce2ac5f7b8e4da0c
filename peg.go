// Package peg compiles parsing-expression grammars into bytecode programs.
//
// Grammars are trees of atoms built with the atom package or decoded from
// YAML grammar documents. Compiled programs are immutable and safe for
// concurrent use.
package peg

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/risor-io/peg/atom"
	"github.com/risor-io/peg/bytecode"
	"github.com/risor-io/peg/compiler"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{
		logger:   log.Logger,
		maxDepth: compiler.DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	return []compiler.Option{
		compiler.WithLogger(o.logger),
		compiler.WithMaxDepth(o.maxDepth),
	}
}

// WithLogger sets the logger that receives compilation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth limits how deeply atoms may nest. A limit of zero or less
// disables the check.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Compile compiles an atom tree into a program.
func Compile(a atom.Atom, opts ...Option) (*bytecode.Program, error) {
	o := collectOptions(opts...)
	return compiler.Compile(a, o.compilerOpts()...)
}

// CompileGrammar decodes a YAML grammar document and compiles it.
func CompileGrammar(data []byte, opts ...Option) (*bytecode.Program, error) {
	a, err := atom.Decode(data)
	if err != nil {
		return nil, err
	}
	return Compile(a, opts...)
}

// CompileFile reads a YAML grammar document from path and compiles it.
// Grammar errors report locations within the file.
func CompileFile(path string, opts ...Option) (*bytecode.Program, error) {
	a, err := atom.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(a, opts...)
}
