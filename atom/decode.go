package atom

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/risor-io/peg/errors"
)

// maxDecodeDepth bounds recursion through nested mappings and aliases.
const maxDecodeDepth = 10000

// Decode parses a YAML grammar document into an atom tree.
//
// Each atom is either a scalar, which is shorthand for a literal, a list,
// which is shorthand for a sequence, or a mapping with exactly one of the
// keys "str", "seq" or "alt":
//
//	alt:
//	  - str: "a"
//	  - seq: ["b", {str: "c"}]
func Decode(data []byte) (Atom, error) {
	d := &decoder{}
	return d.decode(data)
}

// DecodeReader reads a YAML grammar document from r. Read errors are returned
// unmodified.
func DecodeReader(r io.Reader) (Atom, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// DecodeFile reads and parses the YAML grammar document at path. Errors in
// the document carry path as their filename.
func DecodeFile(path string) (Atom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := &decoder{filename: path}
	return d.decode(data)
}

type decoder struct {
	filename string
	depth    int
}

func (d *decoder) decode(data []byte) (Atom, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.GrammarError{
			Code:     errors.E1001,
			Message:  err.Error(),
			Location: errors.SourceLocation{Filename: d.filename},
			Err:      err,
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.GrammarErrorf(errors.E1001,
			errors.SourceLocation{Filename: d.filename}, "empty grammar document")
	}
	return d.node(doc.Content[0])
}

func (d *decoder) loc(n *yaml.Node) errors.SourceLocation {
	return errors.SourceLocation{Filename: d.filename, Line: n.Line, Column: n.Column}
}

func (d *decoder) node(n *yaml.Node) (Atom, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxDecodeDepth {
		return nil, errors.GrammarErrorf(errors.E1004, d.loc(n),
			"grammar nests deeper than %d levels", maxDecodeDepth)
	}
	switch n.Kind {
	case yaml.AliasNode:
		return d.node(n.Alias)
	case yaml.ScalarNode:
		return d.literal(n)
	case yaml.SequenceNode:
		atoms, err := d.list(n)
		if err != nil {
			return nil, err
		}
		return Seq(atoms...), nil
	case yaml.MappingNode:
		return d.mapping(n)
	default:
		return nil, errors.GrammarErrorf(errors.E1004, d.loc(n), "unexpected yaml node")
	}
}

func (d *decoder) literal(n *yaml.Node) (Atom, error) {
	if n.Kind == yaml.AliasNode {
		return d.literal(n.Alias)
	}
	if n.Kind != yaml.ScalarNode {
		return nil, errors.GrammarErrorf(errors.E1004, d.loc(n), "literal pattern must be a scalar")
	}
	if n.Tag == "!!null" {
		return nil, errors.GrammarErrorf(errors.E1004, d.loc(n), "literal pattern must not be null")
	}
	return Str(n.Value), nil
}

func (d *decoder) list(n *yaml.Node) ([]Atom, error) {
	if n.Kind == yaml.AliasNode {
		return d.list(n.Alias)
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.GrammarErrorf(errors.E1004, d.loc(n), "expected a list of atoms")
	}
	var atoms []Atom
	for _, child := range n.Content {
		a, err := d.node(child)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

func (d *decoder) mapping(n *yaml.Node) (Atom, error) {
	if len(n.Content) != 2 {
		return nil, errors.GrammarErrorf(errors.E1003, d.loc(n),
			"atom mapping must have exactly one key, got %d", len(n.Content)/2)
	}
	key, value := n.Content[0], n.Content[1]
	switch key.Value {
	case "str":
		return d.literal(value)
	case "seq":
		atoms, err := d.list(value)
		if err != nil {
			return nil, err
		}
		return Seq(atoms...), nil
	case "alt":
		atoms, err := d.list(value)
		if err != nil {
			return nil, err
		}
		return Alt(atoms...), nil
	default:
		return nil, errors.GrammarErrorf(errors.E1002, d.loc(key), "unknown atom key %q", key.Value)
	}
}
