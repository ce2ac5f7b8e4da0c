package atom

// Visitor defines the interface for atom tree traversal. If Visit returns
// nil, children of the atom are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(a Atom) (w Visitor)
}

// Walk traverses an atom tree in depth-first order. It starts by calling
// v.Visit(a); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of a.
// Variants defined outside this package are visited but have no children.
func Walk(v Visitor, a Atom) {
	if v = v.Visit(a); v == nil {
		return
	}
	switch x := a.(type) {
	case *Sequence:
		for _, child := range x.Atoms {
			if child != nil {
				Walk(v, child)
			}
		}
	case *Alternative:
		for _, child := range x.Atoms {
			if child != nil {
				Walk(v, child)
			}
		}
	}
}

type inspector func(Atom) bool

func (f inspector) Visit(a Atom) Visitor {
	if f(a) {
		return f
	}
	return nil
}

// Inspect traverses an atom tree in depth-first order, calling f for each
// atom. If f returns false, the children of that atom are skipped.
func Inspect(a Atom, f func(Atom) bool) {
	Walk(inspector(f), a)
}

// Count returns the number of atoms in the tree rooted at a.
func Count(a Atom) int {
	if a == nil {
		return 0
	}
	n := 0
	Inspect(a, func(Atom) bool {
		n++
		return true
	})
	return n
}
