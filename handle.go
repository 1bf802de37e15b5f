// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// Handle is a value-type wrapper around an Edge that keeps its node alive
// for as long as the Handle is in scope (§4.6 Handle layer). Go has no
// destructors, so unlike a C++ handle a Handle does not automatically
// decrement its reference count when it goes out of scope: callers release
// it explicitly with Release, the same explicit-Incref/Decref discipline
// the teacher uses throughout gc.go rather than runtime.SetFinalizer (see
// doc.go). What Handle buys over a bare Edge is that construction always
// pairs with exactly one Incref, so a chain of overloaded-style operators
// (And/Or/Xor/Implies/Equiv/Not) can be written without the caller manually
// bookkeeping references at every intermediate step.
type Handle struct {
	m *Manager
	e Edge
}

// Hold wraps e into a Handle, incrementing its reference count. Use it to
// start a chain of Handle operations over an edge obtained from a raw
// Manager call (Cube, Var, Apply, ...).
func (m *Manager) Hold(e Edge) (Handle, error) {
	if _, err := m.Incref(e); err != nil {
		return Handle{}, err
	}
	return Handle{m: m, e: e}, nil
}

// Edge returns the underlying edge, e.g. to pass it to a Manager method that
// has no Handle-returning counterpart.
func (h Handle) Edge() Edge { return h.e }

// Release decrements the reference count of the node h wraps. A Handle must
// not be used again after Release.
func (h Handle) Release() error {
	_, err := h.m.Decref(h.e)
	return err
}

// Equal reports whether two handles denote the same edge (same node id and
// complement bit) — not merely the same Boolean function, the same pointer,
// matching the teacher's Node equality in edge.go/nodes.go.
func (h Handle) Equal(other Handle) bool {
	return h.e == other.e
}

func (h Handle) dispatch(op Operator, other Handle) (Handle, error) {
	res, err := h.m.Apply(h.e, other.e, op)
	if err != nil {
		return Handle{}, err
	}
	return h.m.Hold(res)
}

// Not returns a held handle for the negation of h. Negation never recurses
// (Manager.Not is O(1)), but the result is still wrapped so the caller keeps
// exactly one reference to it, like every other Handle operator.
func (h Handle) Not() (Handle, error) {
	res, err := h.m.Not(h.e)
	if err != nil {
		return Handle{}, err
	}
	return h.m.Hold(res)
}

func (h Handle) And(other Handle) (Handle, error)     { return h.dispatch(OPand, other) }
func (h Handle) Or(other Handle) (Handle, error)      { return h.dispatch(OPor, other) }
func (h Handle) Xor(other Handle) (Handle, error)     { return h.dispatch(OPxor, other) }
func (h Handle) Implies(other Handle) (Handle, error) { return h.dispatch(OPimp, other) }
func (h Handle) Equiv(other Handle) (Handle, error)   { return h.dispatch(OPbiimp, other) }

// AndAll folds And across hs, returning the manager's True handle for an
// empty slice.
func AndAll(m *Manager, hs ...Handle) (Handle, error) {
	res, err := m.Hold(m.True())
	if err != nil {
		return Handle{}, err
	}
	for _, h := range hs {
		next, err := res.And(h)
		res.Release()
		if err != nil {
			return Handle{}, err
		}
		res = next
	}
	return res, nil
}

// OrAll folds Or across hs, returning the manager's False handle for an
// empty slice.
func OrAll(m *Manager, hs ...Handle) (Handle, error) {
	res, err := m.Hold(m.False())
	if err != nil {
		return Handle{}, err
	}
	for _, h := range hs {
		next, err := res.Or(h)
		res.Release()
		if err != nil {
			return Handle{}, err
		}
		res = next
	}
	return res, nil
}
