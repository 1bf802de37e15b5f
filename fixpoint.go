// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// Reachable computes the least fixpoint of a transition relation starting
// from an initial state set: the classic forward reachability loop used to
// explore the state space of a transition system encoded as a BDD. It is
// generalized from the inline fixpoint loop the teacher writes by hand in
// milner_test.go (the "fast" variant using AndExist) into a reusable
// Manager method, since the spec's symbolic computation layer calls for
// relational products and quantification to compose into exactly this kind
// of computation (§4.3 Relational product).
//
// current names the variables transition is relational over on its source
// side; nextToCurrent maps each of transition's primed ("next-state")
// variable names back onto the corresponding current-state variable, so
// that each successor set can be folded back into the set being grown.
func (m *Manager) Reachable(initial, transition Edge, current []string, nextToCurrent map[string]string) (Edge, error) {
	if !m.store.valid(initial) || !m.store.valid(transition) {
		return Edge{}, m.seterror(ErrInvalidEdge)
	}
	r := initial
	for {
		succ, err := m.AppEx(r, transition, OPand, current...)
		if err != nil {
			return Edge{}, err
		}
		folded, err := m.Rename(succ, nextToCurrent)
		if err != nil {
			return Edge{}, err
		}
		next, err := m.Apply(r, folded, OPor)
		if err != nil {
			return Edge{}, err
		}
		if next == r {
			return r, nil
		}
		r = next
	}
}
