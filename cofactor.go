// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

// Cofactor computes the restriction of e under name := val, i.e. e|_{name=val}.
// It is a thin wrapper over Compose substituting the chosen constant for the
// variable, following the restriction semantics from the component design
// for the operator kernel (§4.2 Cofactor).
func (m *Manager) Cofactor(e Edge, name string, val bool) (Edge, error) {
	r := bddfalse
	if val {
		r = bddtrue
	}
	return m.Compose(e, name, r)
}
