package cmd

import (
	"github.com/go-formal/obdd"
	"github.com/go-formal/obdd/internal/exprparse"
)

// buildFromFlag builds a fresh Manager from --vars/--config and parses expr
// against it, returning both so the caller can keep using the manager
// (Statistics, PrintDot, further Apply calls) after evaluating the formula.
func buildFromFlag(expr string) (*obdd.Manager, obdd.Edge, error) {
	m, err := newManager()
	if err != nil {
		return nil, obdd.Edge{}, err
	}
	e, err := exprparse.Parse(m, expr)
	if err != nil {
		return nil, obdd.Edge{}, err
	}
	return m, e, nil
}
