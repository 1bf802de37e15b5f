// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"
	"log"
)

// Error returns the text of the last error recorded on the manager, or the
// empty string if none occurred.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored reports whether an error occurred during a previous computation.
// Operations that set an error always also return it directly; Errored lets
// a caller check the accumulated state after a longer chain of calls.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// seterror records err as the manager's current error, chaining it onto any
// error already recorded, and returns it. Every operation that can fail goes
// through this so that Errored/Error stay consistent with the return value.
func (m *Manager) seterror(err error) error {
	if m.err != nil {
		err = fmt.Errorf("%w; %s", err, m.err.Error())
	}
	m.err = err
	if _DEBUG {
		log.Println(m.err)
	}
	return err
}

// seterrorf is the formatted variant of seterror.
func (m *Manager) seterrorf(format string, a ...interface{}) error {
	return m.seterror(fmt.Errorf(format, a...))
}
