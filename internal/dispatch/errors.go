package dispatch

import "errors"

// ErrBindingFailure wraps a non-nil return from sink.Sink.Invoke: the
// chain aborts and subsequent bindings in the same tap/hold list are
// skipped (spec.md §7).
var ErrBindingFailure = errors.New("dispatch: action sink rejected binding")

// Disposition is the listener return convention of spec.md §6: BUBBLE lets
// the event continue downstream unmodified; CAPTURED means the dispatcher
// took ownership and the event must not propagate further.
type Disposition int

const (
	Bubble Disposition = iota
	Captured
)

func (d Disposition) String() string {
	if d == Captured {
		return "captured"
	}
	return "bubble"
}
