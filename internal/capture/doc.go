// Package capture implements the bounded event-capture buffer that holds
// position- and keycode-state-change events while a hold-tap is undecided.
//
// The buffer preserves arrival order (global invariant 3 of spec.md §3)
// and is drained FIFO once a decision is made, replaying each event
// through the normal dispatch pipeline. A drain may be appended to while
// it runs, since deciding one hold-tap can surface another mid-drain.
package capture
