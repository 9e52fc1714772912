// Package holdtap implements the per-key contextual hold-tap decision state
// machine: the core of the engine, responsible for resolving an UNDECIDED
// dual-purpose key press into TAP, HOLD_TIMER, or HOLD_INTERRUPT.
//
// A Config is immutable and supplied by the keymap, one per configured
// position. A Registry tracks the ActiveHoldTap records for every
// currently-held dual-purpose key plus the single undecided one, if any.
// Everything here is pure decision logic: it never presses or releases a
// binding directly. internal/dispatch owns the event plumbing and invokes
// the sink.
package holdtap
