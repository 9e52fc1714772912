// Package keys defines the wire-level types shared by every package in the
// contextual hold-tap engine: positions, timestamps, bindings, and the two
// event shapes the engine ingests.
//
// None of these types carry behavior of their own; they exist so that
// internal/holdtap, internal/capture, internal/dispatch, internal/magic,
// and internal/keymap can agree on a shape without importing each other.
package keys
