// Package sink defines the action-sink interface the engine invokes with
// resolved bindings, plus an in-memory reference implementation for tests
// and the CLI simulator.
//
// The real action sink — a firmware HID queue and modifier tracker — is a
// deliberately excluded external collaborator (spec.md §1): this package
// only models the boundary.
package sink
