// Package keymap resolves a position's active Binding by walking a stack
// of layers from the highest active one down, falling through
// TRANSPARENT bindings to the base layer — the "highest active layer
// wins" rule of spec.md §6, detailed in SPEC_FULL.md §4.6.
//
// It also attaches per-position hold-tap configuration, a sparse map
// keyed by position, matching "a sparse list of hold-tap configurations
// keyed by position" (spec.md §6).
package keymap
