// Package lastkey tracks the most recently emitted non-modifier keycode,
// feeding both the hold-tap flavor selector (spec §4.1) and the magic-tap
// resolver (spec §4.4).
package lastkey
