package magic

import "github.com/chtengine/cht/internal/keys"

// Sentinel keycodes in the magic/alt-repeat identifier space, distinct from
// ordinary HID usages. RepeatKeycode means "repeat the last key verbatim";
// AltRepeatKeycode is the alt-repeat/magic key itself.
const (
	RepeatKeycode    keys.Keycode = 0xF000
	AltRepeatKeycode keys.Keycode = 0xF001

	// TapFieldTruncated is the placeholder a mod-tap's 8-bit tap field
	// stores in place of AltRepeatKeycode, which does not fit. Every
	// reimplementation must restore it through UnwrapTapKeycode rather than
	// special-casing the truncated value at call sites (spec §9).
	TapFieldTruncated keys.Keycode = 0x7A
)

// BindingKind names the dual-purpose binding shapes UnwrapTapKeycode needs
// to see through to reach the true tap keycode.
type BindingKind int

const (
	// KindPlain is an ordinary, non-dual-purpose keycode binding.
	KindPlain BindingKind = iota
	// KindModTap is a mod-tap binding: hold emits a modifier, tap emits a
	// keycode packed into an 8-bit tap field.
	KindModTap
	// KindLayerTap is a layer-tap binding: hold activates a layer, tap
	// emits a keycode.
	KindLayerTap
)

// UnwrapTapKeycode extracts the effective tap keycode from a binding,
// restoring AltRepeatKeycode where a mod-tap's tap field could not
// represent it directly (spec §9 "mod-tap tap-field truncation"). Plain
// keycodes pass through unchanged.
func UnwrapTapKeycode(kind BindingKind, tapField keys.Keycode) keys.Keycode {
	switch kind {
	case KindModTap, KindLayerTap:
		if tapField == TapFieldTruncated {
			return AltRepeatKeycode
		}
		return tapField
	default:
		return tapField
	}
}

// Eligible reports whether keycode may update the last-key memory. Repeat
// and alt-repeat keys are never eligible (spec §4.4 "Last-key memory
// rules"): remembering them would make repeat-of-repeat meaningless.
func Eligible(keycode keys.Keycode) bool {
	return keycode != RepeatKeycode && keycode != AltRepeatKeycode
}
