package keys

import "math"

// Position identifies a physical key location, globally unique across split
// halves. PositionNone marks an unused slot.
type Position int32

// PositionNone is the reserved sentinel for "unused slot" (CHT_POSITION_NOT_USED).
const PositionNone Position = 9999

// Timestamp is monotonic milliseconds since boot. Signed so that sentinel
// values (e.g. "no last tap yet") can be represented out of band.
type Timestamp int64

// NoTimestamp is the sentinel meaning "the last key was not a hold-tap".
const NoTimestamp Timestamp = math.MinInt64

// Source distinguishes which split half (or board) an event originated
// from. Zero is the primary/left half in a non-split build.
type Source uint8

// Binding references an external behavior plus up to two integer
// parameters (keycode, layer index, macro id, ...). It is opaque to the
// engine except that invoking it presses or releases.
type Binding struct {
	Behavior string
	Param1   int32
	Param2   int32
}

// IsTransparent reports whether this binding falls through to the layer
// below it in a Keymap lookup.
func (b Binding) IsTransparent() bool {
	return b.Behavior == ""
}

// PositionEvent is a position-state-changed event: a physical key going
// down or up.
type PositionEvent struct {
	Position  Position
	Pressed   bool
	Timestamp Timestamp
	Source    Source
}

// UsagePage is the HID usage page a Keycode is interpreted under.
type UsagePage uint16

// UsagePageKeyboard is the standard HID keyboard/keypad usage page.
const UsagePageKeyboard UsagePage = 0x07

// Keycode is an HID usage id within a UsagePage.
type Keycode uint32

// Modifier-range keycodes on the keyboard usage page (left/right ctrl,
// shift, alt, gui), per the USB HID usage tables.
const (
	KeycodeLeftControl  Keycode = 0xE0
	KeycodeLeftShift    Keycode = 0xE1
	KeycodeLeftAlt      Keycode = 0xE2
	KeycodeLeftGUI      Keycode = 0xE3
	KeycodeRightControl Keycode = 0xE4
	KeycodeRightShift   Keycode = 0xE5
	KeycodeRightAlt     Keycode = 0xE6
	KeycodeRightGUI     Keycode = 0xE7
)

// Modifiers is a bitmask of the eight standard HID modifier flags, matching
// the layout of a USB HID modifier byte.
type Modifiers uint8

const (
	ModLeftControl Modifiers = 1 << iota
	ModLeftShift
	ModLeftAlt
	ModLeftGUI
	ModRightControl
	ModRightShift
	ModRightAlt
	ModRightGUI
)

// KeycodeEvent is a keycode-state-changed event: a HID usage going down or
// up, with the modifier state in effect at the time.
type KeycodeEvent struct {
	UsagePage     UsagePage
	Keycode       Keycode
	Pressed       bool
	Timestamp     Timestamp
	ImplicitMods  Modifiers
	ExplicitMods  Modifiers
}

// IsModifier reports whether ev targets one of the eight modifier usages on
// the keyboard usage page; a zero UsagePage is taken to be the keyboard
// page. Non-modifier keycode events are never captured by the hold-tap
// dispatcher: they are already represented by the corresponding captured
// position event.
func (ev KeycodeEvent) IsModifier() bool {
	if ev.UsagePage != UsagePageKeyboard && ev.UsagePage != 0 {
		return false
	}
	return ev.Keycode >= KeycodeLeftControl && ev.Keycode <= KeycodeRightGUI
}
