package dispatch

import (
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/magic"
)

// HandleKeycodeEvent implements spec §4.2 "Keycode event".
func HandleKeycodeEvent(ctx *Context, ev keys.KeycodeEvent) Disposition {
	if ev.Pressed && !ev.IsModifier() && magic.Eligible(ev.Keycode) {
		ctx.LastKey.Update(ev)
	}

	undecided := ctx.Registry.Undecided()
	if undecided == nil {
		return Bubble
	}

	if !ev.IsModifier() {
		// Non-modifier keycode events are already represented by a
		// captured position event.
		return Bubble
	}

	if undecided.Config.HoldWhileUndecided && !undecided.Status.Decided() {
		// The pre-pressed hold's own modifier emission must flow to HID
		// immediately.
		return Bubble
	}

	if err := ctx.Capture.PushKeycode(ev); err != nil {
		ctx.Log.Errorw("capture buffer full, bubbling keycode event unmodified", "keycode", ev.Keycode, "error", err)
		return Bubble
	}
	return Captured
}
