package dispatch

import (
	"github.com/chtengine/cht/internal/holdtap"
	"github.com/chtengine/cht/internal/keys"
)

// HandlePositionEvent implements spec §4.2 "Position event" for any
// position other than an active hold-tap's own keydown/keyup (those are
// routed through BeginHoldTap/EndHoldTap instead).
func HandlePositionEvent(ctx *Context, ev keys.PositionEvent) (Disposition, error) {
	upgradeRetroTapSiblings(ctx, ev.Position)

	undecided := ctx.Registry.Undecided()
	if undecided == nil {
		return Bubble, nil
	}
	cfg := undecided.Config

	if undecided.PositionOfFirstOtherKeyPressed == holdtap.NoOtherKeyPosition &&
		(ev.Pressed != cfg.HoldTriggerOnRelease) {
		undecided.PositionOfFirstOtherKeyPressed = ev.Position
	}

	if ev.Position == undecided.Position {
		return Bubble, nil
	}

	if ev.Timestamp > undecided.Timestamp+keys.Timestamp(cfg.TappingTermMS) {
		if err := decideAndResolve(ctx, undecided, holdtap.MomentTimer, ev.Timestamp); err != nil {
			return Bubble, err
		}
	}

	undecided = ctx.Registry.Undecided()
	if undecided == nil {
		return Bubble, nil
	}

	if !ev.Pressed && !ctx.Capture.HasPendingPress(ev.Position) {
		return Bubble, nil
	}

	if err := ctx.Capture.PushPosition(ev); err != nil {
		ctx.Log.Errorw("capture buffer full, bubbling event unmodified", "position", ev.Position, "error", err)
		return Bubble, err
	}

	moment := holdtap.MomentOtherKeyDown
	if !ev.Pressed {
		moment = holdtap.MomentOtherKeyUp
	}
	if err := decideAndResolve(ctx, undecided, moment, ev.Timestamp); err != nil {
		return Captured, err
	}

	return Captured, nil
}
