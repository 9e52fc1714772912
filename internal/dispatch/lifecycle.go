package dispatch

import (
	"github.com/chtengine/cht/internal/holdtap"
	"github.com/chtengine/cht/internal/keys"
)

// BeginHoldTap starts tracking a new hold-tap at the keydown of a
// hold-tap-configured position (the behavior driver's own "pressed"
// handler, per spec §4.1/§4.3). It is never invoked for positions without
// an attached holdtap.Config.
func BeginHoldTap(ctx *Context, cfg holdtap.Config, ev keys.PositionEvent) error {
	upgradeRetroTapSiblings(ctx, ev.Position)

	var priorKeycode keys.Keycode
	var priorValid bool
	var priorAge int64
	if entry, ok := ctx.LastKey.Last(); ok {
		priorKeycode = entry.Keycode
		priorValid = true
		priorAge = ctx.LastKey.AgeMS(ev.Timestamp)
	}
	flavor := holdtap.SelectFlavor(cfg, priorKeycode, priorValid, priorAge)

	aht, err := ctx.Registry.Store(cfg, ev)
	if err != nil {
		ctx.Log.Errorw("could not begin hold-tap", "position", ev.Position, "error", err)
		return err
	}
	aht.SelectedFlavor = flavor

	if cfg.HoldWhileUndecided {
		invoke(ctx, cfg.HoldBindings, bindingEventFor(aht), true)
		aht.HoldPressed = true
	}

	if holdtap.IsQuickTap(cfg, ctx.Registry.LastTapped(), ev.Position, ev.Timestamp) {
		return decideAndResolve(ctx, aht, holdtap.MomentQuickTap, ev.Timestamp)
	}

	ctx.scheduleTimer(aht)
	return nil
}

// EndHoldTap handles the key-up of a hold-tap-configured position (the
// behavior driver's own "released" handler, spec §4.1/§4.2 step 4 and
// §4.3).
func EndHoldTap(ctx *Context, ev keys.PositionEvent) error {
	aht := ctx.Registry.Find(ev.Position)
	if aht == nil {
		ctx.Log.Errorw("release with no active hold-tap record", "position", ev.Position)
		return holdtap.ErrNotFound
	}

	switch {
	case aht.Status == holdtap.StatusUndecided:
		// KEY_UP always decides TAP under every flavor (spec §4.1 table).
		if err := decideAndResolve(ctx, aht, holdtap.MomentKeyUp, ev.Timestamp); err != nil {
			return err
		}
		releaseWhatWasPressed(ctx, aht)

	case aht.Status == holdtap.StatusHoldTimer &&
		aht.Config.RetroTap &&
		aht.PositionOfFirstOtherKeyPressed == holdtap.NoOtherKeyPosition:
		retroTapOwnRelease(ctx, aht, ev.Timestamp)

	default:
		releaseWhatWasPressed(ctx, aht)
	}

	if aht.TimerID != 0 {
		ctx.Timers.Cancel(aht.TimerID)
		aht.TimerID = 0
	}

	return ctx.Registry.Release(aht.Position)
}

// decideAndResolve applies moment's transition, the positional override,
// records the decision, cancels any outstanding timer, presses the
// resolved binding, and replays captured events.
func decideAndResolve(ctx *Context, aht *holdtap.ActiveHoldTap, moment holdtap.Moment, now keys.Timestamp) error {
	status := holdtap.Decide(aht.SelectedFlavor, moment)
	if status == holdtap.StatusUndecided {
		return nil
	}
	aht.Status = status
	holdtap.ApplyPositionalOverride(aht.Config, aht)
	final := aht.Status

	ctx.Registry.Decide(aht, final, now)

	if aht.TimerID != 0 {
		ctx.Timers.Cancel(aht.TimerID)
		aht.TimerID = 0
	}

	pressResolved(ctx, aht, final)
	drainCaptured(ctx)
	return nil
}

// pressResolved invokes the binding list the decision settled on,
// honoring hold_while_undecided/linger (spec §4.1).
func pressResolved(ctx *Context, aht *holdtap.ActiveHoldTap, final holdtap.Status) {
	ev := bindingEventFor(aht)

	switch {
	case aht.Config.HoldWhileUndecided && final == holdtap.StatusTap && !aht.Config.HoldWhileUndecidedLinger:
		if aht.HoldPressed {
			invoke(ctx, aht.Config.HoldBindings, ev, false)
			aht.HoldPressed = false
		}
		invoke(ctx, aht.Config.TapBindings, ev, true)
		aht.TapPressed = true

	case aht.Config.HoldWhileUndecided:
		// Hold was already pressed at keydown; with linger it stays
		// pressed regardless of the final status until the key's own
		// release.

	case final == holdtap.StatusTap:
		invoke(ctx, aht.Config.TapBindings, ev, true)
		aht.TapPressed = true

	default:
		invoke(ctx, aht.Config.HoldBindings, ev, true)
		aht.HoldPressed = true
	}
}

// releaseWhatWasPressed releases whichever binding list is currently
// pressed for aht, independent of its decided Status (hold_while_undecided
// with linger can leave the hold pressed under a Tap decision).
func releaseWhatWasPressed(ctx *Context, aht *holdtap.ActiveHoldTap) {
	ev := bindingEventFor(aht)
	if aht.HoldPressed {
		invoke(ctx, aht.Config.HoldBindings, ev, false)
		aht.HoldPressed = false
	}
	if aht.TapPressed {
		invoke(ctx, aht.Config.TapBindings, ev, false)
		aht.TapPressed = false
	}
}

// retroTapOwnRelease implements spec §4.1 retro-tap: release the
// (possibly-unpressed) hold, and press+release the tap binding as a unit
// since the physical key-up has already happened.
func retroTapOwnRelease(ctx *Context, aht *holdtap.ActiveHoldTap, now keys.Timestamp) {
	ev := bindingEventFor(aht)
	if aht.HoldPressed {
		invoke(ctx, aht.Config.HoldBindings, ev, false)
		aht.HoldPressed = false
	}
	invoke(ctx, aht.Config.TapBindings, ev, true)
	invoke(ctx, aht.Config.TapBindings, ev, false)
	aht.Status = holdtap.StatusTap
	ctx.Registry.MarkLastTapped(aht.Position, now)
}

// upgradeRetroTapSiblings implements spec §4.2 step 1: any other active
// hold-tap that is still HOLD_TIMER and configured for retro-tap is no
// longer a retro-tap candidate once a different key's position event
// arrives — it upgrades to HOLD_INTERRUPT.
func upgradeRetroTapSiblings(ctx *Context, except keys.Position) {
	ctx.Registry.ForEachOther(except, func(aht *holdtap.ActiveHoldTap) {
		if aht.Config.RetroTap && aht.Status == holdtap.StatusHoldTimer {
			aht.Status = holdtap.StatusHoldInterrupt
			if !aht.HoldPressed {
				invoke(ctx, aht.Config.HoldBindings, bindingEventFor(aht), true)
				aht.HoldPressed = true
			}
		}
	})
}
