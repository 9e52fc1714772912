package dispatch

import "github.com/chtengine/cht/internal/capture"

// drainCaptured implements spec §4.2 "Release of captured events": drains
// the capture buffer FIFO, re-raising each event through the normal
// dispatch pipeline. A captured press at a position carrying its own
// hold-tap Config starts a fresh hold-tap (it was a hold-tap key pressed
// while another was undecided) rather than being treated as a generic
// interrupting key; a captured release of a position that is still an
// active (now decided) hold-tap is routed to EndHoldTap so its own
// press/release resolution runs, rather than being bubbled as a plain
// position event. Everything else goes through HandlePositionEvent /
// HandleKeycodeEvent unchanged.
//
// If any of this leaves a new undecided hold-tap in the registry, draining
// stops — the remaining queued events wait for that hold-tap's own
// decision, whose decideAndResolve calls drainCaptured again to resume.
func drainCaptured(ctx *Context) {
	ctx.Capture.Drain(func(ev capture.Event) bool {
		switch ev.Tag {
		case capture.TagPositionChanged:
			drainPosition(ctx, ev)
		case capture.TagKeycodeChanged:
			HandleKeycodeEvent(ctx, ev.Keycode)
		}
		return ctx.Registry.Undecided() == nil
	})
}

func drainPosition(ctx *Context, ev capture.Event) {
	if ev.Position.Pressed {
		if cfg, ok := ctx.HoldTapFor(ev.Position.Position); ok {
			if err := BeginHoldTap(ctx, cfg, ev.Position); err != nil {
				ctx.Log.Errorw("replayed hold-tap keydown failed", "position", ev.Position.Position, "error", err)
			}
			return
		}
		HandlePositionEvent(ctx, ev.Position)
		return
	}

	if aht := ctx.Registry.Find(ev.Position.Position); aht != nil {
		if err := EndHoldTap(ctx, ev.Position); err != nil {
			ctx.Log.Errorw("replayed hold-tap keyup failed", "position", ev.Position.Position, "error", err)
		}
		return
	}

	HandlePositionEvent(ctx, ev.Position)
}
