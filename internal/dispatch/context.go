package dispatch

import (
	"time"

	"github.com/chtengine/cht/internal/capture"
	edispatch "github.com/chtengine/cht/internal/event/dispatch"
	"github.com/chtengine/cht/internal/holdtap"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/lastkey"
	"github.com/chtengine/cht/internal/sink"
	"github.com/chtengine/cht/internal/timer"
)

// Logger is the narrow structured-logging surface dispatch needs, matched
// by *zap.SugaredLogger.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type noopLogger struct{}

func (noopLogger) Debugw(string, ...any) {}
func (noopLogger) Errorw(string, ...any) {}

// Context bundles every piece of state a single logical keyboard instance
// needs to process events, per spec §9's "group all module state into one
// owning context."
type Context struct {
	Registry *holdtap.Registry
	Capture  *capture.Buffer
	LastKey  *lastkey.Tracker
	Sink     sink.Sink
	Timers   *timer.Service
	Log      Logger

	// Dispatcher runs every binding invocation with panic recovery, so a
	// misbehaving Sink implementation cannot take down the engine's single
	// worker goroutine.
	Dispatcher *edispatch.SyncDispatcher

	// HoldTapFor looks up the hold-tap configuration attached to a
	// position by the keymap, if any. A captured press at a position with
	// a configuration must start its own hold-tap (BeginHoldTap) rather
	// than be treated as a generic interrupting key.
	HoldTapFor func(position keys.Position) (holdtap.Config, bool)
}

// NewContext wires the hold-tap primitives into a Context ready to receive
// events. submit hands timer firings back to the engine's single worker.
func NewContext(maxHeld, maxCaptured int, snk sink.Sink, submit timer.Submit, holdTapFor func(keys.Position) (holdtap.Config, bool)) *Context {
	return &Context{
		Registry:   holdtap.NewRegistry(maxHeld),
		Capture:    capture.NewBuffer(maxCaptured),
		LastKey:    &lastkey.Tracker{},
		Sink:       snk,
		Timers:     timer.NewService(submit),
		Log:        noopLogger{},
		Dispatcher: edispatch.NewSyncDispatcher(),
		HoldTapFor: holdTapFor,
	}
}

func bindingEventFor(aht *holdtap.ActiveHoldTap) sink.BindingEvent {
	return sink.BindingEvent{Position: aht.Position, Timestamp: aht.Timestamp, Source: aht.Source}
}

// scheduleTimer arms the tapping-term timer for aht, routing the firing
// callback back onto the engine worker via Timers' submit function.
func (c *Context) scheduleTimer(aht *holdtap.ActiveHoldTap) {
	position := aht.Position
	aht.TimerID = c.Timers.Schedule(time.Duration(aht.Config.TappingTermMS)*time.Millisecond, func() {
		found := c.Registry.Find(position)
		if found == nil || found != aht {
			return
		}
		if found.Status.Decided() {
			return
		}
		if err := decideAndResolve(c, found, holdtap.MomentTimer, found.Timestamp+keys.Timestamp(found.Config.TappingTermMS)); err != nil {
			c.Log.Errorw("hold-tap timer decision failed", "position", position, "error", err)
		}
	})
}
