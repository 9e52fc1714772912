package engine

import (
	"context"

	"github.com/chtengine/cht/internal/dispatch"
	"github.com/chtengine/cht/internal/keymap"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/magic"
	"github.com/chtengine/cht/internal/sink"
)

// Config bundles the pieces a single logical keyboard instance needs: the
// keymap driving layer and hold-tap resolution, the magic-key alternate
// table, and the action sink behind both.
type Config struct {
	Keymap      *keymap.Keymap
	MagicTable  *magic.Table
	Expander    magic.Expander
	Sink        sink.Sink
	MaxHeld     int
	MaxCaptured int

	// Log receives structured diagnostics from the dispatch layer (hold-tap
	// decisions, replayed captures, binding failures). Defaults to a no-op
	// logger matched by *zap.SugaredLogger.
	Log dispatch.Logger
}

// Engine is the single owning context of spec §9: one layer stack, one
// dispatch.Context, one magic.Resolver, all serialized on one worker
// goroutine (spec §5).
type Engine struct {
	keymap *keymap.Keymap
	layers *keymap.LayerStack
	ctx    *dispatch.Context
	magic  *magic.Resolver

	w *worker
}

// New builds an Engine from cfg. Call Run in its own goroutine before
// sending any events.
func New(cfg Config) *Engine {
	if cfg.MaxHeld <= 0 {
		cfg.MaxHeld = 10
	}
	if cfg.MaxCaptured <= 0 {
		cfg.MaxCaptured = 40
	}

	e := &Engine{
		keymap: cfg.Keymap,
		layers: keymap.NewLayerStack(cfg.Keymap),
		w:      newWorker(256),
	}

	snk := newLayerSink(cfg.Sink, e.layers)
	e.ctx = dispatch.NewContext(cfg.MaxHeld, cfg.MaxCaptured, snk, e.w.submitAsync, cfg.Keymap.HoldTap)
	if cfg.Log != nil {
		e.ctx.Log = cfg.Log
	}
	e.magic = magic.NewResolver(cfg.MagicTable, e.ctx.LastKey, snk, cfg.Expander)

	return e
}

// Run processes engine work until ctx is cancelled or Close is called. It
// must be started in its own goroutine before any other Engine method is
// called.
func (e *Engine) Run(ctx context.Context) {
	e.w.run(ctx)
}

// Close stops accepting new work. In-flight HandlePosition/HandleKeycode
// calls already queued still run; calls made after Close return
// ErrWorkerClosed.
func (e *Engine) Close() {
	e.w.close()
}

// HandlePosition feeds a position-state-changed event into the engine
// (spec §6 "Event ingress"). Hold-tap-configured positions drive
// BeginHoldTap/EndHoldTap directly; everything else goes through the
// dispatcher's capture/bubble pipeline and, if it bubbles, ordinary
// keymap resolution.
func (e *Engine) HandlePosition(ev keys.PositionEvent) error {
	var outErr error
	err := e.w.submitSync(func() {
		outErr = e.handlePosition(ev)
	})
	if err != nil {
		return err
	}
	return outErr
}

func (e *Engine) handlePosition(ev keys.PositionEvent) error {
	if cfg, ok := e.keymap.HoldTap(ev.Position); ok {
		if ev.Pressed {
			return dispatch.BeginHoldTap(e.ctx, cfg, ev)
		}
		return dispatch.EndHoldTap(e.ctx, ev)
	}

	disp, err := dispatch.HandlePositionEvent(e.ctx, ev)
	if err != nil {
		return err
	}
	if disp == dispatch.Captured {
		return nil
	}
	return e.resolveOrdinary(ev)
}

// resolveOrdinary looks up the keymap binding for a position with no
// hold-tap configuration (and no undecided hold-tap capturing it) and
// invokes it directly, special-casing the magic key.
func (e *Engine) resolveOrdinary(ev keys.PositionEvent) error {
	binding := e.layers.Resolve(ev.Position)
	if binding.IsTransparent() {
		return nil
	}
	bindingEv := sink.BindingEvent{Position: ev.Position, Timestamp: ev.Timestamp, Source: ev.Source}

	if binding.Behavior == "magic" {
		if !ev.Pressed {
			return nil
		}
		return e.magic.Invoke(e.keymap.Layers[0].Name, bindingEv)
	}

	return e.ctx.Sink.Invoke(binding, bindingEv, ev.Pressed)
}

// HandleKeycode feeds a keycode-state-changed event into the engine (spec
// §6 "Event ingress").
func (e *Engine) HandleKeycode(ev keys.KeycodeEvent) (dispatch.Disposition, error) {
	var disp dispatch.Disposition
	err := e.w.submitSync(func() {
		disp = dispatch.HandleKeycodeEvent(e.ctx, ev)
	})
	return disp, err
}

// LayerStack exposes the momentary-layer stack for diagnostics (e.g.
// cmd/chtsim's visualizer).
func (e *Engine) LayerStack() *keymap.LayerStack {
	return e.layers
}
