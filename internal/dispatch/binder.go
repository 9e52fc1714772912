package dispatch

import (
	"context"
	"fmt"

	edispatch "github.com/chtengine/cht/internal/event/dispatch"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/sink"
)

// Result is the outcome of invoking one binding list against the sink.
type Result = edispatch.Result

// bindingHandler adapts a binding list + sink into the
// internal/event/dispatch.Handler interface, so invocation runs through the
// same panic-recovery dispatcher the rest of this module's ancestry uses
// for handler execution.
type bindingHandler struct {
	sink     sink.Sink
	bindings []keys.Binding
	ev       sink.BindingEvent
	pressed  bool
}

// Handle implements edispatch.Handler. It invokes every binding in array
// order; the first non-nil error aborts the remaining bindings.
func (h bindingHandler) Handle(_ context.Context, _ any) error {
	for _, b := range h.bindings {
		if err := h.sink.Invoke(b, h.ev, h.pressed); err != nil {
			return fmt.Errorf("%w: %w", ErrBindingFailure, err)
		}
	}
	return nil
}

// invoke implements the invocation contract of spec §4.1: every binding in
// bindings is invoked in array order; the first non-nil error aborts the
// remaining bindings. A panicking Sink is recovered and reported as a
// Result rather than crashing the engine's single worker goroutine.
func invoke(ctx *Context, bindings []keys.Binding, ev sink.BindingEvent, pressed bool) Result {
	result := ctx.Dispatcher.Dispatch(context.Background(), ev, bindingHandler{
		sink:     ctx.Sink,
		bindings: bindings,
		ev:       ev,
		pressed:  pressed,
	})

	if !result.IsSuccess() {
		if result.Panicked {
			ctx.Log.Errorw("binding invocation panicked", "position", ev.Position, "pressed", pressed, "panic", result.PanicValue)
		} else if result.Error != nil {
			ctx.Log.Errorw("binding invocation failed", "position", ev.Position, "pressed", pressed, "error", result.Error)
		}
	}

	return result
}
