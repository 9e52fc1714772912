// Package dispatch provides panic-recovering handler execution, used by
// internal/dispatch to invoke hold-tap and keymap action-sink bindings
// without a misbehaving binding crashing the engine's worker goroutine.
//
// # Dispatchers
//
// One dispatcher implementation is provided:
//
//   - SyncDispatcher: Executes handlers synchronously in the caller's goroutine.
//     Used for binding invocation, where ordering and latency both matter.
//
// There is no asynchronous dispatcher in this package.
//
// # Panic Recovery
//
// The dispatcher recovers from panics in handlers, preventing a misbehaving
// handler from crashing the engine. Panics are reported via a
// configurable PanicHandler callback.
//
// # Context Support
//
// Dispatchers respect context cancellation and deadlines. If a context is
// cancelled before or during handler execution, the dispatch returns
// context.Canceled or context.DeadlineExceeded.
//
// # Usage
//
// Synchronous dispatch:
//
//	dispatcher := dispatch.NewSyncDispatcher()
//	result := dispatcher.Dispatch(ctx, event, handler)
//	if !result.IsSuccess() {
//	    // Handle error or panic
//	}
//
// With panic handler:
//
//	dispatcher := dispatch.NewSyncDispatcher(
//	    dispatch.WithPanicHandler(func(event any, err any, stack []byte) {
//	        log.Printf("panic in handler: %v\n%s", err, stack)
//	    }),
//	)
//
// # Result Handling
//
// The Result type captures the outcome of handler execution including
// success/failure status, error details, execution duration, and panic
// information if applicable.
package dispatch
