// Package dispatch routes incoming position- and keycode-state-change
// events to the hold-tap decision machine in internal/holdtap, and
// re-emits captured events after a decision — the Event Dispatcher of
// spec.md §2/§4.2.
//
// Binding invocation runs through internal/event/dispatch's SyncDispatcher:
// a panicking action-sink binding is recovered and reported as a Result
// instead of crashing the engine's single worker goroutine.
package dispatch
