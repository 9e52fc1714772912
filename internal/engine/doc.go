// Package engine wires every core component into the single owning
// context spec §9 calls for: one Keymap-driven layer stack, one
// dispatch.Context (hold-tap registry, capture buffer, last-key tracker,
// timer service), one magic.Resolver, and one macro.Processor, all
// serialized onto a single worker goroutine per spec §5's "single-threaded
// cooperative event loop."
//
// The worker pattern is adapted from internal/macro/script.Executor:
// every public entry point enqueues a closure and blocks for its result,
// so callers on any goroutine observe the engine as synchronous while the
// core itself never runs two entry points concurrently.
package engine
