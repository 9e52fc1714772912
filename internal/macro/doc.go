// Package macro implements text-expansion snippets invoked by the
// alt-repeat ("magic") key when its resolved alternate is a macro
// identifier rather than a plain keycode (spec §4.4 step 3).
//
// Each macro's body is a sandboxed Lua expression, run through
// internal/macro/script.State. Because the engine is single-goroutine
// (spec §5), Processor calls the script State directly rather than
// through script.Executor's queue — there is never a second goroutine
// contending for the Lua state.
package macro
