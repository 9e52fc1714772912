// Package script wraps gopher-lua to evaluate macro text-expansion
// snippets: small pieces of Lua that take no input and return a string.
//
// Unlike a general-purpose plugin host this package grants no
// capabilities at all — no filesystem, shell, or network access is ever
// reachable from macro source, with or without a require call. Calls run
// behind a panic-safe boundary (a bad snippet must not take down the
// engine). The Sandbox keeps an instruction counter, but nothing in this
// package advances it while a snippet runs, so a snippet that never
// returns is not stopped.
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := script.NewState(
//	    script.WithInstructionLimit(1_000_000),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoString(`function expand() return "hello" end`); err != nil {
//	    log.Fatal(err)
//	}
//	results, err := state.Call("expand")
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Removing dangerous functions (dofile, loadfile, load)
//   - Allowing require only for pure built-ins (string, table, math, bit32, utf8)
//   - Keeping an instruction counter (IncrementInstructions) with a limit;
//     the counter moves only when IncrementInstructions is called
//
// # Bridge
//
// The Bridge converts between Go and Lua values for passing macro
// arguments in and reading the expanded string back out:
//
//	bridge := script.NewBridge(state.LuaState())
//	luaVal := bridge.ToLuaValue(map[string]interface{}{"count": 42})
//	goVal := bridge.ToGoValue(luaVal)
package script
