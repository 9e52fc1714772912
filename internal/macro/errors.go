package macro

import "errors"

// ErrUnknownMacro is returned when Expand is asked for an ID the Register
// has no Definition for.
var ErrUnknownMacro = errors.New("macro: unknown macro id")

// ErrInvalidResult is returned when a macro's Lua body did not return
// exactly one string.
var ErrInvalidResult = errors.New("macro: body did not return a single string")
