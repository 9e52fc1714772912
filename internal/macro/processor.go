package macro

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/macro/script"
	"github.com/chtengine/cht/internal/sink"
)

// Processor runs registered macro definitions and types their result as a
// sequence of literal-text binding invocations. It satisfies
// internal/magic's Expander interface.
type Processor struct {
	State    *script.State
	Register *Register
	Sink     sink.Sink
}

// NewProcessor builds a Processor over an already-sandboxed script.State.
func NewProcessor(state *script.State, register *Register, snk sink.Sink) *Processor {
	return &Processor{State: state, Register: register, Sink: snk}
}

// Expand runs the macro identified by macroID and types its result one
// rune at a time through the sink, carrying ev's (position, timestamp,
// source) on every invocation (spec §4.4 step 3).
func (p *Processor) Expand(macroID string, ev sink.BindingEvent) error {
	def, ok := p.Register.Get(macroID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMacro, macroID)
	}

	text, err := p.run(def)
	if err != nil {
		return err
	}

	for _, r := range text {
		binding := keys.Binding{Behavior: "text", Param1: int32(r)}
		if err := p.Sink.Invoke(binding, ev, true); err != nil {
			return err
		}
		if err := p.Sink.Invoke(binding, ev, false); err != nil {
			return err
		}
	}
	return nil
}

// run executes def.Body as a zero-argument function and returns its
// single string result.
func (p *Processor) run(def Definition) (string, error) {
	fnName := "macro_" + def.ID
	code := fnName + " = function()\n" + def.Body + "\nend"
	if err := p.State.DoString(code); err != nil {
		return "", fmt.Errorf("macro %s: %w", def.ID, err)
	}

	results, err := p.State.Call(fnName)
	if err != nil {
		return "", fmt.Errorf("macro %s: %w", def.ID, err)
	}
	if len(results) != 1 || results[0].Type() != lua.LTString {
		return "", fmt.Errorf("macro %s: %w", def.ID, ErrInvalidResult)
	}
	return results[0].String(), nil
}
