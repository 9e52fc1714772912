package magic

import (
	"errors"

	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/lastkey"
	"github.com/chtengine/cht/internal/sink"
)

// ErrNoLastKey is returned when the alt-repeat key fires before any
// eligible key has ever been emitted.
var ErrNoLastKey = errors.New("magic: no last key recorded")

// Expander hands a macro identifier off to the text-expansion processor,
// which emits the expansion as a sequence of binding invocations against
// the same sink and reports the event consumed.
type Expander interface {
	Expand(macroID string, ev sink.BindingEvent) error
}

// Resolver implements the alt-repeat key, spec §4.4.
type Resolver struct {
	Table    *Table
	LastKey  *lastkey.Tracker
	Sink     sink.Sink
	Expander Expander
}

// NewResolver builds a Resolver over table, consulting lastKey for the
// most recently emitted key and invoking snk/expander to realize the
// resolved alternate.
func NewResolver(table *Table, lastKey *lastkey.Tracker, snk sink.Sink, expander Expander) *Resolver {
	return &Resolver{Table: table, LastKey: lastKey, Sink: snk, Expander: expander}
}

// Invoke runs the alt-repeat key's resolution steps (spec §4.4 "At
// invocation of the alt-repeat key"). It never touches the Last-Key
// Tracker itself — Eligible gates that separately, at the call site that
// would otherwise record this key's own emission.
func (r *Resolver) Invoke(layer string, ev sink.BindingEvent) error {
	entry, ok := r.LastKey.Last()
	if !ok {
		return ErrNoLastKey
	}

	// Unconditional unwrap, matching the original: a raw remembered
	// keycode that falls in the mod-tap tap-field truncation range is
	// always restored, regardless of how it was produced (spec §9).
	lastKeycode := UnwrapTapKeycode(KindModTap, entry.Keycode)

	alt := r.Table.Lookup(layer, lastKeycode)

	switch alt.Kind {
	case AlternateMacro:
		return r.Expander.Expand(alt.MacroID, ev)

	case AlternateRepeat:
		return r.tap(lastKeycode, ev)

	default:
		return r.tap(alt.Keycode, ev)
	}
}

// tap presses then releases keycode as a single bound action, carrying
// the alt-repeat key's own (position, timestamp, source) per the
// invocation contract.
func (r *Resolver) tap(keycode keys.Keycode, ev sink.BindingEvent) error {
	binding := keys.Binding{Behavior: "kc", Param1: int32(keycode)}
	if err := r.Sink.Invoke(binding, ev, true); err != nil {
		return err
	}
	return r.Sink.Invoke(binding, ev, false)
}
