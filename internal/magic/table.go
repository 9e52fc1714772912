package magic

import "github.com/chtengine/cht/internal/keys"

// AlternateKind discriminates the three shapes an alternate action can
// take, per spec §4.4 step 2-5.
type AlternateKind int

const (
	// AlternateKeycode taps a plain HID keycode.
	AlternateKeycode AlternateKind = iota
	// AlternateMacro hands off to the macro/text-expansion processor.
	AlternateMacro
	// AlternateRepeat is the "repeat previous" sentinel: a table miss, or
	// an explicit mapping to RepeatKeycode.
	AlternateRepeat
)

// Alternate is one entry of a last-key-to-alternate mapping.
type Alternate struct {
	Kind    AlternateKind
	Keycode keys.Keycode
	MacroID string
}

// tableKey identifies a mapping entry: the base layer it applies under,
// plus the (unwrapped) last keycode.
type tableKey struct {
	Layer   string
	Keycode keys.Keycode
}

// Table is the per-base-layer last_key -> alternate mapping supplied by
// the keymap (spec §4.4 step 2). A miss means "repeat previous".
type Table struct {
	entries map[tableKey]Alternate
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[tableKey]Alternate)}
}

// Set maps keycode to alt under the given base layer name.
func (t *Table) Set(layer string, keycode keys.Keycode, alt Alternate) {
	t.entries[tableKey{Layer: layer, Keycode: keycode}] = alt
}

// SetKeycode is a convenience for the common "tap a different keycode"
// mapping.
func (t *Table) SetKeycode(layer string, keycode, alt keys.Keycode) {
	t.Set(layer, keycode, Alternate{Kind: AlternateKeycode, Keycode: alt})
}

// SetMacro maps keycode to a text-expansion macro identifier under layer.
func (t *Table) SetMacro(layer string, keycode keys.Keycode, macroID string) {
	t.Set(layer, keycode, Alternate{Kind: AlternateMacro, MacroID: macroID})
}

// Lookup resolves the alternate for keycode under layer. A miss, or a
// keycode mapping to RepeatKeycode, returns the AlternateRepeat sentinel,
// never an error: "repeat previous" is always a valid outcome (spec §4.4
// step 2).
func (t *Table) Lookup(layer string, keycode keys.Keycode) Alternate {
	if alt, ok := t.entries[tableKey{Layer: layer, Keycode: keycode}]; ok {
		if alt.Kind == AlternateKeycode && alt.Keycode == RepeatKeycode {
			return Alternate{Kind: AlternateRepeat}
		}
		return alt
	}
	return Alternate{Kind: AlternateRepeat}
}
