package lastkey

import "github.com/chtengine/cht/internal/keys"

// Entry is the remembered last non-modifier keycode, per spec §4.5.
type Entry struct {
	Keycode      keys.Keycode
	Timestamp    keys.Timestamp
	ImplicitMods keys.Modifiers
	ExplicitMods keys.Modifiers
	Valid        bool
}

// Tracker stores the single most recent non-modifier keycode press.
// Updates are monotonic-guarded: an incoming timestamp older than the
// stored one is ignored, which tolerates skewed clocks across split
// halves.
type Tracker struct {
	entry Entry
}

// Update records ev if it is a non-modifier key press with a timestamp not
// older than the currently stored one. Releases, modifier keys, and
// stale/out-of-order timestamps are ignored.
func (t *Tracker) Update(ev keys.KeycodeEvent) {
	if !ev.Pressed {
		return
	}
	if ev.IsModifier() {
		return
	}
	if t.entry.Valid && ev.Timestamp < t.entry.Timestamp {
		return
	}
	t.entry = Entry{
		Keycode:      ev.Keycode,
		Timestamp:    ev.Timestamp,
		ImplicitMods: ev.ImplicitMods,
		ExplicitMods: ev.ExplicitMods,
		Valid:        true,
	}
}

// Last returns the most recently recorded entry, if any.
func (t *Tracker) Last() (Entry, bool) {
	return t.entry, t.entry.Valid
}

// AgeMS returns how many milliseconds have elapsed between the stored
// entry's timestamp and now. Only meaningful when Last reports a valid
// entry.
func (t *Tracker) AgeMS(now keys.Timestamp) int64 {
	return int64(now - t.entry.Timestamp)
}
