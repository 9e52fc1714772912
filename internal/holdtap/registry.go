package holdtap

import (
	"errors"

	"github.com/chtengine/cht/internal/keys"
)

// ErrCapacityExceeded is returned when the registry cannot hold another
// simultaneous hold-tap.
var ErrCapacityExceeded = errors.New("holdtap: max simultaneous hold-taps exceeded")

// ErrAlreadyUndecided is the InvariantViolation raised when a second
// undecided hold-tap is requested while one already exists.
var ErrAlreadyUndecided = errors.New("holdtap: an undecided hold-tap already exists")

// ErrNotFound is raised when an active hold-tap record is missing at
// release time.
var ErrNotFound = errors.New("holdtap: no active hold-tap at position")

// NoOtherKeyPosition is the "no other key pressed yet" sentinel for
// ActiveHoldTap.PositionOfFirstOtherKeyPressed.
const NoOtherKeyPosition keys.Position = -1

// ActiveHoldTap is the per-held-key state record of spec §3. The Registry
// stores a pointer to each record in its slot array; callers hold
// *ActiveHoldTap pointers or look a record up by position (Registry.Find).
// There is no slot-index API.
type ActiveHoldTap struct {
	Position  keys.Position
	Source    keys.Source
	Timestamp keys.Timestamp

	Status          Status
	SelectedFlavor  Flavor
	Config          Config

	PositionOfFirstOtherKeyPressed keys.Position
	WorkIsCancelled                bool

	// TimerID identifies the scheduled tapping-term callback owned by this
	// slot, for cancellation. Zero means no timer is outstanding.
	TimerID uint64

	// HoldPressed and TapPressed track which binding list is currently
	// pressed, independent of Status: hold_while_undecided_linger can
	// leave the hold pressed under a Tap decision until the key's own
	// release.
	HoldPressed bool
	TapPressed  bool
}

// LastTapped records the most recent hold-tap tap decision for quick-tap
// detection (spec §3's "Last-Tapped"). Valid is false until the first tap
// is recorded. Only hold-tap tap decisions update it; ordinary keycode
// presses leave it unchanged.
type LastTapped struct {
	Position  keys.Position
	Timestamp keys.Timestamp
	Valid     bool
}

// Registry tracks every ActiveHoldTap currently held plus the single
// undecided one, if any (global invariant 1 of spec §3).
type Registry struct {
	maxHeld int
	slots   []*ActiveHoldTap

	undecided int // index into slots, or -1

	lastTapped LastTapped
}

// NewRegistry creates a Registry that can hold up to maxHeld simultaneous
// hold-taps (CHT_MAX_HELD).
func NewRegistry(maxHeld int) *Registry {
	return &Registry{
		maxHeld:   maxHeld,
		slots:     make([]*ActiveHoldTap, maxHeld),
		undecided: -1,
	}
}

// Undecided returns the single undecided ActiveHoldTap, or nil if there is
// none.
func (r *Registry) Undecided() *ActiveHoldTap {
	if r.undecided < 0 {
		return nil
	}
	return r.slots[r.undecided]
}

// LastTapped returns the most recent hold-tap decision, for quick-tap
// detection.
func (r *Registry) LastTapped() LastTapped {
	return r.lastTapped
}

// Find returns the ActiveHoldTap at position, or nil.
func (r *Registry) Find(position keys.Position) *ActiveHoldTap {
	for _, s := range r.slots {
		if s != nil && s.Position == position {
			return s
		}
	}
	return nil
}

// Store begins tracking a new hold-tap at keydown. It returns
// ErrAlreadyUndecided if one is already pending (invariant 1), or
// ErrCapacityExceeded if every slot is occupied.
func (r *Registry) Store(cfg Config, ev keys.PositionEvent) (*ActiveHoldTap, error) {
	if r.undecided >= 0 {
		return nil, ErrAlreadyUndecided
	}
	for i, s := range r.slots {
		if s == nil {
			aht := &ActiveHoldTap{
				Position:                       ev.Position,
				Source:                         ev.Source,
				Timestamp:                      ev.Timestamp,
				Status:                         StatusUndecided,
				Config:                         cfg,
				PositionOfFirstOtherKeyPressed: NoOtherKeyPosition,
			}
			r.slots[i] = aht
			r.undecided = i
			return aht, nil
		}
	}
	return nil, ErrCapacityExceeded
}

// Decide transitions the undecided hold-tap to status and clears the
// undecided marker (but keeps the slot occupied until Release). If status
// is StatusTap it updates LastTapped for future quick-tap detection.
func (r *Registry) Decide(aht *ActiveHoldTap, status Status, now keys.Timestamp) {
	aht.Status = status
	r.undecided = -1
	if status == StatusTap {
		r.lastTapped = LastTapped{Position: aht.Position, Timestamp: now, Valid: true}
	}
}

// MarkLastTapped records a hold-tap decision made outside the normal
// Decide path (retro-tap re-interprets a HOLD_TIMER key as a tap after it
// has already left the undecided slot).
func (r *Registry) MarkLastTapped(position keys.Position, now keys.Timestamp) {
	r.lastTapped = LastTapped{Position: position, Timestamp: now, Valid: true}
}

// Release frees the slot occupied by the hold-tap at position. Returns
// ErrNotFound if no record exists there (InvariantViolation: an active
// hold-tap record is missing at release time).
func (r *Registry) Release(position keys.Position) error {
	for i, s := range r.slots {
		if s != nil && s.Position == position {
			r.slots[i] = nil
			if r.undecided == i {
				r.undecided = -1
			}
			return nil
		}
	}
	return ErrNotFound
}

// ForEachOther calls fn for every occupied slot other than except.
func (r *Registry) ForEachOther(except keys.Position, fn func(*ActiveHoldTap)) {
	for _, s := range r.slots {
		if s != nil && s.Position != except {
			fn(s)
		}
	}
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}
