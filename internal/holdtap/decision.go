package holdtap

import "github.com/chtengine/cht/internal/keys"

// SelectFlavor implements spec §4.1 "Flavor selection at keydown". If cfg
// has no PriorKeycodes configured, NormalFlavor always applies. Otherwise
// AfterFlavor applies when a non-modifier keycode was emitted within
// cfg.PriorTimeoutMS and is one of cfg.PriorKeycodes.
func SelectFlavor(cfg Config, priorKeycode keys.Keycode, priorValid bool, priorAgeMS int64) Flavor {
	if len(cfg.PriorKeycodes) == 0 {
		return cfg.NormalFlavor
	}
	if priorValid && priorAgeMS <= cfg.PriorTimeoutMS && cfg.inPriorKeycodes(priorKeycode) {
		return cfg.AfterFlavor
	}
	return cfg.NormalFlavor
}

// IsQuickTap implements spec §4.1 "Quick-tap detection": a hold-tap is a
// quick tap iff either (a) the last tap (any position) was within
// cfg.RequirePriorIdleMS of now, or (b) the last tap was at the same
// position and within cfg.QuickTapMS of now.
func IsQuickTap(cfg Config, last LastTapped, position keys.Position, now keys.Timestamp) bool {
	if !last.Valid {
		return false
	}
	age := int64(now - last.Timestamp)
	if cfg.RequirePriorIdleMS > 0 && age <= cfg.RequirePriorIdleMS {
		return true
	}
	if last.Position == position && cfg.QuickTapMS > 0 && age <= cfg.QuickTapMS {
		return true
	}
	return false
}

// ApplyPositionalOverride implements spec §4.1 "Positional override":
// immediately after a transition out of UNDECIDED, if the config has a
// non-empty hold-trigger set and the first other key pressed is known and
// not in that set, the decision is forced to StatusTap.
func ApplyPositionalOverride(cfg Config, aht *ActiveHoldTap) {
	if len(cfg.HoldTriggerKeyPositions) == 0 {
		return
	}
	if aht.PositionOfFirstOtherKeyPressed == NoOtherKeyPosition {
		return
	}
	if !cfg.inTriggerSet(aht.PositionOfFirstOtherKeyPressed) {
		aht.Status = StatusTap
	}
}
