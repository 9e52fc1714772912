package holdtap

import "github.com/chtengine/cht/internal/keys"

// Flavor is the arbitration policy used at decision moments.
type Flavor int

const (
	FlavorBalanced Flavor = iota
	FlavorTapPreferred
	FlavorHoldPreferred
)

func (f Flavor) String() string {
	switch f {
	case FlavorBalanced:
		return "balanced"
	case FlavorTapPreferred:
		return "tap-preferred"
	case FlavorHoldPreferred:
		return "hold-preferred"
	default:
		return "unknown"
	}
}

// Config is the immutable, per-position hold-tap configuration supplied by
// the keymap. Build one with NewConfig and the With* options.
type Config struct {
	Position keys.Position

	TappingTermMS     int64
	QuickTapMS        int64
	RequirePriorIdleMS int64

	NormalFlavor Flavor
	AfterFlavor  Flavor

	HoldWhileUndecided        bool
	HoldWhileUndecidedLinger  bool
	RetroTap                  bool
	HoldTriggerOnRelease      bool
	HoldTriggerKeyPositions   []keys.Position

	TapBindings  []keys.Binding
	HoldBindings []keys.Binding

	PriorKeycodes   []keys.Keycode
	PriorTimeoutMS  int64
}

// Option configures a Config.
type Option func(*Config)

// NewConfig builds a Config for position with sane BALANCED defaults,
// applying opts in order.
func NewConfig(position keys.Position, tapBindings, holdBindings []keys.Binding, opts ...Option) Config {
	cfg := Config{
		Position:      position,
		TappingTermMS: 200,
		NormalFlavor:  FlavorBalanced,
		AfterFlavor:   FlavorBalanced,
		TapBindings:   tapBindings,
		HoldBindings:  holdBindings,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTappingTerm sets the tapping-term-ms threshold.
func WithTappingTerm(ms int64) Option {
	return func(c *Config) { c.TappingTermMS = ms }
}

// WithQuickTap sets quick_tap_ms.
func WithQuickTap(ms int64) Option {
	return func(c *Config) { c.QuickTapMS = ms }
}

// WithRequirePriorIdle sets require_prior_idle_ms.
func WithRequirePriorIdle(ms int64) Option {
	return func(c *Config) { c.RequirePriorIdleMS = ms }
}

// WithFlavors sets the normal and after-prior-keycode flavors.
func WithFlavors(normal, after Flavor) Option {
	return func(c *Config) {
		c.NormalFlavor = normal
		c.AfterFlavor = after
	}
}

// WithHoldWhileUndecided enables pressing the hold binding immediately at
// keydown, before a decision is made. linger controls whether the hold
// binding stays pressed even if the decision later turns out TAP.
func WithHoldWhileUndecided(linger bool) Option {
	return func(c *Config) {
		c.HoldWhileUndecided = true
		c.HoldWhileUndecidedLinger = linger
	}
}

// WithRetroTap enables retroactive re-interpretation as tap when a
// HOLD_TIMER key releases without ever interrupting another key.
func WithRetroTap() Option {
	return func(c *Config) { c.RetroTap = true }
}

// WithHoldTriggerKeyPositions restricts HOLD_INTERRUPT to interruptions by
// one of positions (the "chordal hold" / opposite-hand rule). onRelease
// selects whether the triggering key is identified by its press or its
// release.
func WithHoldTriggerKeyPositions(onRelease bool, positions ...keys.Position) Option {
	return func(c *Config) {
		c.HoldTriggerOnRelease = onRelease
		c.HoldTriggerKeyPositions = positions
	}
}

// WithPriorKeycodes selects AfterFlavor instead of NormalFlavor when the
// last non-modifier keycode emitted is in codes and was emitted within
// timeoutMS.
func WithPriorKeycodes(timeoutMS int64, codes ...keys.Keycode) Option {
	return func(c *Config) {
		c.PriorTimeoutMS = timeoutMS
		c.PriorKeycodes = codes
	}
}

// inTriggerSet reports whether pos is one of the configured hold-trigger
// key positions.
func (c Config) inTriggerSet(pos keys.Position) bool {
	for _, p := range c.HoldTriggerKeyPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// inPriorKeycodes reports whether kc is one of the configured prior
// keycodes that should flip to AfterFlavor.
func (c Config) inPriorKeycodes(kc keys.Keycode) bool {
	for _, k := range c.PriorKeycodes {
		if k == kc {
			return true
		}
	}
	return false
}
