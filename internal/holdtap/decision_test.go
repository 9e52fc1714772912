package holdtap

import (
	"testing"

	"github.com/chtengine/cht/internal/keys"
)

func TestSelectFlavor(t *testing.T) {
	cfg := NewConfig(10, nil, nil, WithFlavors(FlavorHoldPreferred, FlavorTapPreferred),
		WithPriorKeycodes(150, 0x04))

	tests := []struct {
		name         string
		priorKeycode keys.Keycode
		priorValid   bool
		priorAgeMS   int64
		want         Flavor
	}{
		{"no prior key uses normal", 0, false, 0, FlavorHoldPreferred},
		{"prior key too old uses normal", 0x04, true, 200, FlavorHoldPreferred},
		{"prior key wrong code uses normal", 0x05, true, 50, FlavorHoldPreferred},
		{"prior key recent and matching flips", 0x04, true, 50, FlavorTapPreferred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectFlavor(cfg, tt.priorKeycode, tt.priorValid, tt.priorAgeMS); got != tt.want {
				t.Errorf("SelectFlavor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectFlavorNoPriorKeycodesConfigured(t *testing.T) {
	cfg := NewConfig(10, nil, nil, WithFlavors(FlavorBalanced, FlavorTapPreferred))
	if got := SelectFlavor(cfg, 0x04, true, 0); got != FlavorBalanced {
		t.Errorf("SelectFlavor() = %v, want %v (normal flavor always applies without PriorKeycodes)", got, FlavorBalanced)
	}
}

func TestIsQuickTap(t *testing.T) {
	cfg := NewConfig(10, nil, nil, WithQuickTap(100), WithRequirePriorIdle(0))

	noLast := LastTapped{}
	if IsQuickTap(cfg, noLast, 10, 50) {
		t.Error("IsQuickTap() with no prior tap should be false")
	}

	samePositionRecent := LastTapped{Position: 10, Timestamp: 0, Valid: true}
	if !IsQuickTap(cfg, samePositionRecent, 10, 50) {
		t.Error("IsQuickTap() same position within quick_tap_ms should be true")
	}

	samePositionStale := LastTapped{Position: 10, Timestamp: 0, Valid: true}
	if IsQuickTap(cfg, samePositionStale, 10, 500) {
		t.Error("IsQuickTap() same position outside quick_tap_ms should be false")
	}

	differentPosition := LastTapped{Position: 20, Timestamp: 0, Valid: true}
	if IsQuickTap(cfg, differentPosition, 10, 50) {
		t.Error("IsQuickTap() different position should be false without require_prior_idle_ms")
	}
}

func TestIsQuickTapRequirePriorIdle(t *testing.T) {
	cfg := NewConfig(10, nil, nil, WithRequirePriorIdle(100))

	anyPositionRecent := LastTapped{Position: 99, Timestamp: 0, Valid: true}
	if !IsQuickTap(cfg, anyPositionRecent, 10, 50) {
		t.Error("IsQuickTap() any position within require_prior_idle_ms should be true")
	}
}

func TestApplyPositionalOverride(t *testing.T) {
	cfg := NewConfig(10, nil, nil, WithHoldTriggerKeyPositions(false, 40, 41, 42))

	t.Run("no other key pressed leaves decision alone", func(t *testing.T) {
		aht := &ActiveHoldTap{Status: StatusHoldInterrupt, PositionOfFirstOtherKeyPressed: NoOtherKeyPosition}
		ApplyPositionalOverride(cfg, aht)
		if aht.Status != StatusHoldInterrupt {
			t.Errorf("Status = %v, want unchanged StatusHoldInterrupt", aht.Status)
		}
	})

	t.Run("trigger position allows hold", func(t *testing.T) {
		aht := &ActiveHoldTap{Status: StatusHoldInterrupt, PositionOfFirstOtherKeyPressed: 41}
		ApplyPositionalOverride(cfg, aht)
		if aht.Status != StatusHoldInterrupt {
			t.Errorf("Status = %v, want unchanged StatusHoldInterrupt", aht.Status)
		}
	})

	t.Run("non-trigger position forces tap", func(t *testing.T) {
		aht := &ActiveHoldTap{Status: StatusHoldInterrupt, PositionOfFirstOtherKeyPressed: 20}
		ApplyPositionalOverride(cfg, aht)
		if aht.Status != StatusTap {
			t.Errorf("Status = %v, want StatusTap", aht.Status)
		}
	})
}
