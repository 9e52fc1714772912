package holdtap

import (
	"errors"
	"testing"

	"github.com/chtengine/cht/internal/keys"
)

func TestRegistryStoreAndUndecided(t *testing.T) {
	r := NewRegistry(2)
	cfg := NewConfig(10, nil, nil)

	aht, err := r.Store(cfg, keys.PositionEvent{Position: 10, Pressed: true, Timestamp: 0})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if r.Undecided() != aht {
		t.Error("Undecided() should return the just-stored hold-tap")
	}
	if aht.PositionOfFirstOtherKeyPressed != NoOtherKeyPosition {
		t.Errorf("PositionOfFirstOtherKeyPressed = %v, want sentinel", aht.PositionOfFirstOtherKeyPressed)
	}
}

func TestRegistryRejectsSecondUndecided(t *testing.T) {
	r := NewRegistry(2)
	cfg := NewConfig(10, nil, nil)

	if _, err := r.Store(cfg, keys.PositionEvent{Position: 10, Timestamp: 0}); err != nil {
		t.Fatalf("first Store() error = %v", err)
	}
	_, err := r.Store(cfg, keys.PositionEvent{Position: 20, Timestamp: 0})
	if !errors.Is(err, ErrAlreadyUndecided) {
		t.Errorf("second Store() error = %v, want ErrAlreadyUndecided", err)
	}
}

func TestRegistryCapacityExceeded(t *testing.T) {
	r := NewRegistry(1)
	cfg := NewConfig(10, nil, nil)

	aht, err := r.Store(cfg, keys.PositionEvent{Position: 10, Timestamp: 0})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	r.Decide(aht, StatusHoldTimer, 100)

	_, err = r.Store(cfg, keys.PositionEvent{Position: 20, Timestamp: 0})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Store() error = %v, want ErrCapacityExceeded", err)
	}
}

func TestRegistryDecideUpdatesLastTapped(t *testing.T) {
	r := NewRegistry(2)
	cfg := NewConfig(10, nil, nil)
	aht, _ := r.Store(cfg, keys.PositionEvent{Position: 10, Timestamp: 0})

	r.Decide(aht, StatusTap, 50)

	if r.Undecided() != nil {
		t.Error("Undecided() should be nil after Decide")
	}
	last := r.LastTapped()
	if !last.Valid || last.Position != 10 || last.Timestamp != 50 {
		t.Errorf("LastTapped() = %+v, want {Position:10 Timestamp:50 Valid:true}", last)
	}
}

func TestRegistryDecideHoldDoesNotUpdateLastTapped(t *testing.T) {
	r := NewRegistry(2)
	cfg := NewConfig(10, nil, nil)
	aht, _ := r.Store(cfg, keys.PositionEvent{Position: 10, Timestamp: 0})

	r.Decide(aht, StatusHoldTimer, 250)

	if r.LastTapped().Valid {
		t.Error("LastTapped() should stay invalid after a hold decision")
	}
}

func TestRegistryReleaseNotFound(t *testing.T) {
	r := NewRegistry(2)
	if err := r.Release(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Release() error = %v, want ErrNotFound", err)
	}
}

func TestRegistryForEachOther(t *testing.T) {
	r := NewRegistry(3)
	cfg := NewConfig(10, nil, nil)
	a, _ := r.Store(cfg, keys.PositionEvent{Position: 10, Timestamp: 0})
	r.Decide(a, StatusHoldTimer, 0)
	b, _ := r.Store(cfg, keys.PositionEvent{Position: 20, Timestamp: 0})
	r.Decide(b, StatusHoldTimer, 0)

	var seen []keys.Position
	r.ForEachOther(10, func(aht *ActiveHoldTap) {
		seen = append(seen, aht.Position)
	})
	if len(seen) != 1 || seen[0] != 20 {
		t.Errorf("ForEachOther(10) visited %v, want [20]", seen)
	}
}
