package keymap

import (
	"testing"

	"github.com/chtengine/cht/internal/keys"
)

func TestLayerStackResolveFallsThroughTransparent(t *testing.T) {
	base := NewLayer("base")
	base.Set(10, keys.Binding{Behavior: "kp", Param1: 0x04})
	base.Set(20, keys.Binding{Behavior: "kp", Param1: 0x05})

	nav := NewLayer("nav")
	nav.Set(10, keys.Binding{Behavior: "kp", Param1: 0x4F}) // overrides position 10
	// position 20 left TRANSPARENT on nav

	km := New(base)
	km.AddLayer(nav)
	stack := NewLayerStack(km)

	if got := stack.Resolve(10); got.Param1 != 0x04 {
		t.Errorf("Resolve(10) with nav inactive = %+v, want base binding", got)
	}

	stack.Activate(1)
	if got := stack.Resolve(10); got.Param1 != 0x4F {
		t.Errorf("Resolve(10) with nav active = %+v, want nav's override", got)
	}
	if got := stack.Resolve(20); got.Param1 != 0x05 {
		t.Errorf("Resolve(20) with nav active but transparent there = %+v, want base binding", got)
	}
}

func TestLayerStackDeactivate(t *testing.T) {
	base := NewLayer("base")
	base.Set(10, keys.Binding{Behavior: "kp", Param1: 0x04})
	nav := NewLayer("nav")
	nav.Set(10, keys.Binding{Behavior: "kp", Param1: 0x4F})

	km := New(base)
	km.AddLayer(nav)
	stack := NewLayerStack(km)
	stack.Activate(1)
	stack.Deactivate(1)

	if got := stack.Resolve(10); got.Param1 != 0x04 {
		t.Errorf("Resolve(10) after deactivating nav = %+v, want base binding", got)
	}
}

func TestLayerStackBaseNeverDeactivates(t *testing.T) {
	km := New(NewLayer("base"))
	stack := NewLayerStack(km)
	stack.Deactivate(0)
	if stack.HighestActiveLayer() != 0 {
		t.Error("Deactivate(0) should be a no-op; base layer must always stay active")
	}
}

func TestLayerStackHighestActiveLayer(t *testing.T) {
	km := New(NewLayer("base"))
	km.AddLayer(NewLayer("nav"))
	km.AddLayer(NewLayer("sym"))
	stack := NewLayerStack(km)

	stack.Activate(2)
	stack.Activate(1)
	if got := stack.HighestActiveLayer(); got != 2 {
		t.Errorf("HighestActiveLayer() = %d, want 2", got)
	}

	stack.Deactivate(2)
	if got := stack.HighestActiveLayer(); got != 1 {
		t.Errorf("HighestActiveLayer() = %d, want 1", got)
	}
}

func TestKeymapHoldTapLookup(t *testing.T) {
	km := New(NewLayer("base"))
	if _, ok := km.HoldTap(10); ok {
		t.Error("HoldTap(10) should report false before any config is attached")
	}
}
