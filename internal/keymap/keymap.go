package keymap

import (
	"github.com/chtengine/cht/internal/holdtap"
	"github.com/chtengine/cht/internal/keys"
)

// Layer is a dense position→binding table, one row of the keymap's
// `keymap[layer][position]` array (spec.md §6). The zero value of
// keys.Binding (empty Behavior) is TRANSPARENT.
type Layer struct {
	Name     string
	Bindings map[keys.Position]keys.Binding
}

// NewLayer creates an empty, named Layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Bindings: make(map[keys.Position]keys.Binding)}
}

// Set assigns the binding at position on this layer.
func (l *Layer) Set(position keys.Position, b keys.Binding) {
	l.Bindings[position] = b
}

// At returns the binding at position, or the zero (TRANSPARENT) Binding if
// this layer does not define one there.
func (l *Layer) At(position keys.Position) keys.Binding {
	return l.Bindings[position]
}

// Keymap is the external, read-only layer/position/binding table plus
// per-position hold-tap configuration.
type Keymap struct {
	// Layers is ordered base layer first (index 0), matching the dense
	// Binding[layer][position] table of spec.md §6.
	Layers []*Layer

	holdTapConfigs map[keys.Position]holdtap.Config
}

// New creates a Keymap whose base layer is layers[0]; additional layers
// may be appended with AddLayer.
func New(base *Layer) *Keymap {
	return &Keymap{
		Layers:         []*Layer{base},
		holdTapConfigs: make(map[keys.Position]holdtap.Config),
	}
}

// AddLayer appends a layer above every previously added one.
func (k *Keymap) AddLayer(l *Layer) {
	k.Layers = append(k.Layers, l)
}

// SetHoldTap attaches a hold-tap configuration to a position.
func (k *Keymap) SetHoldTap(cfg holdtap.Config) {
	k.holdTapConfigs[cfg.Position] = cfg
}

// HoldTap returns the hold-tap configuration for position, if any.
func (k *Keymap) HoldTap(position keys.Position) (holdtap.Config, bool) {
	cfg, ok := k.holdTapConfigs[position]
	return cfg, ok
}

// LayerStack tracks which of a Keymap's non-base layers are currently
// held (momentary-layer semantics).
type LayerStack struct {
	keymap *Keymap
	active []bool // parallel to keymap.Layers; index 0 (base) is always true
}

// NewLayerStack creates a LayerStack over keymap with only the base layer
// active.
func NewLayerStack(keymap *Keymap) *LayerStack {
	active := make([]bool, len(keymap.Layers))
	active[0] = true
	return &LayerStack{keymap: keymap, active: active}
}

// Activate marks layerIndex as held.
func (s *LayerStack) Activate(layerIndex int) {
	if layerIndex <= 0 || layerIndex >= len(s.active) {
		return
	}
	s.active[layerIndex] = true
}

// Deactivate marks layerIndex as released. The base layer (0) can never be
// deactivated.
func (s *LayerStack) Deactivate(layerIndex int) {
	if layerIndex <= 0 || layerIndex >= len(s.active) {
		return
	}
	s.active[layerIndex] = false
}

// Resolve returns the binding in effect at position: the first
// non-TRANSPARENT binding found scanning from the highest active layer
// down to the base layer.
func (s *LayerStack) Resolve(position keys.Position) keys.Binding {
	for i := len(s.active) - 1; i >= 0; i-- {
		if !s.active[i] {
			continue
		}
		if b := s.keymap.Layers[i].At(position); !b.IsTransparent() {
			return b
		}
	}
	return keys.Binding{}
}

// HighestActiveLayer returns the index of the topmost held layer
// (always ≥ 0, since the base layer is never deactivated).
func (s *LayerStack) HighestActiveLayer() int {
	for i := len(s.active) - 1; i >= 0; i-- {
		if s.active[i] {
			return i
		}
	}
	return 0
}
