package engine

import (
	"github.com/chtengine/cht/internal/keymap"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/sink"
)

// layerSink intercepts "layer" behavior bindings to drive the momentary
// layer stack, and forwards everything else to the real action sink.
// Every binding invocation in the engine — hold-tap, ordinary tap, magic,
// macro — flows through the same layerSink, so a layer-tap key works
// identically whether it arrives via a hold-tap's hold binding or a plain
// keymap entry.
type layerSink struct {
	inner  sink.Sink
	layers *keymap.LayerStack
}

func newLayerSink(inner sink.Sink, layers *keymap.LayerStack) *layerSink {
	return &layerSink{inner: inner, layers: layers}
}

// Invoke implements sink.Sink.
func (s *layerSink) Invoke(b keys.Binding, ev sink.BindingEvent, pressed bool) error {
	if b.Behavior == "layer" {
		if pressed {
			s.layers.Activate(int(b.Param1))
		} else {
			s.layers.Deactivate(int(b.Param1))
		}
		return nil
	}
	return s.inner.Invoke(b, ev, pressed)
}
