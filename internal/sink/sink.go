package sink

import "github.com/chtengine/cht/internal/keys"

// BindingEvent carries the original position's identity through a binding
// invocation, per spec §4.1's invocation contract.
type BindingEvent struct {
	Position  keys.Position
	Timestamp keys.Timestamp
	Source    keys.Source
}

// Sink accepts press/release of a resolved binding and is responsible for
// emitting HID output. A non-nil error aborts the remaining bindings in the
// same tap/hold list (spec §7 BindingFailure).
type Sink interface {
	Invoke(binding keys.Binding, ev BindingEvent, pressed bool) error
}

// Invocation is one recorded call to a Sink, used by Memory for assertions
// in tests and by cmd/chtsim to print a trace.
type Invocation struct {
	Binding keys.Binding
	Event   BindingEvent
	Pressed bool
}

// Memory is a reference Sink that records every invocation instead of
// emitting real HID output.
type Memory struct {
	Invocations []Invocation
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Invoke records the call and always succeeds.
func (m *Memory) Invoke(binding keys.Binding, ev BindingEvent, pressed bool) error {
	m.Invocations = append(m.Invocations, Invocation{Binding: binding, Event: ev, Pressed: pressed})
	return nil
}

// Reset clears the recorded invocations.
func (m *Memory) Reset() {
	m.Invocations = m.Invocations[:0]
}
