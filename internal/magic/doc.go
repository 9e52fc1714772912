// Package magic resolves the alternate-repeat ("magic") key: it maps the
// most recently emitted key to an alternate action, consulting the macro
// processor when that action is a text expansion, per spec §4.4.
//
// Magic never presses or releases hold-tap bindings itself; it only
// consults internal/lastkey and hands the final binding to a sink.Sink, so
// it composes with internal/dispatch without depending on it.
package magic
