// Package timer schedules the single delayed callback per active hold-tap
// (the tapping-term expiry), per spec §4.3.
//
// Firing is never delivered directly on the timer's own goroutine: Service
// is constructed with a submit function that hands the firing callback
// back to the engine's single serialized worker, so timer-driven decisions
// serialize with every other event the same way position and keycode
// events do (spec §5).
package timer
