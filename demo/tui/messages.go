package tui

import "time"

// actionDoneMsg reports one orchestrator call finishing. The snapshot is
// refreshed by Update regardless of err; guard failures surface as transient
// status text rather than terminal errors.
type actionDoneMsg struct {
	err error
}

// tickMsg drives snapshot refreshes while the render poll runs in the
// background.
type tickMsg struct {
	Time time.Time
}
