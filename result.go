package pimmsrun

import "time"

// Result is the outcome of one conversion, including the verbatim session
// transcript for diagnosis and run metadata for log correlation.
type Result struct {
	// RunID is a UUID assigned to the subprocess run.
	RunID string `json:"run_id"`

	// Value is the conversion factor: a count rate with an instrument,
	// or a band flux in flux-output mode.
	Value float64 `json:"value"`

	// Units is the unit token following the value on the prediction line
	// (e.g. "cps", "ergs/cm/cm/s").
	Units string `json:"units,omitempty"`

	// Transcript is the verbatim captured combined output of the session.
	Transcript string `json:"transcript,omitempty"`

	// Duration is the wall time of the subprocess round trip.
	Duration time.Duration `json:"duration"`
}
