// Package pimmsrun drives HEASARC's PIMMS flux-conversion simulator as a
// subprocess.
//
// PIMMS (the Portable Interactive Multi-Mission Simulator) is an
// independently installed interactive command-line tool. pimmsrun builds the
// command script its interactive session expects, runs one subprocess round
// trip, captures the combined output, and extracts the predicted conversion
// factor.
//
// # Core Types
//
//   - [Request] — the parameters of one conversion (value type)
//   - [Script] — the ordered command lines fed to the tool
//   - [Driver] — owns the subprocess round trip
//   - [Result] — conversion factor plus the verbatim session transcript
//   - [Option] — functional options for [NewDriver] and [Convert]
//
// # Quick Start
//
//	factor, err := pimmsrun.Convert(ctx, pimmsrun.Request{
//	    Flux:     1e-14,
//	    Mission:  "xmm",
//	    Detector: "pn",
//	    Filter:   "thin",
//	    Model:    "powerlaw",
//	    Params:   []float64{2.0},
//	})
//	if err != nil { log.Fatal(err) }
//	fmt.Println(factor)
//
// # Prompt Fragility
//
// The wire contract is the tool's own interactive command language, scraped
// from free-form text output. Everything version-dependent — the result
// marker wording, the value token positions, the instrument and filter
// tables, the model parameter lists — lives in the [catalog] package as
// data, so tracking a new PIMMS release is a table edit, not a code change.
//
// # Errors
//
// Every failure surfaces directly to the caller; there are no retries and
// no degraded mode. Failures that carry a session transcript attach it
// verbatim ([OutputError.Transcript]) so a prompt-order mismatch can be
// diagnosed from the error alone.
package pimmsrun
