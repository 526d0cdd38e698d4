package pimmsrun

import (
	"errors"
	"strconv"

	"github.com/xastro/pimmsrun/internal/errfmt"
)

// Sentinel errors for driver operations.
var (
	// ErrToolNotFound indicates the PIMMS binary is missing from PATH
	// or not executable.
	ErrToolNotFound = errors.New("pimmsrun: pimms binary not found")

	// ErrInvalidRequest indicates a Request that violates the catalog
	// tables or field constraints.
	ErrInvalidRequest = errors.New("pimmsrun: invalid request")

	// ErrNoResult indicates a session transcript with no result marker
	// line. Always carried inside an *OutputError.
	ErrNoResult = errors.New("pimmsrun: no prediction in output")
)

// OutputError represents a session whose output could not be used: the
// subprocess exited with a non-zero status, or its transcript lacks the
// result marker line.
//
// Transcript is the verbatim captured output — the error message embeds
// only a capped tail, but the field carries the whole session so a
// prompt-order mismatch can be diagnosed. ExitCode is 0 when the process
// exited cleanly but produced no prediction.
type OutputError struct {
	Transcript string
	ExitCode   int
	Err        error
}

func (e *OutputError) Error() string {
	msg := "pimmsrun: unexpected output"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.ExitCode != 0 {
		msg += " (exit status " + strconv.Itoa(e.ExitCode) + ")"
	}
	if e.Transcript != "" {
		msg += "\ntranscript:\n" + errfmt.Tail(e.Transcript)
	}
	return msg
}

func (e *OutputError) Unwrap() error { return e.Err }

// ParseError represents a transcript whose result marker line was found
// but whose value token is not a finite number.
type ParseError struct {
	Line  string // the marker line
	Token string // the token that failed to parse
	Err   error
}

func (e *ParseError) Error() string {
	return "pimmsrun: parse prediction: token " + strconv.Quote(e.Token) +
		" in line " + strconv.Quote(e.Line) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Transcript extracts the verbatim session transcript from an error chain
// containing *OutputError. Returns ("", false) otherwise.
func Transcript(err error) (string, bool) {
	var outErr *OutputError
	if errors.As(err, &outErr) {
		return outErr.Transcript, true
	}
	return "", false
}
