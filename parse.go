package pimmsrun

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/xastro/pimmsrun/catalog"
)

// parseFactor scans a session transcript for the prediction line and
// extracts the conversion factor and its units.
//
// Each line beginning with the pattern's marker is tried at the primary
// value token, falling back to the token counted from the end (flux-mode
// prediction lines interpose words before the value). The last marker
// line wins — the tool may print intermediate predictions while the
// model is refined.
//
// No marker line yields an *OutputError wrapping ErrNoResult with the
// verbatim transcript; a marker line whose candidate tokens are not
// finite numbers yields a *ParseError.
func parseFactor(transcript string, pat catalog.ResultPattern) (value float64, units string, err error) {
	found := false
	var parseErr error

	for line := range strings.Lines(transcript) {
		line = strings.TrimRight(line, "\r\n")
		if !strings.HasPrefix(strings.TrimSpace(line), pat.Marker) {
			continue
		}
		v, u, perr := parseMarkerLine(strings.TrimSpace(line), pat)
		if perr != nil {
			// Keep scanning: a later marker line may parse.
			parseErr = perr
			continue
		}
		value, units = v, u
		found = true
		parseErr = nil
	}

	switch {
	case found:
		return value, units, nil
	case parseErr != nil:
		return 0, "", parseErr
	default:
		return 0, "", &OutputError{Transcript: transcript, Err: ErrNoResult}
	}
}

// parseMarkerLine extracts the value and units from one marker line using
// the pattern's two token positions. Units are the token following the
// value, when present.
func parseMarkerLine(line string, pat catalog.ResultPattern) (float64, string, error) {
	tokens := strings.Fields(line)

	primaryErr := errors.New("line has too few tokens")
	if pat.ValueToken < len(tokens) {
		tok := tokens[pat.ValueToken]
		v, err := parseFinite(tok)
		if err == nil {
			return v, tokenAfter(tokens, pat.ValueToken), nil
		}
		primaryErr = err
	}

	idx := len(tokens) - pat.FallbackFromEnd
	if idx < 0 || idx == pat.ValueToken {
		return 0, "", &ParseError{Line: line, Token: tokenAt(tokens, pat.ValueToken), Err: primaryErr}
	}
	tok := tokens[idx]
	v, err := parseFinite(tok)
	if err != nil {
		return 0, "", &ParseError{Line: line, Token: tok, Err: err}
	}
	return v, tokenAfter(tokens, idx), nil
}

// parseFinite parses a finite float. "NaN" and "Inf" are accepted by
// strconv but are never valid conversion factors.
func parseFinite(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("value is not finite")
	}
	return v, nil
}

func tokenAfter(tokens []string, i int) string {
	if i+1 < len(tokens) {
		return tokens[i+1]
	}
	return ""
}

func tokenAt(tokens []string, i int) string {
	if i >= 0 && i < len(tokens) {
		return tokens[i]
	}
	return ""
}
