// Package errfmt provides shared formatting for transcript-carrying errors.
package errfmt

import "unicode/utf8"

// MaxLen caps transcript content embedded in error messages.
const MaxLen = 4096

// Tail returns the last MaxLen bytes of s, truncated forward to a valid
// UTF-8 boundary. The result line is most useful when an error message can
// only carry part of a session transcript: the prediction line and any
// tool complaints appear at the end.
func Tail(s string) string {
	if len(s) <= MaxLen {
		return s
	}
	s = s[len(s)-MaxLen:]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[1:]
	}
	return s
}
