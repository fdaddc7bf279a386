// Package history implements the bounded, deduplicated, most-recent-first
// selection history. Everything here is pure: inputs are never mutated and
// no I/O happens, so the daemon loop can thread history values through each
// poll cycle explicitly instead of keeping them in ambient state.
package history

import "strings"

// DefaultMaxLength bounds the history when the configured limit is missing
// or non-positive.
const DefaultMaxLength = 25

// Append returns the history that results from observing selection.
//
// The selection is whitespace-trimmed first. A selection that is empty
// after trimming, or equal to the current head element, leaves h untouched
// and h itself is returned. Anything else is removed from wherever it
// already appears, prepended as the new head, and the result truncated to
// max elements.
//
// Only the head comparison short-circuits the append: a value matching a
// deeper element still counts as a new selection and moves to the front.
func Append(selection string, h []string, max int) []string {
	if max <= 0 {
		max = DefaultMaxLength
	}
	s := strings.TrimSpace(selection)
	if s == "" {
		return h
	}
	if len(h) > 0 && h[0] == s {
		return h
	}

	out := make([]string, 0, len(h)+1)
	out = append(out, s)
	for _, e := range h {
		if e != s {
			out = append(out, e)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
