// Package codec flattens multi-line selections into single-line menu
// entries and restores them on the way back.
//
// The placeholder is U+00A0 (no-break space): it renders like an ordinary
// space in a chooser listing and essentially never occurs in real clipboard
// text. Because the placeholder itself is not escaped, input that
// legitimately contains U+00A0 does not survive a round trip; that is a
// documented limitation, not corrected here.
package codec

import (
	"iter"
	"strings"
)

// Placeholder is the character substituted for line breaks in flattened
// entries.
const Placeholder = "\u00a0"

var flattener = strings.NewReplacer("\n", Placeholder, "\r", Placeholder)

// Flatten returns s with every line feed and carriage return replaced by
// Placeholder, so the whole selection fits on one chooser line.
func Flatten(s string) string {
	return flattener.Replace(s)
}

// Unflatten reverses Flatten, mapping every Placeholder back to a line feed.
func Unflatten(s string) string {
	return strings.ReplaceAll(s, Placeholder, "\n")
}

// Lines yields every history entry followed by every static entry, each
// flattened, one chooser line per element. The sequence is finite and can
// be ranged over more than once.
func Lines(history, static []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range history {
			if !yield(Flatten(s)) {
				return
			}
		}
		for _, s := range static {
			if !yield(Flatten(s)) {
				return
			}
		}
	}
}
