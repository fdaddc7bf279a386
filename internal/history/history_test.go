package history

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		history   []string
		max       int
		want      []string
	}{
		{"first entry", "foo", nil, 10, []string{"foo"}},
		{"empty selection", "", []string{"foo"}, 10, []string{"foo"}},
		{"whitespace selection", "   ", []string{"foo"}, 10, []string{"foo"}},
		{"tab and newline only", "\t\n", []string{"foo"}, 10, []string{"foo"}},
		{"head duplicate", "foo", []string{"foo"}, 10, []string{"foo"}},
		{"head duplicate after trim", "  foo ", []string{"foo", "bar"}, 10, []string{"foo", "bar"}},
		{"new head", "baz", []string{"foo", "bar"}, 10, []string{"baz", "foo", "bar"}},
		{"selection is trimmed", "  baz\n", []string{"foo"}, 10, []string{"baz", "foo"}},
		{"deep duplicate moves to front", "bar", []string{"foo", "bar", "qux"}, 10, []string{"bar", "foo", "qux"}},
		{"dedup then truncate", "a", []string{"c", "b", "a"}, 2, []string{"a", "c"}},
		{"truncate at max", "d", []string{"c", "b", "a"}, 3, []string{"d", "c", "b"}},
		{"non-positive max falls back to default", "x", nil, 0, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Append(tt.selection, tt.history, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendNoOpReturnsSameSlice(t *testing.T) {
	h := []string{"foo", "bar"}

	for _, s := range []string{"", "   ", "foo", " foo "} {
		got := Append(s, h, 10)
		require.Len(t, got, len(h))
		// A skipped append hands back the input history untouched.
		assert.Equal(t, h, got, "selection %q", s)
	}
}

func TestAppendDoesNotMutateInput(t *testing.T) {
	h := []string{"c", "b", "a"}
	orig := slices.Clone(h)

	Append("a", h, 2)
	Append("new", h, 3)

	assert.Equal(t, orig, h)
}

func TestAppendInvariants(t *testing.T) {
	const max = 5

	selections := []string{
		"one", "two", "", "two", "  three  ", "two\n", "four",
		"five", "six", "seven", "one", "   ", "eight", "six",
	}

	var h []string
	for i, s := range selections {
		h = Append(s, h, max)

		require.LessOrEqual(t, len(h), max, "step %d", i)
		seen := make(map[string]bool, len(h))
		for _, e := range h {
			require.NotEmpty(t, strings.TrimSpace(e), "step %d: empty element", i)
			require.False(t, seen[e], "step %d: duplicate %q", i, e)
			seen[e] = true
		}
	}
}

func TestAppendMRUOrder(t *testing.T) {
	var h []string
	for i := range 8 {
		h = Append(fmt.Sprintf("sel-%d", i), h, 100)
	}

	require.Len(t, h, 8)
	// Most recent first.
	assert.Equal(t, "sel-7", h[0])
	assert.Equal(t, "sel-0", h[7])
}
