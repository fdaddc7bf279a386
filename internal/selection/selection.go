// Package selection reads and writes the OS selection buffers.
//
// Two backends exist. The tools backend shells out to the usual session
// utilities (wl-paste/wl-copy, xclip, xsel, pbpaste/pbcopy) and is the only
// one that can see the X11/Wayland primary selection. The native backend
// uses golang.design/x/clipboard and covers the clipboard buffer only.
// New probes for the tools first and falls back to the native backend.
package selection

import (
	"context"
	"errors"
)

// Source identifies one OS selection buffer.
type Source string

const (
	// Clipboard is the explicit-copy buffer (ctrl-c / cmd-c).
	Clipboard Source = "clipboard"
	// Primary is the select-to-copy buffer on X11 and Wayland.
	Primary Source = "primary"
)

// ErrNoDisplay reports that the display or session behind the selection
// buffers cannot be reached at all. Callers treat it as fatal; every other
// read failure is transient and recovered as "no value".
var ErrNoDisplay = errors.New("display unavailable")

// Backend reads and writes selection buffers.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current content of src. ok is false when the buffer
	// is empty or unreadable right now; in particular a ctx deadline
	// expiring mid-read is reported as no value, not as an error. The only
	// error callers need to branch on is ErrNoDisplay.
	Read(ctx context.Context, src Source) (text string, ok bool, err error)

	// Write replaces the clipboard buffer with text.
	Write(text string) error

	// Close releases backend resources.
	Close()
}

// Sources returns the buffers to poll: the clipboard always, plus the
// primary selection when usePrimary is set.
func Sources(usePrimary bool) []Source {
	if usePrimary {
		return []Source{Clipboard, Primary}
	}
	return []Source{Clipboard}
}

// New returns the best backend for the current session: the first
// available command-line tool family, or the native clipboard binding when
// none is installed.
func New() Backend {
	if b := newToolsBackend(); b != nil {
		return b
	}
	return newNativeBackend()
}
