package selection

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// toolsBackend reads the buffers by running the session's clipboard
// utilities, one short-lived process per read. Each family below names the
// argv for reading a buffer and for writing the clipboard.
type toolsBackend struct {
	name      string
	available func() bool
	pasteArgv func(src Source) []string
	copyArgv  []string
	primary   bool // family can address the primary selection
}

// knownTools is the probe order. Wayland first, then the two X11 tools,
// then macOS.
var knownTools = []*toolsBackend{
	{
		name:      "wl-clipboard",
		available: func() bool { return os.Getenv("WAYLAND_DISPLAY") != "" },
		pasteArgv: func(src Source) []string {
			if src == Primary {
				return []string{"wl-paste", "--primary", "--no-newline"}
			}
			return []string{"wl-paste", "--no-newline"}
		},
		copyArgv: []string{"wl-copy"},
		primary:  true,
	},
	{
		name:      "xclip",
		available: func() bool { return os.Getenv("DISPLAY") != "" },
		pasteArgv: func(src Source) []string {
			return []string{"xclip", "-out", "-selection", string(src)}
		},
		copyArgv: []string{"xclip", "-in", "-selection", "clipboard"},
		primary:  true,
	},
	{
		name:      "xsel",
		available: func() bool { return os.Getenv("DISPLAY") != "" },
		pasteArgv: func(src Source) []string {
			if src == Primary {
				return []string{"xsel", "--primary", "--output"}
			}
			return []string{"xsel", "--clipboard", "--output"}
		},
		copyArgv: []string{"xsel", "--clipboard", "--input"},
		primary:  true,
	},
	{
		name:      "pbcopy",
		available: func() bool { return runtime.GOOS == "darwin" },
		pasteArgv: func(_ Source) []string { return []string{"pbpaste"} },
		copyArgv:  []string{"pbcopy"},
		primary:   false,
	},
}

// newToolsBackend returns the first tool family whose paste binary is on
// PATH and whose session environment looks usable, or nil when none is.
func newToolsBackend() Backend {
	for _, t := range knownTools {
		if !t.available() {
			continue
		}
		if _, err := exec.LookPath(t.pasteArgv(Clipboard)[0]); err != nil {
			continue
		}
		slog.Debug("selection backend selected", "backend", t.name)
		if !t.primary {
			slog.Debug("backend cannot read the primary selection", "backend", t.name)
		}
		return t
	}
	return nil
}

func (b *toolsBackend) Name() string { return b.name }

func (b *toolsBackend) Read(ctx context.Context, src Source) (string, bool, error) {
	if src == Primary && !b.primary {
		return "", false, nil
	}

	argv := b.pasteArgv(src)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		// Bounded wait expired: no value this cycle.
		return "", false, nil
	}
	if err != nil {
		if noDisplayOutput(stderr.String()) {
			return "", false, fmt.Errorf("%s: %w", b.name, ErrNoDisplay)
		}
		// The X11 tools exit non-zero when the buffer is simply empty.
		slog.Debug("selection read produced no value",
			"backend", b.name,
			"source", src,
			"err", err,
		)
		return "", false, nil
	}
	return out.String(), true, nil
}

func (b *toolsBackend) Write(text string) error {
	cmd := exec.Command(b.copyArgv[0], b.copyArgv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if noDisplayOutput(stderr.String()) {
			return fmt.Errorf("%s: %w", b.name, ErrNoDisplay)
		}
		return fmt.Errorf("%s: %w", b.name, err)
	}
	return nil
}

func (b *toolsBackend) Close() {}

// noDisplayOutput classifies tool stderr as a dead display/session. The
// tools only report this condition textually, so the sniffing is confined
// to this one spot; everything above the backend boundary branches on
// ErrNoDisplay instead.
func noDisplayOutput(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, marker := range []string{
		"can't open display",
		"could not connect to display",
		"cannot connect to display",
		"unable to connect to display",
		"could not connect to a wayland server",
		"failed to connect to a wayland server",
	} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
