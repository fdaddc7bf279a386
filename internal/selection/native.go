package selection

import (
	"context"
	"fmt"
	"log/slog"

	"golang.design/x/clipboard"
)

// nativeBackend reads the clipboard through golang.design/x/clipboard. It
// has no access to the primary selection; reads of that buffer report no
// value. Init failure means the display itself is unreachable, which is
// surfaced as ErrNoDisplay on every subsequent call.
type nativeBackend struct {
	initErr error
}

func newNativeBackend() Backend {
	b := &nativeBackend{}
	if err := clipboard.Init(); err != nil {
		slog.Debug("native clipboard init failed", "err", err)
		b.initErr = fmt.Errorf("clipboard init (%v): %w", err, ErrNoDisplay)
	}
	return b
}

func (b *nativeBackend) Name() string { return "native" }

func (b *nativeBackend) Read(ctx context.Context, src Source) (string, bool, error) {
	if b.initErr != nil {
		return "", false, b.initErr
	}
	if src != Clipboard {
		return "", false, nil
	}

	ch := make(chan []byte, 1)
	go func() { ch <- clipboard.Read(clipboard.FmtText) }()

	select {
	case <-ctx.Done():
		return "", false, nil
	case data := <-ch:
		if len(data) == 0 {
			return "", false, nil
		}
		return string(data), true, nil
	}
}

func (b *nativeBackend) Write(text string) error {
	if b.initErr != nil {
		return b.initErr
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (b *nativeBackend) Close() {}
