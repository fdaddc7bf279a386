// Package poller drives the daemon: it samples the selection buffers on a
// fixed cadence, folds new selections into the history, and persists the
// result whenever it changed.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.klb.dev/clipsift/internal/history"
	"go.klb.dev/clipsift/internal/selection"
	"go.klb.dev/clipsift/internal/storage"
)

const (
	// CycleInterval is the fixed sleep between poll cycles. No adaptive
	// backoff: latency stays predictable and the cost of an idle cycle is
	// two cheap reads.
	CycleInterval = 500 * time.Millisecond

	// ReadTimeout bounds a single buffer read so one hung external call
	// cannot stall the loop past it.
	ReadTimeout = time.Second
)

// Options configure a Poller.
type Options struct {
	Backend     selection.Backend
	Sources     []selection.Source
	MaxLength   int
	HistoryPath string

	// Interval and Timeout default to CycleInterval and ReadTimeout.
	// Tests shorten them.
	Interval time.Duration
	Timeout  time.Duration
}

// state is everything one poll cycle reads and the next one needs: the
// history itself, the rotating scan order, and the last value each source
// returned on a successful read. It is threaded through cycle calls
// explicitly; nothing here is global.
type state struct {
	hist  []string
	order []selection.Source
	last  map[selection.Source]string
}

// Poller owns the selection history. The Run goroutine is the only writer;
// the IPC side sees copies via Snapshot and asks for mutations through
// RequestClear.
type Poller struct {
	opts    Options
	clearCh chan struct{}

	mu      sync.RWMutex
	current []string
}

// New creates a Poller and primes its published history from the store.
func New(opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = CycleInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = ReadTimeout
	}
	p := &Poller{
		opts:    opts,
		clearCh: make(chan struct{}, 1),
	}
	hist := storage.LoadHistory(opts.HistoryPath)
	if opts.MaxLength > 0 && len(hist) > opts.MaxLength {
		// The limit may have been lowered since the snapshot was written.
		hist = hist[:opts.MaxLength]
	}
	p.publish(hist)
	return p
}

// Snapshot returns a copy of the current history, most recent first. Safe
// to call from IPC goroutines; the returned slice is the caller's to keep.
func (p *Poller) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.current)
}

// RequestClear asks the loop to drop the history and rewrite the store.
// The request is applied at the next cycle boundary.
func (p *Poller) RequestClear() {
	select {
	case p.clearCh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. It returns a non-nil error only when
// the display behind the selection buffers is unreachable, which the
// caller treats as fatal; every other failure is logged and the loop keeps
// going.
func (p *Poller) Run(ctx context.Context) error {
	st := state{
		hist:  p.Snapshot(),
		order: slices.Clone(p.opts.Sources),
		last:  make(map[selection.Source]string),
	}

	slog.Debug("poller started",
		"sources", len(st.order),
		"interval", p.opts.Interval,
		"restored", len(st.hist),
	)

	for {
		st = p.applyClear(st)

		next, err := p.cycle(ctx, st)
		switch {
		case err == nil:
			st = next
		case errors.Is(err, selection.ErrNoDisplay):
			return err
		default:
			slog.Error("poll cycle failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.opts.Interval):
		}
	}
}

// cycle scans the sources in rotation order. The first source whose value
// differs from its previous successful read supplies the selection for
// this cycle and moves to the end of the order, so two simultaneously
// changing sources take turns instead of one starving the other.
func (p *Poller) cycle(ctx context.Context, st state) (state, error) {
	for i, src := range st.order {
		rctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
		text, ok, err := p.opts.Backend.Read(rctx, src)
		cancel()
		if err != nil {
			return st, fmt.Errorf("read %s: %w", src, err)
		}
		if !ok || text == st.last[src] {
			continue
		}

		st.last[src] = text
		st.order = rotate(st.order, i)
		st.hist = p.record(text, st.hist)
		return st, nil
	}
	return st, nil
}

// record folds text into hist and, when that actually changed the history,
// writes the store and publishes the new snapshot.
func (p *Poller) record(text string, hist []string) []string {
	next := history.Append(text, hist, p.opts.MaxLength)
	if slices.Equal(next, hist) {
		return hist
	}

	slog.Debug("selection recorded", "entries", len(next))
	storage.SaveHistory(p.opts.HistoryPath, next)
	p.publish(next)
	return next
}

// applyClear consumes a pending clear request, if any.
func (p *Poller) applyClear(st state) state {
	select {
	case <-p.clearCh:
	default:
		return st
	}

	slog.Info("history cleared")
	st.hist = nil
	storage.SaveHistory(p.opts.HistoryPath, nil)
	p.publish(nil)
	return st
}

func (p *Poller) publish(h []string) {
	p.mu.Lock()
	p.current = slices.Clone(h)
	p.mu.Unlock()
}

// rotate moves the element at i to the end, preserving the relative order
// of everything else.
func rotate(order []selection.Source, i int) []selection.Source {
	src := order[i]
	out := slices.Delete(slices.Clone(order), i, i+1)
	return append(out, src)
}
