package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipsift/internal/codec"
	"go.klb.dev/clipsift/internal/ipc"
	"go.klb.dev/clipsift/internal/selection"
	"go.klb.dev/clipsift/internal/storage"
	"go.klb.dev/clipsift/internal/wire"
)

func newPrintCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "print [chosen-entry]",
		Short: "Print the history for a menu chooser, or re-select an entry",
		Long: `With no argument, prints every history entry followed by every static
entry, one flattened line each — the stream a dmenu/rofi-style chooser reads.

With an argument (the line the chooser returned), restores the original line
breaks and puts the text on the clipboard.

A running daemon is asked for its live history over the IPC socket; without
one, the persisted snapshot is read directly.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runPrint(v, args) },
	}

	addStoreFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPrint(v *viper.Viper, args []string) error {
	if len(args) == 1 {
		return reselect(args[0])
	}

	hist := fetchHistory(v.GetString("history-path"))
	static := storage.LoadStatic(v.GetString("static-history-path"))

	w := bufio.NewWriter(os.Stdout)
	for line := range codec.Lines(hist, static) {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

// fetchHistory prefers the running daemon's live history and falls back to
// the on-disk snapshot.
func fetchHistory(path string) []string {
	if ipc.IsRunning() {
		if conn, err := ipc.Dial(); err == nil {
			defer conn.Close()
			wc := wire.New(conn)
			if err := wc.WriteMsg(&wire.Message{Type: wire.TypeHistory}); err == nil {
				if resp, err := wc.ReadMsg(); err == nil && resp.Type == wire.TypeHistory {
					return resp.Entries
				}
			}
		}
	}
	return storage.LoadHistory(path)
}

// reselect puts a chooser-selected line back on the clipboard.
func reselect(line string) error {
	backend := selection.New()
	defer backend.Close()

	if err := backend.Write(codec.Unflatten(line)); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}
