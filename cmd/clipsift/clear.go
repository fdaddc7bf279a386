package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipsift/internal/ipc"
	"go.klb.dev/clipsift/internal/storage"
	"go.klb.dev/clipsift/internal/wire"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the selection history",
		Long: `Truncates the persisted history. A running daemon is told to drop its
in-memory history as well, so nothing resurfaces on its next save. The
static history file is never touched.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runClear(v) },
	}

	addStoreFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runClear(v *viper.Viper) error {
	if ipc.IsRunning() {
		if conn, err := ipc.Dial(); err == nil {
			wc := wire.New(conn)
			if err := wc.WriteMsg(&wire.Message{Type: wire.TypeClear}); err == nil {
				_, _ = wc.ReadMsg()
			}
			_ = conn.Close()
		} else {
			slog.Debug("daemon not reachable, clearing the store only", "err", err)
		}
	}

	storage.SaveHistory(v.GetString("history-path"), nil)
	return nil
}
