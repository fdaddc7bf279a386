package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipsift/internal/ipc"
	"go.klb.dev/clipsift/internal/poller"
	"go.klb.dev/clipsift/internal/selection"
	"go.klb.dev/clipsift/internal/wire"
)

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the selection poller",
		Long: `Polls the clipboard (and, unless disabled, the primary selection) every
500 ms, records distinct selections into the history, and persists it on
every change. Runs until signalled.

The daemon also answers "clipsift print" and "clipsift clear" over a local
socket so they see the live history.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.Bool("use-primary-selection", true, "also poll the primary selection buffer")
	addStoreFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)
	writeDefaultConfig(v)

	maxLen := v.GetInt("max-history-length")
	if maxLen <= 0 {
		return fmt.Errorf("max-history-length must be positive, got %d", maxLen)
	}
	histPath := v.GetString("history-path")
	usePrimary := v.GetBool("use-primary-selection")

	backend := selection.New()
	defer backend.Close()

	slog.Info("clipsift daemon starting",
		"version", Version,
		"backend", backend.Name(),
		"history", histPath,
		"max_len", maxLen,
		"primary", usePrimary,
	)

	p := poller.New(poller.Options{
		Backend:     backend,
		Sources:     selection.Sources(usePrimary),
		MaxLength:   maxLen,
		HistoryPath: histPath,
	})

	if ln, err := ipc.Listen(); err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		defer ln.Close()
		go serveIPC(ln, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("selection polling stopped: %w", err)
	}
	slog.Info("clipsift daemon stopped")
	return nil
}

func serveIPC(ln net.Listener, p *poller.Poller) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go handleIPCConn(conn, p)
	}
}

func handleIPCConn(conn net.Conn, p *poller.Poller) {
	defer conn.Close()
	wc := wire.New(conn)

	msg, err := wc.ReadMsg()
	if err != nil {
		return
	}

	switch msg.Type {
	case wire.TypeHistory:
		_ = wc.WriteMsg(&wire.Message{Type: wire.TypeHistory, Entries: p.Snapshot()})

	case wire.TypeClear:
		p.RequestClear()
		_ = wc.WriteMsg(&wire.Message{Type: wire.TypeOK})

	default:
		_ = wc.WriteMsg(&wire.Message{
			Type:  wire.TypeError,
			Error: fmt.Sprintf("unknown message type %q", msg.Type),
		})
	}
}
