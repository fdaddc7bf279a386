// clipsift: clipboard history for menu-driven re-selection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipsift",
		Short: "Clipboard history daemon for menu choosers",
		Long: `clipsift watches the clipboard (and optionally the primary selection),
keeps a bounded most-recent-first history across restarts, and prints it one
entry per line for dmenu/rofi-style choosers.

Run "clipsift daemon" in the session. Point the chooser at "clipsift print";
pass the chosen line back as an argument to put it on the clipboard:

  clipsift print "$(clipsift print | rofi -dmenu)"

Config file search order (first found wins):
  /etc/clipsift/clipsift.toml
  $HOME/.config/clipsift/clipsift.toml
  path supplied via --config

All flags can be set via CLIPSIFT_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDaemonCmd(),
		newPrintCmd(),
		newClearCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipsift %s\n", Version)
		},
	}
}
