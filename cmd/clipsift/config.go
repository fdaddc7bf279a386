package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipsift/internal/history"
	"go.klb.dev/clipsift/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPSIFT_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPSIFT_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipsift")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipsift/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/clipsift", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPSIFT")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addStoreFlags adds the history-location flags shared by every command
// that touches the stores.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-history-length", history.DefaultMaxLength, "maximum number of history entries")
	cmd.Flags().String("history-path", defaultHistoryPath(), "history snapshot file")
	cmd.Flags().String("static-history-path", defaultStaticPath(), "read-only pinned entries, one per line")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug on a terminal)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	logging.Init(v.GetString("log-format"), v.GetString("log-level"))
}

// writeDefaultConfig persists the effective settings as a config file on
// first run, so users have something to edit. Best-effort: an unwritable
// config dir is not worth failing the daemon over.
func writeDefaultConfig(v *viper.Viper) {
	if v.ConfigFileUsed() != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".config", "clipsift")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Debug("default config not written", "err", err)
		return
	}
	path := filepath.Join(dir, "clipsift.toml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		slog.Debug("default config not written", "path", path, "err", err)
		return
	}
	slog.Info("default config written", "path", path)
}

func defaultHistoryPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "clipsift", "history.json")
	}
	return filepath.Join(os.TempDir(), "clipsift-history.json")
}

func defaultStaticPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "clipsift", "static.txt")
	}
	return filepath.Join(os.TempDir(), "clipsift-static.txt")
}
