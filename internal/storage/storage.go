// Package storage persists the selection history between runs and reads
// the user-maintained static history.
//
// Persistence is deliberately best-effort: loads fall back to an empty
// history on any failure and saves swallow their errors, so a missing or
// corrupt store never takes the daemon down. The snapshot is written in
// place rather than through an atomic rename, and nothing locks the files
// against a second daemon instance pointed at the same paths; both gaps
// are accepted, not bugs.
package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const snapshotVersion = 1

// snapshot is the on-disk history format: a versioned, ordered list of
// selections, most recent first.
type snapshot struct {
	Version int      `json:"version"`
	Entries []string `json:"entries"`
}

// LoadHistory reads the history snapshot at path. Missing or unreadable
// files, malformed JSON, and unknown snapshot versions all yield an empty
// history; none of them is an error worth surfacing.
func LoadHistory(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("history load skipped", "path", path, "err", err)
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Debug("history snapshot unreadable", "path", path, "err", err)
		return nil
	}
	if snap.Version != snapshotVersion {
		slog.Debug("history snapshot version unsupported", "path", path, "version", snap.Version)
		return nil
	}
	return snap.Entries
}

// SaveHistory overwrites path with the full ordered history. Failures are
// logged at debug level and otherwise ignored.
func SaveHistory(path string, h []string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		slog.Debug("history save failed", "path", path, "err", err)
		return
	}

	data, err := json.Marshal(snapshot{Version: snapshotVersion, Entries: h})
	if err != nil {
		slog.Debug("history snapshot encode failed", "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Debug("history save failed", "path", path, "err", err)
	}
}

// LoadStatic reads path as newline-delimited text, one pinned selection per
// line, exactly as the user wrote it: no trimming, no dedup. The daemon
// never writes this file. Missing or empty files yield nothing.
func LoadStatic(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("static history load skipped", "path", path, "err", err)
		return nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
