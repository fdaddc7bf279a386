// Package ipc locates the local Unix socket a running daemon serves
// history requests on. The print and clear sub-commands probe for it and
// fall back to the on-disk store when no daemon answers.
package ipc

import (
	"net"
	"os"
	"path/filepath"
	"time"
)

const dialTimeout = time.Second

// SocketPath returns the path for the IPC socket: $CLIPSIFT_SOCKET when
// set, otherwise clipsift.sock under $XDG_RUNTIME_DIR, falling back to the
// temp dir.
func SocketPath() string {
	if s := os.Getenv("CLIPSIFT_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipsift.sock")
	}
	return filepath.Join(os.TempDir(), "clipsift.sock")
}

// IsRunning reports whether a daemon appears to be listening on the IPC
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.DialTimeout("unix", SocketPath(), dialTimeout)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a net.Listener on the IPC socket path, removing any stale
// socket left behind by a crashed daemon first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to the IPC socket of a running daemon.
func Dial() (net.Conn, error) {
	return net.DialTimeout("unix", SocketPath(), dialTimeout)
}
