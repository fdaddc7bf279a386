package ipc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketPathOverride(t *testing.T) {
	t.Setenv("CLIPSIFT_SOCKET", "/tmp/custom.sock")
	assert.Equal(t, "/tmp/custom.sock", SocketPath())
}

func TestSocketPathRuntimeDir(t *testing.T) {
	t.Setenv("CLIPSIFT_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/clipsift.sock", SocketPath())
}

func TestListenAndProbe(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "clipsift.sock")
	t.Setenv("CLIPSIFT_SOCKET", sock)

	assert.False(t, IsRunning())

	ln, err := Listen()
	require.NoError(t, err)
	defer ln.Close()

	assert.True(t, IsRunning())

	conn, err := Dial()
	require.NoError(t, err)
	_ = conn.Close()
}

func TestListenRemovesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "clipsift.sock")
	t.Setenv("CLIPSIFT_SOCKET", sock)

	ln, err := Listen()
	require.NoError(t, err)
	ln.Close()

	// A second Listen must succeed even though the socket file may linger.
	ln, err = Listen()
	require.NoError(t, err)
	ln.Close()
}
