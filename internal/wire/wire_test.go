package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc, sc := New(client), New(server)

	sent := &Message{
		Type:    TypeHistory,
		Entries: []string{"plain", "two\nlines", `quotes " and \ slashes`},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- cc.WriteMsg(sent) }()

	got, err := sc.ReadMsg()
	require.NoError(t, err)
	require.NoError(t, <-errCh)

	assert.Equal(t, sent, got)
}

func TestReadMultipleMessages(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	cc, sc := New(client), New(server)

	go func() {
		_ = cc.WriteMsg(&Message{Type: TypeClear})
		_ = cc.WriteMsg(&Message{Type: TypeOK})
	}()

	first, err := sc.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, TypeClear, first.Type)

	second, err := sc.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, TypeOK, second.Type)
}

func TestReadRejectsGarbage(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("not json at all\n"))
	}()

	_, err := New(server).ReadMsg()
	assert.Error(t, err)
}

func TestReadRejectsOversizeLine(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		line := bytes.Repeat([]byte("a"), MaxMessageSize+1)
		_, _ = client.Write(append(line, '\n'))
	}()

	_, err := New(server).ReadMsg()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message too large")
}

func TestErrorMessageCarriesText(t *testing.T) {
	m := &Message{Type: TypeError, Error: "unknown message type"}

	raw, err := m.Encode()
	require.NoError(t, err)

	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}
