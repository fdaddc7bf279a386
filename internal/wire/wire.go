// Package wire frames the IPC protocol between the daemon and the CLI
// sub-commands: newline-delimited JSON over a local socket, exactly one
// message per line.
//
//	<json>\n
//
// The socket is local and owner-restricted by the OS, so there is no
// authentication or encryption layer.
package wire

import (
	"bufio"
	"fmt"
	"net"
	"time"
)

const (
	// MaxMessageSize is the largest message we will read (4 MiB). History
	// entries are text selections; a line beyond this is garbage.
	MaxMessageSize = 4 * 1024 * 1024

	ioDeadline = 5 * time.Second
)

// Conn wraps a net.Conn with buffered newline-delimited JSON framing.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// WriteMsg serialises msg to JSON and writes it followed by a newline.
func (c *Conn) WriteMsg(msg *Message) error {
	raw, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(ioDeadline))
	_, err = c.conn.Write(append(raw, '\n'))
	_ = c.conn.SetWriteDeadline(time.Time{})
	return err
}

// ReadMsg reads one newline-terminated line and deserialises it into a
// Message.
func (c *Conn) ReadMsg() (*Message, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(ioDeadline))
	line, err := c.br.ReadBytes('\n')
	_ = c.conn.SetReadDeadline(time.Time{})
	if err != nil {
		return nil, err
	}
	if len(line) > MaxMessageSize {
		return nil, fmt.Errorf("message too large (%d bytes)", len(line))
	}

	return Decode(line[:len(line)-1])
}
