package wire

import (
	"encoding/json"
	"fmt"
)

// Type identifies the kind of message.
type Type string

const (
	// TypeHistory requests the daemon's live history; the response carries
	// the entries, most recent first.
	TypeHistory Type = "HISTORY"
	// TypeClear asks the daemon to drop its history and rewrite the store.
	TypeClear Type = "CLEAR"
	// TypeOK acknowledges a request with no payload.
	TypeOK Type = "OK"
	// TypeError reports a request the daemon could not serve.
	TypeError Type = "ERROR"
)

// Message is the envelope exchanged between the daemon and the CLI
// sub-commands, one JSON object per line.
type Message struct {
	Type    Type     `json:"type"`
	Entries []string `json:"entries,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}
