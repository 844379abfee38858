package server

import (
	"encoding/json"
	"fmt"

	"github.com/jromang/picochess/internal/errors"
)

// Event names on the websocket.
const (
	EventFen       = "Fen"
	EventGame      = "Game"
	EventHeader    = "Header"
	EventMessage   = "Message"
	EventClock     = "Clock"
	EventStatus    = "Status"
	EventLight     = "Light"
	EventClear     = "Clear"
	EventTitle     = "Title"
	EventBroadcast = "Broadcast"
)

// relayed events are passed to the clients without touching the game.
var relayed = map[string]bool{
	EventMessage:   true,
	EventClock:     true,
	EventStatus:    true,
	EventLight:     true,
	EventClear:     true,
	EventTitle:     true,
	EventBroadcast: true,
}

// Event is a websocket message. Only the fields of the named event are set.
type Event struct {
	Event   string            `json:"event"`
	FEN     string            `json:"fen,omitempty"`
	PGN     string            `json:"pgn,omitempty"`
	Move    string            `json:"move,omitempty"`
	Play    string            `json:"play,omitempty"`
	Msg     string            `json:"msg,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`

	// Set by the server on game events it sends out.
	Moves  string `json:"moves,omitempty"`
	Status string `json:"status,omitempty"`
}

func decodeEvent(raw []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	if ev.Event == "" {
		return ev, fmt.Errorf("message without event name: %w", errors.ErrUnknownEvent)
	}
	return ev, nil
}

// withFields adds fields to a JSON object, keeping everything else the
// sender put there.
func withFields(raw []byte, fields map[string]string) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	for k, v := range fields {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = enc
	}
	return json.Marshal(obj)
}
