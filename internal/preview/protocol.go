package preview

import (
	"encoding/json"

	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/geom"
)

type Message struct {
	Type     string          `json:"type"`
	PathID   string          `json:"pathId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Path editing
	TypePathEdit     = "path.edit"
	TypePathRendered = "path.rendered"
	TypePathError    = "path.error"
)

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
}

// EditPayload is the payload of path.edit messages.
type EditPayload struct {
	D string `json:"d"`
}

// RenderedPayload is broadcast to the room after an edit parses.
type RenderedPayload struct {
	D      string         `json:"d"`
	Ops    []canvas.Op    `json:"ops"`
	Bounds geom.Rect      `json:"bounds"`
	Counts map[string]int `json:"counts"`
}

// PathErrorPayload is sent back to the editor when an edit fails.
type PathErrorPayload struct {
	Message   string `json:"message"`
	Remaining string `json:"remaining"`
	Offset    int    `json:"offset"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PresencePayload struct {
	Cursor *CursorPos `json:"cursor,omitempty"`
	// Command is the index of the path command being edited.
	Command     *int   `json:"command,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

func newMessage(typ string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}
