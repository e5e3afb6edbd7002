package playback

import (
	"encoding/json"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
)

type Message struct {
	Type     string          `json:"type"`
	SceneID  string          `json:"sceneId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client controls
	TypePlay      = "play"
	TypePause     = "pause"
	TypeToggle    = "toggle"
	TypeSeek      = "seek"
	TypeTransform = "transform"

	// Server updates
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeState   = "state"
	TypeError   = "error"
)

type SeekPayload struct {
	Time float64 `json:"time"`
}

// TransformPayload appends a morph from the end of the room's timeline
// into the document shape Step.To.
type TransformPayload struct {
	Step document.Step `json:"step"`
}

type WelcomePayload struct {
	ClientID string               `json:"clientId"`
	Scene    document.Scene       `json:"scene"`
	State    engine.PlaybackState `json:"state"`
}

type FramePayload struct {
	Time     float64              `json:"time"`
	Commands []engine.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}

func errorMessage(msg string) *Message {
	return newMessage(TypeError, ErrorPayload{Message: msg})
}
