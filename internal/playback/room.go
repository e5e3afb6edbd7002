package playback

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/inamate/morph/internal/engine"
)

// typeJoin is queued by the hub when a client enters a room.
const typeJoin = "join"

type control struct {
	client *Client
	msg    *Message
}

// Room plays one scene for every client watching it. The engine is owned
// by the run goroutine; clients reach it through controls.
type Room struct {
	sceneID  string
	clients  map[string]*Client // clientID -> client, guarded by Hub.mu
	engine   *engine.Engine
	interval time.Duration
	last     time.Time

	controls chan control
	done     chan struct{}
}

func newRoom(sceneID string, e *engine.Engine, interval time.Duration) *Room {
	return &Room{
		sceneID:  sceneID,
		clients:  make(map[string]*Client),
		engine:   e,
		interval: interval,
		controls: make(chan control, 64),
		done:     make(chan struct{}),
	}
}

func (r *Room) submit(c control) {
	select {
	case r.controls <- c:
	case <-r.done:
	}
}

func (r *Room) close() {
	close(r.done)
}

func (r *Room) run(h *Hub) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return

		case c := <-r.controls:
			r.apply(h, c)

		case now := <-ticker.C:
			if !r.engine.IsPlaying() {
				continue
			}
			delta := now.Sub(r.last)
			r.last = now

			r.engine.Advance(float64(delta) / float64(time.Millisecond))
			h.broadcastToRoom(r.sceneID, r.frameMessage(), "")
			if !r.engine.IsPlaying() {
				h.broadcastToRoom(r.sceneID, r.stateMessage(), "")
			}
		}
	}
}

func (r *Room) apply(h *Hub, c control) {
	reply := func(msg *Message) { h.sendTo(r.sceneID, c.client.ClientID, msg) }

	switch c.msg.Type {
	case typeJoin:
		reply(newMessage(TypeWelcome, WelcomePayload{
			ClientID: c.client.ClientID,
			Scene:    r.engine.Document().Scene,
			State:    r.engine.State(),
		}))
		reply(r.frameMessage())
		return

	case TypePlay:
		r.engine.Play()
		r.last = time.Now()

	case TypePause:
		r.engine.Pause()

	case TypeToggle:
		r.engine.TogglePlay()
		r.last = time.Now()

	case TypeSeek:
		var p SeekPayload
		if err := json.Unmarshal(c.msg.Payload, &p); err != nil {
			reply(errorMessage("invalid seek payload"))
			return
		}
		r.engine.Seek(p.Time)

	case TypeTransform:
		var p TransformPayload
		if err := json.Unmarshal(c.msg.Payload, &p); err != nil {
			reply(errorMessage("invalid transform payload"))
			return
		}
		if err := r.engine.TransformInto(p.Step); err != nil {
			slog.Debug("transform rejected", "error", err, "scene", r.sceneID)
			reply(errorMessage(err.Error()))
			return
		}
		slog.Info("timeline extended", "scene", r.sceneID, "to", p.Step.To, "user", c.client.UserID)

	default:
		slog.Warn("unknown message type", "type", c.msg.Type, "user", c.client.UserID)
		reply(errorMessage("unknown message type"))
		return
	}

	h.broadcastToRoom(r.sceneID, r.frameMessage(), "")
	h.broadcastToRoom(r.sceneID, r.stateMessage(), "")
}

func (r *Room) frameMessage() *Message {
	cmds := r.engine.Commands()
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}
	return newMessage(TypeFrame, FramePayload{Time: r.engine.Time(), Commands: cmds})
}

func (r *Room) stateMessage() *Message {
	return newMessage(TypeState, r.engine.State())
}
