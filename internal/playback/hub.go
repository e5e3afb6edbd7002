package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/morph"
)

// SceneSource resolves scene IDs to documents. Returned documents are
// shared and must not be modified.
type SceneSource interface {
	Document(ctx context.Context, sceneID string) (*document.InDocument, error)
}

type Options struct {
	// FPS is the rate at which playing rooms broadcast frames.
	FPS int
	// Origins are the allowed websocket origins, as scheme://host[:port].
	Origins []string
	// Morph options apply to every morph a room builds.
	Morph []morph.Option
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sceneID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once

	source   SceneSource
	interval time.Duration
	origins  []string
	base     []morph.Option
}

func NewHub(source SceneSource, opts Options) *Hub {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		source:     source,
		interval:   time.Second / time.Duration(fps),
		origins:    originPatterns(opts.Origins),
		base:       opts.Morph,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			return
		}
	}
}

// Stop ends Run and closes every room.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)

		h.mu.Lock()
		for id, room := range h.rooms {
			room.close()
			delete(h.rooms, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// Rooms returns the number of open rooms.
func (h *Hub) Rooms() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) addClient(client *Client) {
	h.mu.RLock()
	room, ok := h.rooms[client.SceneID]
	h.mu.RUnlock()

	if !ok {
		var err error
		room, err = h.openRoom(client.SceneID)
		if err != nil {
			slog.Warn("open room failed", "error", err, "scene", client.SceneID)
			client.Send(errorMessage("scene unavailable"))
			close(client.send)
			return
		}
	}

	h.mu.Lock()
	h.rooms[client.SceneID] = room
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	room.submit(control{client: client, msg: &Message{Type: typeJoin}})

	slog.Info("client joined", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) openRoom(sceneID string) (*Room, error) {
	doc, err := h.source.Document(context.Background(), sceneID)
	if err != nil {
		return nil, err
	}

	e := engine.NewEngine(h.base...)
	if err := e.Load(doc); err != nil {
		return nil, err
	}

	room := newRoom(sceneID, e, h.interval)
	go room.run(h)

	slog.Info("room opened", "scene", sceneID, "duration", e.Duration())
	return room, nil
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.SceneID)
		room.close()
	}
	h.mu.Unlock()

	slog.Info("client left", "user", client.UserID, "scene", client.SceneID)
	if empty {
		slog.Info("room closed", "scene", client.SceneID)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	h.mu.RLock()
	room, ok := h.rooms[sender.SceneID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.submit(control{client: sender, msg: msg})
}

// broadcastToRoom sends msg to every client in the room except
// excludeClientID. Sends happen under the read lock so that removeClient
// cannot close a send channel mid-broadcast.
func (h *Hub) broadcastToRoom(sceneID string, msg *Message, excludeClientID string) {
	msg.SceneID = sceneID

	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[sceneID]
	if !ok {
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}

func (h *Hub) sendTo(sceneID, clientID string, msg *Message) {
	msg.SceneID = sceneID

	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[sceneID]
	if !ok {
		return
	}
	if c, ok := room.clients[clientID]; ok {
		c.Send(msg)
	}
}
