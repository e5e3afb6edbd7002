package playback

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/morph/internal/auth"
	"github.com/inamate/morph/internal/typeid"
)

// ServeWS upgrades the request and joins the client to the scene's room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["sceneId"]

	if _, err := h.source.Document(r.Context(), sceneID); err != nil {
		http.Error(w, "scene not found", http.StatusNotFound)
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		userID = "anon-" + uuid.New().String()[:8]
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, conn, userID, sceneID, typeid.NewSessionID())
	h.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns turns allowed origins into the host patterns the websocket
// library matches against.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
