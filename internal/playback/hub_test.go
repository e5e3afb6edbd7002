package playback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/typeid"
)

const testDoc = `{
	"scene": {"id": "scene_a", "name": "test", "width": 100, "height": 100, "background": "#101010"},
	"shapes": {
		"a": {"id": "a", "kind": "rect", "data": {"x": 0, "y": 0, "width": 10, "height": 10}},
		"b": {"id": "b", "kind": "ellipse", "data": {"cx": 50, "cy": 50, "rx": 20, "ry": 20}}
	},
	"steps": [
		{"from": "a", "to": "b", "duration": 200, "easing": "linear"}
	]
}`

type docs map[string]*document.InDocument

func (d docs) Document(ctx context.Context, sceneID string) (*document.InDocument, error) {
	doc, ok := d[sceneID]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	doc, err := document.Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	hub := NewHub(docs{"scene_a": doc}, Options{FPS: 100})
	go hub.Run()

	r := mux.NewRouter()
	r.HandleFunc("/ws/scenes/{sceneId}", hub.ServeWS)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, sceneID string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scenes/" + sceneID
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		msg.Payload = data
	}
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

// until reads messages until match accepts one.
func until(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		var msg Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("Read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func ofType(typ string) func(Message) bool {
	return func(m Message) bool { return m.Type == typ }
}

func state(t *testing.T, msg Message) engine.PlaybackState {
	t.Helper()
	var s engine.PlaybackState
	if err := json.Unmarshal(msg.Payload, &s); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return s
}

func TestWelcome(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "scene_a")

	msg := until(t, conn, ofType(TypeWelcome))
	var welcome WelcomePayload
	if err := json.Unmarshal(msg.Payload, &welcome); err != nil {
		t.Fatal(err)
	}
	if err := typeid.Validate(welcome.ClientID, typeid.PrefixSession); err != nil {
		t.Errorf("welcome client ID: %v", err)
	}
	if msg.SceneID != "scene_a" {
		t.Errorf("got scene %q, want scene_a", msg.SceneID)
	}
	if d := cmp.Diff(engine.PlaybackState{Duration: 200}, welcome.State); d != "" {
		t.Error(d)
	}

	frame := until(t, conn, ofType(TypeFrame))
	var fp FramePayload
	if err := json.Unmarshal(frame.Payload, &fp); err != nil {
		t.Fatal(err)
	}
	if len(fp.Commands) != 2 || fp.Commands[0].Op != "clear" {
		t.Errorf("got %d commands, want a clear and one path", len(fp.Commands))
	}

	if hub.Rooms() != 1 {
		t.Errorf("got %d rooms, want 1", hub.Rooms())
	}
}

func TestSeekBroadcasts(t *testing.T) {
	_, srv := newTestServer(t)
	a := dial(t, srv, "scene_a")
	until(t, a, ofType(TypeFrame))
	b := dial(t, srv, "scene_a")
	until(t, b, ofType(TypeFrame))

	send(t, a, TypeSeek, SeekPayload{Time: 50})

	for _, conn := range []*websocket.Conn{a, b} {
		got := state(t, until(t, conn, ofType(TypeState)))
		if d := cmp.Diff(engine.PlaybackState{Time: 50, Duration: 200}, got); d != "" {
			t.Error(d)
		}
	}
}

func TestPlayToEnd(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "scene_a")
	until(t, conn, ofType(TypeFrame))

	send(t, conn, TypePlay, nil)
	if s := state(t, until(t, conn, ofType(TypeState))); !s.Playing {
		t.Fatalf("got %+v, want playing", s)
	}

	end := until(t, conn, func(m Message) bool {
		return m.Type == TypeState && !state(t, m).Playing
	})
	if d := cmp.Diff(engine.PlaybackState{Time: 200, Duration: 200, Done: true}, state(t, end)); d != "" {
		t.Error(d)
	}
}

func TestTransform(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "scene_a")
	until(t, conn, ofType(TypeFrame))

	send(t, conn, TypeTransform, TransformPayload{Step: document.Step{To: "a", Duration: 300}})
	if s := state(t, until(t, conn, ofType(TypeState))); s.Duration != 500 {
		t.Errorf("got duration %v, want 500", s.Duration)
	}

	send(t, conn, TypeTransform, TransformPayload{Step: document.Step{To: "missing", Duration: 300}})
	until(t, conn, ofType(TypeError))
}

func TestBadControls(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "scene_a")
	until(t, conn, ofType(TypeFrame))

	send(t, conn, TypeSeek, "not a payload")
	until(t, conn, ofType(TypeError))

	send(t, conn, "rewind", nil)
	until(t, conn, ofType(TypeError))
}

func TestUnknownScene(t *testing.T) {
	_, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scenes/nope"
	_, resp, err := websocket.Dial(ctx, url, nil)
	if err == nil {
		t.Fatal("dial to unknown scene succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("got response %v, want 404", resp)
	}
}

func TestRoomClosesWhenEmpty(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "scene_a")
	until(t, conn, ofType(TypeFrame))

	conn.Close(websocket.StatusNormalClosure, "")

	deadline := time.Now().Add(5 * time.Second)
	for hub.Rooms() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("room still open after last client left")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestOriginPatterns(t *testing.T) {
	got := originPatterns([]string{"http://localhost:5173", "https://example.com", "*.example.org"})
	want := []string{"localhost:5173", "example.com", "*.example.org"}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}
