package engine

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

const squareDoc = `{
	"scene": {"id": "scene_test", "width": 100, "height": 100, "background": "#000000"},
	"shapes": {
		"small": {"id": "small", "kind": "rect", "style": {"fill": "#ff0000"}, "data": {"x": 10, "y": 10, "width": 20, "height": 20}},
		"big": {"id": "big", "kind": "rect", "style": {"fill": "#0000ff"}, "data": {"x": 0, "y": 0, "width": 100, "height": 100}},
		"donut": {"id": "donut", "kind": "ring", "data": {"cx": 50, "cy": 50, "outer": 40, "inner": 20}}
	},
	"steps": [
		{"from": "small", "to": "big", "duration": 1000, "easing": "linear"}
	]
}`

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func loaded(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.LoadDocument(squareDoc); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	return e
}

func TestLoadDocument(t *testing.T) {
	e := loaded(t)
	if e.Duration() != 1000 {
		t.Errorf("got duration %v, want 1000", e.Duration())
	}
	diff(t, PlaybackState{Duration: 1000}, e.State())

	if err := NewEngine().LoadDocument(`{"steps": []}`); !errors.Is(err, document.ErrEmptyTimeline) {
		t.Errorf("got error %v, want %v", err, document.ErrEmptyTimeline)
	}
	if err := NewEngine().LoadDocument(`{`); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestPlayback(t *testing.T) {
	e := loaded(t)

	e.Tick(100)
	if e.Time() != 0 {
		t.Errorf("paused engine advanced to %v", e.Time())
	}

	e.Play()
	e.Tick(250)
	e.Tick(250)
	if e.Time() != 500 || !e.IsPlaying() {
		t.Errorf("got time %v playing %v, want 500 playing", e.Time(), e.IsPlaying())
	}

	e.Tick(10000)
	if e.Time() != 1000 || e.IsPlaying() {
		t.Errorf("got time %v playing %v, want stopped at 1000", e.Time(), e.IsPlaying())
	}
	if !e.State().Done {
		t.Error("state not done at the end")
	}

	e.TogglePlay()
	if e.Time() != 0 || !e.IsPlaying() {
		t.Error("playing a finished timeline did not restart it")
	}
	e.TogglePlay()
	if e.IsPlaying() {
		t.Error("TogglePlay did not pause")
	}
}

func TestPlaybackLoops(t *testing.T) {
	e := NewEngine()
	doc, err := document.Parse([]byte(squareDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	doc.Scene.Loop = true
	if err := e.Load(doc); err != nil {
		t.Fatalf("Load: %v", err)
	}

	e.Play()
	e.Tick(2300)
	if e.Time() != 300 || !e.IsPlaying() {
		t.Errorf("got time %v playing %v, want 300 playing", e.Time(), e.IsPlaying())
	}
}

func TestSeekClamps(t *testing.T) {
	e := loaded(t)
	for _, tt := range []struct{ in, want float64 }{{-5, 0}, {400, 400}, {5000, 1000}} {
		e.Seek(tt.in)
		if e.Time() != tt.want {
			t.Errorf("Seek(%v) left time at %v, want %v", tt.in, e.Time(), tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	e := loaded(t)
	e.SetCanvasSize(200, 200)

	var cmds []DrawCommand
	if err := json.Unmarshal([]byte(e.Render()), &cmds); err != nil {
		t.Fatalf("Render returned invalid JSON: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want clear and one path", len(cmds))
	}
	if cmds[0].Op != "clear" || cmds[0].Fill != "#000000" {
		t.Errorf("got first command %+v", cmds[0])
	}

	path := cmds[1]
	if path.Op != "path" || path.FillRule != "evenodd" || path.Fill != "#ff0000" || path.Opacity != 1 {
		t.Errorf("got path command %+v", path)
	}
	// Scene (10, 10) lands at canvas (20, 180) under a 2x Y-flipped view.
	diff(t, []interface{}{"M", 20.0, 180.0}, []interface{}(path.Path[0]))
	if last := path.Path[len(path.Path)-1]; len(last) != 1 || last[0] != "Z" {
		t.Errorf("path does not close: %v", last)
	}
}

func TestRenderHoles(t *testing.T) {
	e := loaded(t)
	if err := e.TransformInto(document.Step{To: "donut", Duration: 100}); err != nil {
		t.Fatalf("TransformInto: %v", err)
	}
	e.Seek(e.Duration())

	sg := e.SceneGraph()
	if len(sg.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(sg.Nodes))
	}
	subpaths := 0
	for _, c := range sg.Nodes[0].Path {
		if c[0] == "M" {
			subpaths++
		}
	}
	if subpaths != 2 {
		t.Errorf("got %d subpaths, want fill and hole", subpaths)
	}

	if got := e.HitTest(50, 50); got != "" {
		t.Errorf("hit inside the hole: %q", got)
	}
	if got := e.HitTest(50, 80); got != "shape-0" {
		t.Errorf("got hit %q on the ring, want shape-0", got)
	}
}

func TestHitTest(t *testing.T) {
	e := loaded(t)
	e.SetCanvasSize(200, 200)

	// small square covers canvas x 20..60, y 140..180
	if got := e.HitTest(40, 160); got != "shape-0" {
		t.Errorf("got %q, want shape-0", got)
	}
	if got := e.HitTest(100, 100); got != "" {
		t.Errorf("got %q outside the square", got)
	}

	var bounds geom.Rect
	if err := json.Unmarshal([]byte(e.GetBounds()), &bounds); err != nil {
		t.Fatalf("GetBounds: %v", err)
	}
	diff(t, geom.Rect{X: 20, Y: 140, Width: 40, Height: 40}, bounds, cmpopts.EquateApprox(0, 1e-9))
}

func TestRotationAppliedAtRender(t *testing.T) {
	s := shape.Rect(0, 0, 2, 2).WithRotation(geom.Pt3(0, 0, 90))
	sg := BuildSceneGraph(shape.Of(s), geom.Identity(), nil)

	// (0, 0) turns a quarter around (1, 1) to (2, 0).
	diff(t, geom.Pt(2, 0), sg.Nodes[0].Canvas.Filled[0], cmpopts.EquateApprox(0, 1e-9))
	diff(t, geom.Pt(0, 0), s.Filled[0])
}

type countingTriangulator struct {
	calls atomic.Int64
}

func (c *countingTriangulator) Triangulate(flat []float64, holeStarts []int) []int {
	c.calls.Add(1)
	n := len(flat) / 2
	if len(holeStarts) > 0 {
		n = holeStarts[0]
	}
	var out []int
	for i := 1; i+1 < n; i++ {
		out = append(out, 0, i, i+1)
	}
	return out
}

func TestTriangleBuffers(t *testing.T) {
	e := loaded(t)
	tri := &countingTriangulator{}
	e.SetTriangulator(tri)

	cmds := e.Commands()
	path := cmds[len(cmds)-1]
	// The start frame is the square resampled to 100 points.
	if len(path.Indices) != 294 || len(path.Vertices) != 200 {
		t.Errorf("got %d indices over %d coordinates", len(path.Indices), len(path.Vertices))
	}

	e.Seek(0)
	e.SetCanvasSize(300, 300)
	e.Commands()
	if n := tri.calls.Load(); n != 1 {
		t.Errorf("triangulator ran %d times for one geometry", n)
	}
}

func TestTransformInto(t *testing.T) {
	e := loaded(t)
	if err := e.TransformInto(document.Step{To: "small", Duration: 500}); err != nil {
		t.Fatalf("TransformInto: %v", err)
	}
	if e.Duration() != 1500 {
		t.Errorf("got duration %v, want 1500", e.Duration())
	}

	if err := e.TransformInto(document.Step{To: "nope", Duration: 1}); !errors.Is(err, document.ErrUnknownShape) {
		t.Errorf("got error %v, want %v", err, document.ErrUnknownShape)
	}
	if err := e.TransformInto(document.Step{To: "small", Easing: "wobble"}); !errors.Is(err, document.ErrUnknownEasing) {
		t.Errorf("got error %v, want %v", err, document.ErrUnknownEasing)
	}
	if err := NewEngine().TransformInto(document.Step{To: "small"}); !errors.Is(err, document.ErrEmptyTimeline) {
		t.Errorf("got error %v on an empty engine", err)
	}
}

func TestWarmAndSample(t *testing.T) {
	e := NewEngine()
	e.LoadSampleDocument()
	if e.Duration() <= 0 {
		t.Fatal("sample document has no duration")
	}
	if err := e.Warm(t.Context()); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	e.Seek(e.Duration() / 2)
	if len(e.Commands()) < 2 {
		t.Error("sample renders nothing at its midpoint")
	}
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine()
	if got := e.Render(); got != "[]" {
		t.Errorf("got %s, want []", got)
	}
	if got := e.HitTest(1, 1); got != "" {
		t.Errorf("got hit %q", got)
	}
	if e.Advance(10) {
		t.Error("empty engine advanced")
	}
}
