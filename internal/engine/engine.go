package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/shape"
	"github.com/inamate/morph/internal/timeline"
)

// Engine plays a document's timeline and turns frames into draw commands.
// It is driven by an external refresh loop calling Tick with the elapsed
// time. An Engine is not safe for concurrent use.
type Engine struct {
	// Document state
	doc      *document.InDocument
	timeline *timeline.Timeline
	base     []morph.Option

	// Retained scene graph
	sceneGraph *SceneGraph
	tri        shape.Triangulator

	// Playback state, in milliseconds
	time    float64
	playing bool
	loop    bool

	// Canvas size in pixels and the scene-to-canvas transform
	width, height float64
	view          geom.Matrix2D

	// Dirty flag - scene graph needs rebuild
	dirty bool
}

// PlaybackState is the JSON shape of GetPlaybackState.
type PlaybackState struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	Playing  bool    `json:"playing"`
	Loop     bool    `json:"loop"`
	Done     bool    `json:"done"`
}

// NewEngine creates a new engine instance. base options apply to every
// morph the engine builds.
func NewEngine(base ...morph.Option) *Engine {
	return &Engine{
		base:       base,
		sceneGraph: NewSceneGraph(),
		view:       geom.Identity(),
		dirty:      true,
	}
}

// SetTriangulator makes Render emit triangle buffers. nil disables them.
func (e *Engine) SetTriangulator(tri shape.Triangulator) {
	e.tri = tri
	e.dirty = true
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	doc, err := document.Parse([]byte(jsonData))
	if err != nil {
		return err
	}
	return e.Load(doc)
}

// Load builds the document's timeline and resets playback.
func (e *Engine) Load(doc *document.InDocument) error {
	tl, err := document.Build(doc, e.base...)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	e.doc = doc
	e.timeline = tl
	e.loop = doc.Scene.Loop
	if e.width <= 0 || e.height <= 0 {
		e.width, e.height = float64(doc.Scene.Width), float64(doc.Scene.Height)
	}
	e.updateView()

	e.time = 0
	e.playing = false
	e.dirty = true
	return nil
}

// UpdateDocument reloads a document from JSON while preserving playback state.
func (e *Engine) UpdateDocument(jsonData string) error {
	doc, err := document.Parse([]byte(jsonData))
	if err != nil {
		return err
	}
	tl, err := document.Build(doc, e.base...)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	e.doc = doc
	e.timeline = tl
	e.loop = doc.Scene.Loop
	e.updateView()

	// Clamp time to the new duration (but don't reset it)
	e.time = min(max(e.time, 0), tl.Duration())
	e.dirty = true
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument() {
	if err := e.Load(document.NewSampleDocument()); err != nil {
		slog.Error("sample document failed to build", "error", err)
	}
}

// SetCanvasSize sets the canvas size the scene is fitted into.
func (e *Engine) SetCanvasSize(width, height float64) {
	e.width, e.height = width, height
	e.updateView()
	e.dirty = true
}

func (e *Engine) updateView() {
	if e.doc == nil {
		e.view = geom.Identity()
		return
	}
	scene := geom.Rect{Width: float64(e.doc.Scene.Width), Height: float64(e.doc.Scene.Height)}
	e.view = geom.Viewport(scene, e.width, e.height)
}

// Seek moves the playhead to t, clamped to the timeline.
func (e *Engine) Seek(t float64) {
	t = min(max(t, 0), e.Duration())
	if e.time != t {
		e.time = t
		e.dirty = true
	}
}

// Play starts playback. Playing a finished, non-looping timeline restarts it.
func (e *Engine) Play() {
	if !e.loop && e.time >= e.Duration() {
		e.Seek(0)
	}
	e.playing = true
}

// Pause stops playback.
func (e *Engine) Pause() {
	e.playing = false
}

// TogglePlay toggles play/pause state.
func (e *Engine) TogglePlay() {
	if e.playing {
		e.Pause()
		return
	}
	e.Play()
}

// Advance moves the playhead by deltaMs while playing. It returns whether
// the playhead moved.
func (e *Engine) Advance(deltaMs float64) bool {
	if !e.playing || deltaMs <= 0 || e.timeline == nil {
		return false
	}

	d := e.Duration()
	t := e.time + deltaMs
	if t >= d {
		if e.loop && d > 0 {
			t = math.Mod(t, d)
		} else {
			t = d
			e.playing = false
		}
	}

	moved := t != e.time
	e.time = t
	e.dirty = e.dirty || moved
	return moved
}

// Tick advances the playhead if playing and returns draw commands.
// This is called once per refresh from the frontend.
func (e *Engine) Tick(deltaMs float64) string {
	e.Advance(deltaMs)
	return e.Render()
}

// TransformInto morphs from the current end of the timeline into the
// document shape step.To and appends the morph.
func (e *Engine) TransformInto(step document.Step) error {
	if e.doc == nil || e.timeline == nil {
		return document.ErrEmptyTimeline
	}
	if step.Duration < 0 {
		return fmt.Errorf("transform into %q: %w: negative duration", step.To, document.ErrInvalidStep)
	}
	target, err := e.doc.Shape(step.To)
	if err != nil {
		return fmt.Errorf("transform into: %w", err)
	}
	ease, ok := morph.Named(step.Easing)
	if !ok {
		return fmt.Errorf("transform into %q: %w %q", step.To, document.ErrUnknownEasing, step.Easing)
	}

	opts := append(append([]morph.Option(nil), e.base...),
		morph.WithDuration(step.Duration),
		morph.WithEase(ease),
		morph.WithBackwards(step.Backwards),
	)
	e.timeline.TransformInto(target, step.Async, opts...)
	e.dirty = true
	return nil
}

// Warm pre-computes every segment's frames.
func (e *Engine) Warm(ctx context.Context) error {
	if e.timeline == nil {
		return nil
	}
	return e.timeline.Warm(ctx)
}

// --- Queries (frontend ← backend) ---

// Frame returns the timeline value at the playhead.
func (e *Engine) Frame() shape.Like {
	if e.timeline == nil {
		return shape.Like{}
	}
	return e.timeline.Frame(e.time)
}

// SceneGraph returns the scene graph at the playhead, rebuilding it if needed.
func (e *Engine) SceneGraph() *SceneGraph {
	if e.timeline == nil {
		return NewSceneGraph()
	}
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.Frame(), e.view, e.tri)
		e.sceneGraph.Background = e.doc.Scene.Background
		e.dirty = false
	}
	return e.sceneGraph
}

// Commands compiles the current scene graph.
func (e *Engine) Commands() []DrawCommand {
	if e.timeline == nil {
		return nil
	}
	return CompileDrawCommands(e.SceneGraph())
}

// Render evaluates the scene graph and returns draw commands as JSON.
func (e *Engine) Render() string {
	result, err := DrawCommandsToJSON(e.Commands())
	if err != nil {
		slog.Error("failed to encode draw commands", "error", err)
	}
	return result
}

// HitTest performs a hit test at the given canvas coordinates.
// Returns the node ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.SceneGraph(), x, y)
}

// GetBounds returns the canvas-space bounds of the current frame as JSON.
func (e *Engine) GetBounds() string {
	return RectToJSON(e.SceneGraph().Bounds())
}

// GetScene returns the current scene metadata as JSON.
func (e *Engine) GetScene() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc.Scene)
	return string(data)
}

// State returns the playback state.
func (e *Engine) State() PlaybackState {
	return PlaybackState{
		Time:     e.time,
		Duration: e.Duration(),
		Playing:  e.playing,
		Loop:     e.loop,
		Done:     e.timeline != nil && e.timeline.Done(e.time),
	}
}

// GetPlaybackState returns the current playback state as JSON.
func (e *Engine) GetPlaybackState() string {
	data, _ := json.Marshal(e.State())
	return string(data)
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// Document returns the loaded document.
func (e *Engine) Document() *document.InDocument {
	return e.doc
}

// Duration returns the timeline length in milliseconds.
func (e *Engine) Duration() float64 {
	if e.timeline == nil {
		return 0
	}
	return e.timeline.Duration()
}

// Time returns the playhead position.
func (e *Engine) Time() float64 {
	return e.time
}

// IsPlaying returns whether playback is active.
func (e *Engine) IsPlaying() bool {
	return e.playing
}
