//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/morph/internal/document"
	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/shape"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	morphEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	morphEngine.Set("loadDocument", js.FuncOf(loadDocument))
	morphEngine.Set("updateDocument", js.FuncOf(updateDocument))
	morphEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	morphEngine.Set("setCanvasSize", js.FuncOf(setCanvasSize))
	morphEngine.Set("setTriangulator", js.FuncOf(setTriangulator))
	morphEngine.Set("seek", js.FuncOf(seek))
	morphEngine.Set("play", js.FuncOf(play))
	morphEngine.Set("pause", js.FuncOf(pause))
	morphEngine.Set("togglePlay", js.FuncOf(togglePlay))
	morphEngine.Set("transformInto", js.FuncOf(transformInto))
	morphEngine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← backend) ---
	morphEngine.Set("render", js.FuncOf(render))
	morphEngine.Set("hitTest", js.FuncOf(hitTest))
	morphEngine.Set("getBounds", js.FuncOf(getBounds))
	morphEngine.Set("getScene", js.FuncOf(getScene))
	morphEngine.Set("getPlaybackState", js.FuncOf(getPlaybackState))
	morphEngine.Set("getDocument", js.FuncOf(getDocument))
	morphEngine.Set("getDuration", js.FuncOf(getDuration))
	morphEngine.Set("isPlaying", js.FuncOf(isPlaying))

	// Register on global scope
	js.Global().Set("morphEngine", morphEngine)

	// Signal that WASM is ready
	js.Global().Set("morphWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func updateDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.UpdateDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	eng.LoadSampleDocument()
	return result(nil)
}

func setCanvasSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetCanvasSize(args[0].Float(), args[1].Float())
	return nil
}

// setTriangulator installs a JS triangulation function such as earcut,
// called as fn(flatCoords, holeStarts) and returning triangle indices.
// Passing nothing removes it.
func setTriangulator(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		eng.SetTriangulator(nil)
		return nil
	}

	fn := args[0]
	eng.SetTriangulator(shape.TriangulatorFunc(func(flat []float64, holeStarts []int) []int {
		coords := make([]interface{}, len(flat))
		for i, v := range flat {
			coords[i] = v
		}
		holes := make([]interface{}, len(holeStarts))
		for i, v := range holeStarts {
			holes[i] = v
		}

		out := fn.Invoke(js.ValueOf(coords), js.ValueOf(holes))
		indices := make([]int, out.Length())
		for i := range indices {
			indices[i] = out.Index(i).Int()
		}
		return indices
	}))
	return nil
}

func seek(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.Seek(args[0].Float())
	return nil
}

func play(this js.Value, args []js.Value) interface{} {
	eng.Play()
	return nil
}

func pause(this js.Value, args []js.Value) interface{} {
	eng.Pause()
	return nil
}

func togglePlay(this js.Value, args []js.Value) interface{} {
	eng.TogglePlay()
	return nil
}

// transformInto(shapeID, duration, easing?, async?) appends a morph from the
// end of the timeline into a document shape.
func transformInto(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing shape ID or duration"})
	}

	step := document.Step{
		To:       args[0].String(),
		Duration: args[1].Float(),
	}
	if len(args) > 2 && args[2].Type() == js.TypeString {
		step.Easing = args[2].String()
	}
	if len(args) > 3 && args[3].Type() == js.TypeBoolean {
		step.Async = args[3].Bool()
	}
	return result(eng.TransformInto(step))
}

func tick(this js.Value, args []js.Value) interface{} {
	var delta float64
	if len(args) > 0 {
		delta = args[0].Float()
	}
	return js.ValueOf(eng.Tick(delta))
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetBounds())
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetScene())
}

func getPlaybackState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetPlaybackState())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getDuration(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Duration())
}

func isPlaying(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.IsPlaying())
}
