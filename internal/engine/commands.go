package engine

import (
	"encoding/json"

	"github.com/inamate/morph/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op       string        `json:"op"`                 // Operation: "clear", "path"
	ObjectID string        `json:"objectId,omitempty"` // For hit correlation
	Path     []PathCommand `json:"path,omitempty"`     // Path data for "path" ops
	Fill     string        `json:"fill,omitempty"`     // Fill color
	FillRule string        `json:"fillRule,omitempty"` // Always "evenodd" for paths
	Opacity  float64       `json:"opacity"`            // Global alpha
	Vertices []float64     `json:"vertices,omitempty"` // Canvas-space x, y pairs for WebGL
	Indices  []int         `json:"indices,omitempty"`  // Triangle indices into Vertices
}

// CompileDrawCommands generates a draw command buffer from a scene graph.
// Commands are in painter's order (back to front).
func CompileDrawCommands(sg *SceneGraph) []DrawCommand {
	if sg == nil {
		return nil
	}

	var commands []DrawCommand
	if sg.Background != "" {
		commands = append(commands, DrawCommand{Op: "clear", Fill: sg.Background, Opacity: 1})
	}
	for _, node := range sg.Nodes {
		if len(node.Path) == 0 {
			continue
		}
		commands = append(commands, DrawCommand{
			Op:       "path",
			ObjectID: node.ID,
			Path:     node.Path,
			Fill:     node.Fill,
			FillRule: "evenodd",
			Opacity:  node.Opacity,
			Vertices: node.Vertices,
			Indices:  node.Indices,
		})
	}
	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTestResult contains information about a hit test.
type HitTestResult struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// HitTest returns the ID of the topmost node covering canvas point (x, y),
// or empty string. Holes are not hits; islands are.
func HitTest(sg *SceneGraph, x, y float64) string {
	if sg == nil {
		return ""
	}

	pt := geom.Pt(x, y)
	for i := len(sg.Nodes) - 1; i >= 0; i-- {
		node := sg.Nodes[i]
		if !node.Bounds.Contains(x, y) {
			continue
		}
		if node.Canvas.Contains(pt) {
			return node.ID
		}
	}
	return ""
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
