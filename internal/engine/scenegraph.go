package engine

import (
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

// SceneGraph is the evaluated, render-ready state of the timeline at a point
// in time. Nodes are in painter's order.
type SceneGraph struct {
	Nodes      []*SceneNode
	NodesById  map[string]*SceneNode
	View       geom.Matrix2D
	Background string
}

// SceneNode is one rendered shape. Geometry is in canvas space with rotation
// already applied.
type SceneNode struct {
	ID string

	// Source is the frame shape in scene space.
	Source *shape.Shape
	// Canvas is Source rotated and projected through the view.
	Canvas *shape.Shape

	Path    []PathCommand
	Fill    string
	Opacity float64

	// Triangle buffers, set only when the engine has a triangulator.
	Vertices []float64
	Indices  []int

	Bounds geom.Rect
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []interface{}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesById: make(map[string]*SceneNode),
		View:      geom.Identity(),
	}
}

// Bounds returns the union of every node's bounds.
func (sg *SceneGraph) Bounds() geom.Rect {
	var r geom.Rect
	for _, n := range sg.Nodes {
		r = r.Union(n.Bounds)
	}
	return r
}
