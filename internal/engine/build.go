package engine

import (
	"fmt"

	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

// BuildSceneGraph lays out a frame for rendering. Every valid shape of the
// frame becomes a node; rotation is applied around each shape's pivot before
// the view transform. tri may be nil, in which case no triangle buffers are
// produced.
func BuildSceneGraph(frame shape.Like, view geom.Matrix2D, tri shape.Triangulator) *SceneGraph {
	sg := NewSceneGraph()
	sg.View = view

	for i, s := range frame.Shapes() {
		if !s.Valid() {
			continue
		}
		node := buildNode(nodeID(i), s, view, tri)
		sg.Nodes = append(sg.Nodes, node)
		sg.NodesById[node.ID] = node
	}
	return sg
}

func nodeID(i int) string {
	return fmt.Sprintf("shape-%d", i)
}

func buildNode(id string, s *shape.Shape, view geom.Matrix2D, tri shape.Triangulator) *SceneNode {
	pivot := s.Pivot()
	project := func(l geom.Loop) geom.Loop {
		out := make(geom.Loop, len(l))
		for i, p := range l {
			out[i] = view.Apply(geom.Rotate(p, pivot, s.Rotation))
		}
		return out
	}
	projectAll := func(loops []geom.Loop) []geom.Loop {
		if loops == nil {
			return nil
		}
		out := make([]geom.Loop, len(loops))
		for i, l := range loops {
			out[i] = project(l)
		}
		return out
	}

	canvas := &shape.Shape{
		Filled:   project(s.Filled),
		Holes:    projectAll(s.Holes),
		Islands:  projectAll(s.Islands),
		Color:    s.Color,
		Opacity:  s.Opacity,
		Rotation: s.Rotation,
	}

	node := &SceneNode{
		ID:      id,
		Source:  s,
		Canvas:  canvas,
		Fill:    s.Color.Hex(),
		Opacity: s.Opacity,
		Bounds:  canvas.Bounds(),
	}

	node.Path = appendLoopPath(nil, canvas.Filled)
	for _, l := range canvas.Islands {
		node.Path = appendLoopPath(node.Path, l)
	}
	for _, h := range canvas.Holes {
		if h.Degenerate() {
			continue
		}
		node.Path = appendLoopPath(node.Path, h)
	}

	if tri != nil {
		// Triangle indices are computed once per source geometry and stay
		// valid for the projected vertices, which share the same layout.
		_, node.Indices = s.Triangles(tri)
		node.Vertices = canvas.Filled.Flatten(nil)
		for _, h := range canvas.Holes {
			node.Vertices = h.Flatten(node.Vertices)
		}
		for _, l := range canvas.Islands {
			node.Vertices = l.Flatten(node.Vertices)
		}
	}

	return node
}

// appendLoopPath appends a closed M/L/Z subpath for l.
func appendLoopPath(path []PathCommand, l geom.Loop) []PathCommand {
	if len(l) == 0 {
		return path
	}
	path = append(path, PathCommand{"M", l[0].X, l[0].Y})
	for _, p := range l[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	return append(path, PathCommand{"Z"})
}
