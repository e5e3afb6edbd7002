package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/shape"
	"github.com/inamate/morph/internal/timeline"
)

var (
	ErrUnknownShape  = errors.New("unknown shape")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrInvalidStep   = errors.New("invalid step")
	ErrUnknownEasing = errors.New("unknown easing")
	ErrEmptyTimeline = errors.New("document has no steps")
)

// Build resolves the document's shapes and folds its steps into a timeline.
// base options apply to every step; each step then sets its own duration,
// easing and direction.
func Build(doc *InDocument, base ...morph.Option) (*timeline.Timeline, error) {
	if doc == nil || len(doc.Steps) == 0 {
		return nil, ErrEmptyTimeline
	}

	b := &builder{doc: doc, built: make(map[string]shape.Like)}
	tl := timeline.New()

	for i, step := range doc.Steps {
		if step.Duration < 0 {
			return nil, fmt.Errorf("build step %d: %w: negative duration", i, ErrInvalidStep)
		}
		to, err := b.like(step.To)
		if err != nil {
			return nil, fmt.Errorf("build step %d: %w", i, err)
		}
		ease, ok := morph.Named(step.Easing)
		if !ok {
			return nil, fmt.Errorf("build step %d: %w %q", i, ErrUnknownEasing, step.Easing)
		}

		opts := append(slices.Clone(base),
			morph.WithDuration(step.Duration),
			morph.WithEase(ease),
			morph.WithBackwards(step.Backwards),
		)

		if step.From == "" {
			tl.TransformInto(to, step.Async, opts...)
			continue
		}
		from, err := b.like(step.From)
		if err != nil {
			return nil, fmt.Errorf("build step %d: %w", i, err)
		}
		tl.Add(morph.New(from, to, opts...), step.Async)
	}

	return tl, nil
}

// Shape resolves a single shape or collection of the document by ID.
func (d *InDocument) Shape(id string) (shape.Like, error) {
	b := &builder{doc: d, built: make(map[string]shape.Like)}
	return b.like(id)
}

type builder struct {
	doc   *InDocument
	built map[string]shape.Like
}

func (b *builder) like(id string) (shape.Like, error) {
	if l, ok := b.built[id]; ok {
		return l, nil
	}
	node, ok := b.doc.Shapes[id]
	if !ok {
		return shape.Like{}, fmt.Errorf("%w: %q", ErrUnknownShape, id)
	}

	var l shape.Like
	if node.Kind == ShapeKindCollection {
		c := shape.NewCollection()
		for _, memberID := range node.Members {
			member, ok := b.doc.Shapes[memberID]
			if !ok {
				return shape.Like{}, fmt.Errorf("collection %q: %w: %q", id, ErrUnknownShape, memberID)
			}
			if member.Kind == ShapeKindCollection {
				return shape.Like{}, fmt.Errorf("collection %q: %w: member %q is a collection", id, ErrInvalidShape, memberID)
			}
			m, err := b.like(memberID)
			if err != nil {
				return shape.Like{}, err
			}
			// Members get their own copy since the collection moves their
			// rotation center.
			c.Add(m.Shape().Copy())
		}
		l = shape.OfCollection(c)
	} else {
		s, err := BuildShape(node)
		if err != nil {
			return shape.Like{}, err
		}
		l = shape.Of(s)
	}

	b.built[id] = l
	return l, nil
}

// BuildShape turns a non-collection node into a Shape.
func BuildShape(node ShapeNode) (*shape.Shape, error) {
	var s *shape.Shape

	switch node.Kind {
	case ShapeKindPolygon:
		var d polygonData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if len(d.Points) < 3 {
			return nil, fmt.Errorf("%w: %q: polygon needs at least 3 points", ErrInvalidShape, node.ID)
		}
		holes := make([]geom.Loop, 0, len(d.Holes))
		for _, h := range d.Holes {
			if len(h) == 0 {
				continue
			}
			holes = append(holes, toLoop(h))
		}
		s = shape.New(toLoop(d.Points), holes...)

	case ShapeKindRect:
		var d rectData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if d.Width <= 0 || d.Height <= 0 {
			return nil, fmt.Errorf("%w: %q: rect needs a positive size", ErrInvalidShape, node.ID)
		}
		s = shape.Rect(d.X, d.Y, d.Width, d.Height)

	case ShapeKindEllipse:
		var d ellipseData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if d.RX <= 0 || d.RY <= 0 {
			return nil, fmt.Errorf("%w: %q: ellipse needs positive radii", ErrInvalidShape, node.ID)
		}
		s = shape.Ellipse(d.CX, d.CY, d.RX, d.RY, segments(d.Segments))

	case ShapeKindRegular:
		var d regularData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if d.R <= 0 || d.Sides < 3 {
			return nil, fmt.Errorf("%w: %q: regular polygon needs a radius and 3 sides", ErrInvalidShape, node.ID)
		}
		s = shape.RegularPolygon(d.CX, d.CY, d.R, d.Sides, d.Rotation)

	case ShapeKindStar:
		var d starData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if d.Outer <= 0 || d.Inner <= 0 || d.Points < 2 {
			return nil, fmt.Errorf("%w: %q: star needs radii and 2 points", ErrInvalidShape, node.ID)
		}
		s = shape.Star(d.CX, d.CY, d.Outer, d.Inner, d.Points)

	case ShapeKindRing:
		var d ringData
		if err := decode(node, &d); err != nil {
			return nil, err
		}
		if d.Inner <= 0 || d.Outer <= d.Inner {
			return nil, fmt.Errorf("%w: %q: ring needs 0 < inner < outer", ErrInvalidShape, node.ID)
		}
		s = shape.Ring(d.CX, d.CY, d.Outer, d.Inner, segments(d.Segments))

	default:
		return nil, fmt.Errorf("%w: %q: unsupported kind %q", ErrInvalidShape, node.ID, node.Kind)
	}

	if node.Style.Fill != "" {
		c, err := shape.ParseColor(node.Style.Fill)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", node.ID, err)
		}
		s.WithColor(c)
	}
	if node.Style.Opacity != nil {
		s.WithOpacity(*node.Style.Opacity)
	}
	if len(node.Rotation) > 0 {
		s.WithRotation(geom.FromComponents(node.Rotation))
	}
	if len(node.Center) > 0 {
		s.SetCenter(geom.FromComponents(node.Center))
	}
	return s, nil
}

func decode(node ShapeNode, v any) error {
	if len(node.Data) == 0 {
		return fmt.Errorf("%w: %q: missing data", ErrInvalidShape, node.ID)
	}
	if err := json.Unmarshal(node.Data, v); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidShape, node.ID, err)
	}
	return nil
}

func toLoop(pts [][]float64) geom.Loop {
	loop := make(geom.Loop, len(pts))
	for i, p := range pts {
		loop[i] = geom.FromComponents(p)
	}
	return loop
}

func segments(n int) int {
	if n < 3 {
		return shape.DefaultSegments
	}
	return n
}
