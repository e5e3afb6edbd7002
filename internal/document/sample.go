package document

import (
	"encoding/json"

	"github.com/inamate/morph/internal/typeid"
)

func opacity(v float64) *float64 { return &v }

// NewSampleDocument returns a scene that morphs a square through a star and
// a ring into a pair of circles.
func NewSampleDocument() *InDocument {
	sceneID := typeid.NewSceneID()
	squareID := typeid.NewShapeID()
	starID := typeid.NewShapeID()
	ringID := typeid.NewShapeID()
	leftID := typeid.NewShapeID()
	rightID := typeid.NewShapeID()
	pairID := typeid.NewShapeID()

	return &InDocument{
		Scene: Scene{
			ID:         sceneID,
			Name:       "Sample",
			Width:      1280,
			Height:     720,
			Background: "#1a1a2e",
			Loop:       true,
		},
		Shapes: map[string]ShapeNode{
			squareID: {
				ID:    squareID,
				Kind:  ShapeKindRect,
				Style: Style{Fill: "#e94560", Opacity: opacity(1)},
				Data:  json.RawMessage(`{"x": 540, "y": 260, "width": 200, "height": 200}`),
			},
			starID: {
				ID:       starID,
				Kind:     ShapeKindStar,
				Style:    Style{Fill: "#f5a623", Opacity: opacity(1)},
				Rotation: []float64{0, 0, 36},
				Data:     json.RawMessage(`{"cx": 640, "cy": 360, "outer": 160, "inner": 70, "points": 5}`),
			},
			ringID: {
				ID:    ringID,
				Kind:  ShapeKindRing,
				Style: Style{Fill: "#53d769", Opacity: opacity(0.9)},
				Data:  json.RawMessage(`{"cx": 640, "cy": 360, "outer": 150, "inner": 90}`),
			},
			leftID: {
				ID:    leftID,
				Kind:  ShapeKindEllipse,
				Style: Style{Fill: "#0f3460", Opacity: opacity(1)},
				Data:  json.RawMessage(`{"cx": 480, "cy": 360, "rx": 90, "ry": 90}`),
			},
			rightID: {
				ID:    rightID,
				Kind:  ShapeKindEllipse,
				Style: Style{Fill: "#bd10e0", Opacity: opacity(1)},
				Data:  json.RawMessage(`{"cx": 800, "cy": 360, "rx": 90, "ry": 90}`),
			},
			pairID: {
				ID:      pairID,
				Kind:    ShapeKindCollection,
				Members: []string{leftID, rightID},
			},
		},
		Steps: []Step{
			{ID: typeid.NewAnimID(), From: squareID, To: starID, Duration: 1200, Easing: "easeInOut"},
			{ID: typeid.NewAnimID(), To: ringID, Duration: 1000, Easing: "cubicOut"},
			{ID: typeid.NewAnimID(), To: pairID, Duration: 1500, Easing: "backOut"},
			{ID: typeid.NewAnimID(), To: squareID, Duration: 800},
		},
	}
}
