package document

import (
	"encoding/json"
	"fmt"
)

// InDocument is a scene of shapes and the ordered morph steps between them.
type InDocument struct {
	Scene  Scene                `json:"scene"`
	Shapes map[string]ShapeNode `json:"shapes"`
	Steps  []Step               `json:"steps"`
}

type Scene struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Loop       bool   `json:"loop"`
}

type ShapeKind string

const (
	ShapeKindPolygon    ShapeKind = "polygon"
	ShapeKindRect       ShapeKind = "rect"
	ShapeKindEllipse    ShapeKind = "ellipse"
	ShapeKindRegular    ShapeKind = "regular"
	ShapeKindStar       ShapeKind = "star"
	ShapeKindRing       ShapeKind = "ring"
	ShapeKindCollection ShapeKind = "collection"
)

type Style struct {
	Fill    string   `json:"fill"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// ShapeNode describes one shape or collection. Data holds the parameters of
// the kind: points and holes for polygons, dimensions for primitives.
type ShapeNode struct {
	ID       string          `json:"id"`
	Kind     ShapeKind       `json:"kind"`
	Style    Style           `json:"style"`
	Rotation []float64       `json:"rotation,omitempty"`
	Center   []float64       `json:"center,omitempty"`
	Members  []string        `json:"members,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Step is one morph on the document timeline. An empty From continues from
// wherever the timeline currently ends.
type Step struct {
	ID        string  `json:"id"`
	From      string  `json:"from,omitempty"`
	To        string  `json:"to"`
	Duration  float64 `json:"duration"`
	Easing    string  `json:"easing,omitempty"`
	Backwards bool    `json:"backwards,omitempty"`
	Async     bool    `json:"async,omitempty"`
}

type polygonData struct {
	Points [][]float64   `json:"points"`
	Holes  [][][]float64 `json:"holes"`
}

type rectData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ellipseData struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	RX       float64 `json:"rx"`
	RY       float64 `json:"ry"`
	Segments int     `json:"segments"`
}

type regularData struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	R        float64 `json:"r"`
	Sides    int     `json:"sides"`
	Rotation float64 `json:"rotation"`
}

type starData struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Outer  float64 `json:"outer"`
	Inner  float64 `json:"inner"`
	Points int     `json:"points"`
}

type ringData struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	Outer    float64 `json:"outer"`
	Inner    float64 `json:"inner"`
	Segments int     `json:"segments"`
}

// Parse decodes a document from JSON.
func Parse(data []byte) (*InDocument, error) {
	var doc InDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
