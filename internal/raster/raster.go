// Package raster draws rendered frames into images for server-side previews.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"

	"github.com/inamate/morph/internal/engine"
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

// Render fills each node's canvas-space geometry onto a w×h image cleared to
// background. Nodes are painted in order.
func Render(nodes []*engine.SceneNode, w, h int, background color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}

	for _, n := range nodes {
		if n == nil || n.Canvas == nil || !n.Canvas.Valid() {
			continue
		}
		fill(img, n.Canvas, n.Opacity)
	}
	return img
}

// fill rasterizes one shape. The rasterizer accumulates signed coverage,
// so holes are added against the fill's winding and islands with it.
func fill(img *image.RGBA, s *shape.Shape, opacity float64) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	cw := s.Filled.Clockwise()
	addLoop(z, s.Filled, false)
	for _, l := range s.Islands {
		addLoop(z, l, l.Clockwise() != cw)
	}
	for _, hole := range s.Holes {
		if hole.Degenerate() {
			continue
		}
		addLoop(z, hole, hole.Clockwise() == cw)
	}

	r, g, bl := s.Color.Bytes()
	a := uint8(min(max(opacity, 0), 1)*255 + 0.5)
	z.Draw(img, b, image.NewUniform(color.NRGBA{R: r, G: g, B: bl, A: a}), image.Point{})
}

func addLoop(z *vector.Rasterizer, l geom.Loop, reverse bool) {
	if len(l) < 3 {
		return
	}
	at := func(i int) (float32, float32) {
		if reverse {
			i = len(l) - 1 - i
		}
		return float32(l[i].X), float32(l[i].Y)
	}

	z.MoveTo(at(0))
	for i := 1; i < len(l); i++ {
		z.LineTo(at(i))
	}
	z.ClosePath()
}

// ParseBackground parses a CSS color for use as a background. Empty means
// transparent.
func ParseBackground(s string) (color.Color, error) {
	if s == "" {
		return color.Transparent, nil
	}
	c, err := shape.ParseColor(s)
	if err != nil {
		return nil, err
	}
	r, g, b := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
