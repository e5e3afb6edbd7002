package shape

import "github.com/inamate/morph/internal/geom"

// Collection is an ordered group of shapes that rotate around a shared center.
type Collection struct {
	Members []*Shape
}

// NewCollection groups members and syncs their rotation centers.
func NewCollection(members ...*Shape) *Collection {
	c := &Collection{}
	c.Set(members)
	return c
}

// Len returns the number of members.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Members)
}

// Add appends members and resyncs rotation centers.
func (c *Collection) Add(members ...*Shape) {
	c.Members = append(c.Members, members...)
	c.sync()
}

// Set replaces the membership and resyncs rotation centers.
func (c *Collection) Set(members []*Shape) {
	c.Members = members
	c.sync()
}

// Centroid returns the mean of the member centroids.
func (c *Collection) Centroid() geom.Point {
	if c.Len() == 0 {
		return geom.Point{}
	}
	centroids := make([]geom.Point, 0, len(c.Members))
	for _, m := range c.Members {
		if m.Valid() {
			centroids = append(centroids, m.Centroid())
		}
	}
	return geom.Mean(centroids)
}

// Copy returns a deep copy with independent members.
func (c *Collection) Copy() *Collection {
	if c == nil {
		return nil
	}
	out := &Collection{Members: make([]*Shape, len(c.Members))}
	for i, m := range c.Members {
		out.Members[i] = m.Copy()
	}
	return out
}

// Bounds returns the union of the member bounds.
func (c *Collection) Bounds() geom.Rect {
	var b geom.Rect
	for _, m := range c.Members {
		b = b.Union(m.Bounds())
	}
	return b
}

func (c *Collection) sync() {
	center := c.Centroid()
	for _, m := range c.Members {
		if m != nil {
			m.SetCenter(center)
		}
	}
}
