package shape

// Triangulator decomposes a polygon with holes into triangles. flat holds
// x, y pairs; holeStarts holds the vertex index at which each hole begins.
// The returned indices address vertices of flat, three per triangle.
// Implementations must be deterministic for identical input.
type Triangulator interface {
	Triangulate(flat []float64, holeStarts []int) []int
}

// TriangulatorFunc adapts a function to the Triangulator interface.
type TriangulatorFunc func(flat []float64, holeStarts []int) []int

func (f TriangulatorFunc) Triangulate(flat []float64, holeStarts []int) []int {
	return f(flat, holeStarts)
}

type triangulation struct {
	valid    bool
	version  uint64
	vertices []float64
	indices  []int
}

// Triangles returns the flattened vertex buffer and triangle indices of s.
// The triangulator is invoked at most once per geometry version.
func (s *Shape) Triangles(tri Triangulator) ([]float64, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tri.valid && s.tri.version == s.version {
		return s.tri.vertices, s.tri.indices
	}

	vertices := s.Filled.Flatten(nil)
	holeStarts := make([]int, 0, len(s.Holes))
	for _, h := range s.Holes {
		holeStarts = append(holeStarts, len(vertices)/2)
		vertices = h.Flatten(vertices)
	}
	indices := tri.Triangulate(vertices, holeStarts)

	for _, l := range s.Islands {
		base := len(vertices) / 2
		flat := l.Flatten(nil)
		for _, idx := range tri.Triangulate(flat, nil) {
			indices = append(indices, base+idx)
		}
		vertices = append(vertices, flat...)
	}

	s.tri = triangulation{
		valid:    true,
		version:  s.version,
		vertices: vertices,
		indices:  indices,
	}
	return vertices, indices
}
