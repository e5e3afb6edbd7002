package shape

// Kind tags the variant held by a Like.
type Kind uint8

const (
	KindNone Kind = iota
	KindShape
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindCollection:
		return "collection"
	default:
		return "none"
	}
}

// Like is either a single Shape or a Collection.
type Like struct {
	kind       Kind
	shape      *Shape
	collection *Collection
}

// Of wraps a single shape. A nil shape yields an empty Like.
func Of(s *Shape) Like {
	if s == nil {
		return Like{}
	}
	return Like{kind: KindShape, shape: s}
}

// OfCollection wraps a collection. A nil collection yields an empty Like.
func OfCollection(c *Collection) Like {
	if c == nil {
		return Like{}
	}
	return Like{kind: KindCollection, collection: c}
}

// Kind returns the variant tag.
func (l Like) Kind() Kind { return l.kind }

// IsZero reports whether l holds nothing.
func (l Like) IsZero() bool { return l.kind == KindNone }

// Shape returns the held shape, or nil for other variants.
func (l Like) Shape() *Shape { return l.shape }

// Collection returns the held collection, or nil for other variants.
func (l Like) Collection() *Collection { return l.collection }

// AsCollection returns the held collection, wrapping a single shape in a
// one-member collection that shares the shape.
func (l Like) AsCollection() *Collection {
	switch l.kind {
	case KindCollection:
		return l.collection
	case KindShape:
		return &Collection{Members: []*Shape{l.shape}}
	default:
		return nil
	}
}

// Shapes returns the shapes in render order.
func (l Like) Shapes() []*Shape {
	switch l.kind {
	case KindShape:
		return []*Shape{l.shape}
	case KindCollection:
		return l.collection.Members
	default:
		return nil
	}
}

// Copy deep-copies the held value.
func (l Like) Copy() Like {
	switch l.kind {
	case KindShape:
		return Of(l.shape.Copy())
	case KindCollection:
		return OfCollection(l.collection.Copy())
	default:
		return Like{}
	}
}
