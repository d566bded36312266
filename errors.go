package delaunay

import "github.com/pkg/errors"

// Sentinel errors returned by the triangulation. Call sites wrap them with
// context, so compare with errors.Is.
var (
	// ErrDuplicateVertex is returned when a point coincides exactly with a live vertex.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrDegenerateConfiguration is returned when an operation would require a
	// triangle from collinear points only, or when a coordinate is not finite.
	ErrDegenerateConfiguration = errors.New("degenerate configuration")

	// ErrDegenerateTriangle signals that a triangle about to be created is not
	// strictly counterclockwise. It indicates an internal defect.
	ErrDegenerateTriangle = errors.New("degenerate triangle")

	// ErrVertexNotFound is returned for ids that do not name a live vertex.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrHoleIntersectsExisting is returned when a hole boundary touches,
	// crosses or nests with a registered hole.
	ErrHoleIntersectsExisting = errors.New("hole intersects an existing hole")

	// ErrInvalidHole is returned for boundaries that are not a simple polygon
	// over at least three distinct live vertices.
	ErrInvalidHole = errors.New("invalid hole boundary")

	// ErrStaleIterator is reported by a TriangleIterator whose triangulation
	// was mutated after the iteration started.
	ErrStaleIterator = errors.New("triangulation modified during iteration")
)

// errorKind returns the metrics label of a sentinel error.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateVertex):
		return "duplicate_vertex"
	case errors.Is(err, ErrDegenerateConfiguration):
		return "degenerate_configuration"
	case errors.Is(err, ErrDegenerateTriangle):
		return "degenerate_triangle"
	case errors.Is(err, ErrVertexNotFound):
		return "vertex_not_found"
	case errors.Is(err, ErrHoleIntersectsExisting):
		return "hole_intersects_existing"
	case errors.Is(err, ErrInvalidHole):
		return "invalid_hole"
	}
	return "other"
}
