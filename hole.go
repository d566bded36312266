package delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HoleID identifies a registered hole.
type HoleID int

// Hole is a registered hole with its boundary in counterclockwise order.
type Hole struct {
	ID       HoleID
	Boundary []VertexID
}

type hole struct {
	id     HoleID
	ids    []VertexID
	pts    []r2.Point
	bounds r2.Rect
}

// AddHole marks the region enclosed by boundary as void. Solid triangles
// whose centroid lies strictly inside the polygon are reported as void by the
// enumeration; the topology of the mesh is left alone. The boundary
// coordinates are captured, so the hole keeps its shape if one of its
// vertices is deleted later.
func (tr *Triangulation) AddHole(boundary []VertexID) (HoleID, error) {
	var id HoleID
	err := tr.mutate("add hole", func() error {
		var err error
		id, err = tr.addHole(boundary)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Holes returns the registered holes in registration order.
func (tr *Triangulation) Holes() []Hole {
	out := make([]Hole, len(tr.holes))
	for i, h := range tr.holes {
		out[i] = Hole{ID: h.id, Boundary: append([]VertexID(nil), h.ids...)}
	}
	return out
}

func (tr *Triangulation) addHole(boundary []VertexID) (HoleID, error) {
	h, err := tr.newHole(boundary)
	if err != nil {
		return 0, err
	}
	for _, other := range tr.holes {
		if h.touches(other) {
			return 0, errors.Wrapf(ErrHoleIntersectsExisting, "hole %d", other.id)
		}
	}

	tr.nextHole++
	h.id = tr.nextHole
	tr.holes = append(tr.holes, h)

	m := tr.mesh
	var void int
	for i := range m.triangles {
		t := &m.triangles[i]
		if t.live && !t.ghost() && h.contains(m.centroid(TriangleID(i))) {
			t.void = true
			void++
		}
	}
	tr.logger.Debug("hole added",
		zap.Int("hole", int(h.id)),
		zap.Int("vertices", len(h.ids)),
		zap.Int("void", void))
	return h.id, nil
}

// newHole validates a boundary and returns it normalised to counterclockwise order.
func (tr *Triangulation) newHole(boundary []VertexID) (*hole, error) {
	m := tr.mesh
	if len(boundary) < 3 {
		return nil, errors.Wrapf(ErrInvalidHole, "%d vertices", len(boundary))
	}

	seen := make(map[VertexID]struct{}, len(boundary))
	h := &hole{
		ids: append([]VertexID(nil), boundary...),
		pts: make([]r2.Point, len(boundary)),
	}
	for i, v := range boundary {
		if !m.live(v) {
			return nil, errors.Wrapf(ErrInvalidHole, "vertex %d is not live", v)
		}
		if _, dup := seen[v]; dup {
			return nil, errors.Wrapf(ErrInvalidHole, "vertex %d repeats", v)
		}
		seen[v] = struct{}{}
		h.pts[i] = m.pos(v)
	}
	if err := simplePolygon(h.pts); err != nil {
		return nil, err
	}

	// The turn at the lowest vertex gives the orientation of a simple polygon.
	n := len(h.pts)
	low := 0
	for i, p := range h.pts {
		q := h.pts[low]
		if p.X < q.X || (p.X == q.X && p.Y < q.Y) {
			low = i
		}
	}
	switch Orient(h.pts[(low+n-1)%n], h.pts[low], h.pts[(low+1)%n]) {
	case Collinear:
		return nil, errors.Wrap(ErrInvalidHole, "zero area")
	case Clockwise:
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
			h.pts[i], h.pts[j] = h.pts[j], h.pts[i]
		}
	}
	h.bounds = r2.RectFromPoints(h.pts...)
	return h, nil
}

// simplePolygon checks that no two edges of the closed polyline pts meet
// except consecutive edges at their shared corner.
func simplePolygon(pts []r2.Point) error {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			b1, b2 := pts[j], pts[(j+1)%n]
			switch {
			case j == i+1:
				if foldsBack(a1, a2, b2) {
					return errors.Wrapf(ErrInvalidHole, "edges %d and %d overlap", i, j)
				}
			case i == 0 && j == n-1:
				if foldsBack(b1, a1, a2) {
					return errors.Wrapf(ErrInvalidHole, "edges %d and %d overlap", j, i)
				}
			case segmentsIntersect(a1, a2, b1, b2):
				return errors.Wrapf(ErrInvalidHole, "edges %d and %d cross", i, j)
			}
		}
	}
	return nil
}

// foldsBack reports whether the path a->b->c turns back onto itself.
func foldsBack(a, b, c r2.Point) bool {
	if c == b || Orient(a, b, c) != Collinear {
		return false
	}
	return onClosedSegment(b, a, c) || onOpenSegment(b, c, a)
}

// contains reports whether p lies strictly inside the hole. Points on the
// boundary are outside.
func (h *hole) contains(p r2.Point) bool {
	if !h.bounds.ContainsPoint(p) {
		return false
	}
	winding := 0
	n := len(h.pts)
	for i := range h.pts {
		a, b := h.pts[i], h.pts[(i+1)%n]
		o := Orient(a, b, p)
		if o == Collinear && onClosedSegment(a, b, p) {
			return false
		}
		if a.Y <= p.Y {
			if b.Y > p.Y && o == CounterClockwise {
				winding++
			}
		} else if b.Y <= p.Y && o == Clockwise {
			winding--
		}
	}
	return winding != 0
}

// touches reports whether two hole boundaries share a point or one hole
// lies inside the other.
func (h *hole) touches(o *hole) bool {
	if !h.bounds.Intersects(o.bounds) {
		return false
	}
	n, k := len(h.pts), len(o.pts)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if segmentsIntersect(h.pts[i], h.pts[(i+1)%n], o.pts[j], o.pts[(j+1)%k]) {
				return true
			}
		}
	}
	return h.contains(o.pts[0]) || o.contains(h.pts[0])
}

// voidAt classifies a triangle against the registered holes.
func (tr *Triangulation) voidAt(t TriangleID) bool {
	if len(tr.holes) == 0 || tr.mesh.tri(t).ghost() {
		return false
	}
	c := tr.mesh.centroid(t)
	for _, h := range tr.holes {
		if h.contains(c) {
			return true
		}
	}
	return false
}
