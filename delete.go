package delaunay

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// side is a directed edge a->b of the link of a deleted vertex, remembered
// with the star triangle it came from and the triangle beyond it.
type side struct {
	a, b      VertexID
	owner     TriangleID
	ownerEdge int
	outside   TriangleID
	back      int
}

// star is the set of triangles around a vertex in counterclockwise order.
// ring[k] is the first vertex of sides[k]. On a collinear mesh the ring may
// pass through the InfiniteVertex twice.
type star struct {
	triangles []TriangleID
	ring      []VertexID
	sides     []side
}

// edgeRef names the polygon edge an ear is glued along: either an original
// side of the ring or the diagonal cut off by an earlier ear.
type edgeRef struct {
	side int
	ear  int
}

// ear is a triangle of the retriangulated star. edges[k] runs from v[k] to v[k+1].
type ear struct {
	v     [3]VertexID
	edges [3]edgeRef
}

// DeleteVertex removes a vertex and retriangulates the polygon it leaves
// behind. Holes keep their shape even when one of their corners is deleted.
func (tr *Triangulation) DeleteVertex(id VertexID) error {
	err := tr.mutate("delete", func() error {
		return tr.remove(id)
	})
	if err != nil {
		return err
	}
	tr.metrics.deletions.Inc()
	return nil
}

func (tr *Triangulation) remove(v VertexID) error {
	m, g := tr.mesh, tr.graph
	if !m.live(v) {
		return errors.Wrapf(ErrVertexNotFound, "vertex %d", v)
	}

	switch m.liveVertices {
	case 1:
		m.forget(v)
		return nil
	case 2:
		for i := range m.triangles {
			if t := TriangleID(i); m.triangles[i].live {
				g.dropTriangle(t)
				m.retireTriangle(t)
			}
		}
		m.forget(v)
		m.vertices[m.otherLive(v)].hint = NoTriangle
		tr.last = NoTriangle
		return nil
	}

	s, err := m.star(v)
	if err != nil {
		return err
	}
	ears, err := tr.clip(s)
	if err != nil {
		return err
	}
	tr.sew(v, s, ears)
	return nil
}

// star rotates around v starting at its hint. From a triangle holding v at
// index i the next triangle counterclockwise lies across edge i+1.
func (m *mesh) star(v VertexID) (*star, error) {
	start := m.vertices[v].hint
	s := &star{}
	for t := start; ; {
		cur := m.tri(t)
		i := cur.index(v)
		if i < 0 {
			return nil, errors.Errorf("vertex %d: triangle %d is not incident", v, t)
		}
		a, b := cur.edge(i)
		s.triangles = append(s.triangles, t)
		s.ring = append(s.ring, a)
		s.sides = append(s.sides, side{
			a:         a,
			b:         b,
			owner:     t,
			ownerEdge: i,
			outside:   cur.n[i],
			back:      m.backEdge(t, i),
		})

		t = cur.n[(i+1)%3]
		if t == start {
			break
		}
		if len(s.triangles) > len(m.triangles) {
			return nil, errors.Errorf("vertex %d: star does not close", v)
		}
	}
	return s, nil
}

// clip retriangulates the ring by Delaunay ear clipping. The first ear in
// ring order whose circumcircle holds no other ring vertex is cut off until
// a triangle remains. The mesh is not modified.
func (tr *Triangulation) clip(s *star) ([]ear, error) {
	n := len(s.ring)
	if n < 3 {
		return nil, nil
	}

	verts := slices.Clone(s.ring)
	refs := make([]edgeRef, n)
	for k := range refs {
		refs[k] = edgeRef{side: k, ear: -1}
	}

	ears := make([]ear, 0, n-2)
	for len(verts) > 3 {
		k := len(verts)
		found := -1
		for i := 0; i < k; i++ {
			if tr.isEar(verts, (i+k-1)%k, i, (i+1)%k) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, errors.Wrapf(ErrDegenerateTriangle, "no ear among %d link vertices", k)
		}

		prev, next := (found+k-1)%k, (found+1)%k
		e := len(ears)
		ears = append(ears, ear{
			v:     [3]VertexID{verts[prev], verts[found], verts[next]},
			edges: [3]edgeRef{refs[prev], refs[found], {side: -1, ear: e}},
		})
		refs[prev] = edgeRef{side: -1, ear: e}
		verts = slices.Delete(verts, found, found+1)
		refs = slices.Delete(refs, found, found+1)
	}

	last := [3]VertexID{verts[0], verts[1], verts[2]}
	if err := tr.checkLast(last); err != nil {
		return nil, err
	}
	ears = append(ears, ear{v: last, edges: [3]edgeRef{refs[0], refs[1], refs[2]}})

	if len(ears) != n-2 {
		return nil, errors.Wrapf(ErrDegenerateTriangle, "%d ears for a ring of %d", len(ears), n)
	}
	return ears, nil
}

// isEar reports whether verts[i] with its ring neighbours forms a triangle of
// the retriangulated star.
func (tr *Triangulation) isEar(verts []VertexID, prev, i, next int) bool {
	m := tr.mesh
	x, y, z := verts[prev], verts[i], verts[next]

	var infinite int
	for _, w := range [3]VertexID{x, y, z} {
		if w == InfiniteVertex {
			infinite++
		}
	}
	if infinite > 1 || x == z {
		return false
	}

	others := func(yield func(q VertexID) bool) bool {
		for j, q := range verts {
			if j == prev || j == i || j == next || q == InfiniteVertex || q == x || q == y || q == z {
				continue
			}
			if !yield(q) {
				return false
			}
		}
		return true
	}

	if infinite == 0 {
		a, b, c := m.pos(x), m.pos(y), m.pos(z)
		if Orient(a, b, c) != CounterClockwise {
			return false
		}
		return others(func(q VertexID) bool {
			return InCircle(a, b, c, m.pos(q)) != Inside
		})
	}

	u, w := ghostEdge(x, y, z)
	a, b := m.pos(u), m.pos(w)
	return others(func(q VertexID) bool {
		return ghostEncircles(a, b, m.pos(q)) != Inside
	})
}

// ghostEdge returns the solid edge of the ghost triangle (x, y, z) once the
// sentinel is rotated into the last slot.
func ghostEdge(x, y, z VertexID) (VertexID, VertexID) {
	switch {
	case x == InfiniteVertex:
		return y, z
	case y == InfiniteVertex:
		return z, x
	}
	return x, y
}

func (tr *Triangulation) checkLast(v [3]VertexID) error {
	var infinite int
	for _, w := range v {
		if w == InfiniteVertex {
			infinite++
		}
	}
	switch {
	case infinite > 1:
		return errors.Wrapf(ErrDegenerateTriangle, "last ear %v has two sentinels", v)
	case infinite == 0:
		m := tr.mesh
		if Orient(m.pos(v[0]), m.pos(v[1]), m.pos(v[2])) != CounterClockwise {
			return errors.Wrapf(ErrDegenerateTriangle, "last ear %v is not counterclockwise", v)
		}
	}
	return nil
}

// sew replaces the star of v by the ears and glues them to the rest of the
// mesh. Sides whose far triangle belongs to the star itself (the end of a
// collinear chain) are glued to the ear holding the matching side.
func (tr *Triangulation) sew(v VertexID, s *star, ears []ear) {
	m, g := tr.mesh, tr.graph

	partner := make([]int, len(s.sides))
	for k, sd := range s.sides {
		partner[k] = -1
		for j, other := range s.sides {
			if other.owner == sd.outside && other.ownerEdge == sd.back {
				partner[k] = j
				break
			}
		}
	}

	pending := g.pending()
	for _, t := range s.triangles {
		g.dropTriangle(t)
	}
	for _, t := range s.triangles {
		m.retireTriangle(t)
	}

	if len(ears) == 0 {
		a, b := s.sides[0], s.sides[1]
		m.link(a.outside, a.back, b.outside, b.back)
		for _, sd := range s.sides {
			m.setHint(sd.outside)
		}
		tr.last = a.outside
	} else {
		ids := make([]TriangleID, len(ears))
		for i, e := range ears {
			// clip checked the orientation of every solid ear.
			ids[i], _ = m.createTriangle(e.v[0], e.v[1], e.v[2])
		}

		owner := make([]int, len(s.sides))
		for i, e := range ears {
			for k, ref := range e.edges {
				switch {
				case ref.side >= 0:
					owner[ref.side] = i
				case ref.ear != i:
					m.glue(ids[i], ids[ref.ear], e.v[k], e.v[(k+1)%3])
				}
			}
		}
		for k, sd := range s.sides {
			t := ids[owner[k]]
			if p := partner[k]; p >= 0 {
				m.glue(t, ids[owner[p]], sd.a, sd.b)
				continue
			}
			m.link(t, m.tri(t).edgeIndex(sd.a, sd.b), sd.outside, sd.back)
		}

		for _, t := range ids {
			m.tri(t).void = tr.voidAt(t)
			m.setHint(t)
		}
		g.attach(m, ids, pending)
		tr.last = ids[0]
	}

	m.forget(v)
	tr.metrics.cavitySize.Observe(float64(len(s.triangles)))
	tr.logger.Debug("vertex deleted",
		zap.Int32("vertex", int32(v)),
		zap.Int("star", len(s.triangles)),
		zap.Int("ears", len(ears)))
}
