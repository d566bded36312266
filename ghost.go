package delaunay

import "github.com/golang/geo/r2"

// bootstrapPair closes the mesh over its first two vertices with the two
// ghost triangles (a, b, ∞) and (b, a, ∞), neighbours across all three edges.
func (m *mesh) bootstrapPair(a, b VertexID) error {
	t1, err := m.createTriangle(a, b, InfiniteVertex)
	if err != nil {
		return err
	}
	t2, err := m.createTriangle(b, a, InfiniteVertex)
	if err != nil {
		return err
	}
	m.link(t1, 2, t2, 2)
	m.link(t1, 0, t2, 1)
	m.link(t1, 1, t2, 0)
	m.setHint(t1)
	return nil
}

// anyGhost returns a live ghost triangle, or NoTriangle.
func (m *mesh) anyGhost() TriangleID {
	if m.ghostTriangles == 0 {
		return NoTriangle
	}
	for i := range m.triangles {
		if tr := &m.triangles[i]; tr.live && tr.ghost() {
			return TriangleID(i)
		}
	}
	return NoTriangle
}

// hull walks the ring of ghost triangles and returns the boundary vertices
// in counterclockwise order. The solid edge of a ghost runs clockwise along
// the hull, so the walk follows the neighbour across the edge (∞, v[0]).
// For a collinear mesh every interior vertex is visited twice.
func (m *mesh) hull() []VertexID {
	start := m.anyGhost()
	if start == NoTriangle {
		if m.liveVertices == 1 {
			for i := range m.vertices {
				if m.live(VertexID(i)) {
					return []VertexID{VertexID(i)}
				}
			}
		}
		return nil
	}

	ids := make([]VertexID, 0, m.ghostTriangles)
	for t := start; ; {
		tr := &m.triangles[t]
		ids = append(ids, tr.v[0])
		t = tr.n[1]
		if t == start || len(ids) > m.ghostTriangles {
			break
		}
	}
	return ids
}

// collinearWith reports whether p lies on the line carrying a mesh without
// solid triangles. It needs at least two live vertices.
func (m *mesh) collinearWith(p r2.Point) bool {
	g := m.anyGhost()
	if g == NoTriangle {
		return false
	}
	tr := &m.triangles[g]
	return Orient(m.pos(tr.v[0]), m.pos(tr.v[1]), p) == Collinear
}

// otherLive returns a live vertex other than v, or NoVertex.
func (m *mesh) otherLive(v VertexID) VertexID {
	for i := range m.vertices {
		if id := VertexID(i); id != v && m.live(id) {
			return id
		}
	}
	return NoVertex
}

// forget marks v deleted and drops it from the coordinate index.
func (m *mesh) forget(v VertexID) {
	vx := &m.vertices[v]
	vx.deleted = true
	vx.hint = NoTriangle
	delete(m.coords, vx.pos)
	m.liveVertices--
}
