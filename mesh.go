package delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// VertexID identifies a vertex. Ids are handed out in insertion order and are
// never reused, not even after the vertex is deleted.
type VertexID int32

// TriangleID identifies a triangle slot. Slots of retired triangles are reused.
type TriangleID int32

const (
	// NoVertex marks the absence of a vertex.
	NoVertex VertexID = -1
	// InfiniteVertex is the sentinel shared by every ghost triangle.
	InfiniteVertex VertexID = -2
	// NoTriangle marks the absence of a triangle.
	NoTriangle TriangleID = -1
)

type vertex struct {
	pos     r2.Point
	deleted bool
	pending bool
	hint    TriangleID
}

// triangle stores its corners counterclockwise. n[i] is the neighbour across
// the edge opposite v[i], that is the directed edge (v[i+1], v[i+2]).
// Ghost triangles keep the sentinel in v[2], so their solid edge is edge 2.
type triangle struct {
	v    [3]VertexID
	n    [3]TriangleID
	live bool
	void bool
}

func (t *triangle) ghost() bool { return t.v[2] == InfiniteVertex }

// edge returns the directed edge opposite v[e].
func (t *triangle) edge(e int) (VertexID, VertexID) {
	return t.v[(e+1)%3], t.v[(e+2)%3]
}

func (t *triangle) index(v VertexID) int {
	for i, w := range t.v {
		if w == v {
			return i
		}
	}
	return -1
}

// edgeIndex returns the index of the directed edge a->b, or -1.
func (t *triangle) edgeIndex(a, b VertexID) int {
	for e := 0; e < 3; e++ {
		if x, y := t.edge(e); x == a && y == b {
			return e
		}
	}
	return -1
}

// mesh is the arena holding vertices and triangles.
type mesh struct {
	vertices  []vertex
	triangles []triangle
	free      []TriangleID
	coords    map[r2.Point]VertexID

	liveVertices   int
	realTriangles  int
	ghostTriangles int
}

func newMesh() *mesh {
	return &mesh{coords: make(map[r2.Point]VertexID)}
}

func (m *mesh) pos(v VertexID) r2.Point { return m.vertices[v].pos }

func (m *mesh) tri(t TriangleID) *triangle { return &m.triangles[t] }

// addVertex appends a vertex and indexes its coordinates.
func (m *mesh) addVertex(p r2.Point, pending bool) VertexID {
	id := VertexID(len(m.vertices))
	m.vertices = append(m.vertices, vertex{pos: p, pending: pending, hint: NoTriangle})
	m.coords[p] = id
	if !pending {
		m.liveVertices++
	}
	return id
}

// live reports whether id names a vertex that is part of the triangulation.
func (m *mesh) live(id VertexID) bool {
	if id < 0 || int(id) >= len(m.vertices) {
		return false
	}
	v := &m.vertices[id]
	return !v.deleted && !v.pending
}

// createTriangle stores a new triangle, rotating ghosts into canonical form.
// A solid triangle must be strictly counterclockwise.
func (m *mesh) createTriangle(a, b, c VertexID) (TriangleID, error) {
	switch {
	case a == InfiniteVertex:
		a, b, c = b, c, a
	case b == InfiniteVertex:
		a, b, c = c, a, b
	}
	ghost := c == InfiniteVertex
	if !ghost && Orient(m.pos(a), m.pos(b), m.pos(c)) != CounterClockwise {
		return NoTriangle, errors.Wrapf(ErrDegenerateTriangle, "vertices %d, %d, %d", a, b, c)
	}

	t := triangle{
		v:    [3]VertexID{a, b, c},
		n:    [3]TriangleID{NoTriangle, NoTriangle, NoTriangle},
		live: true,
	}

	var id TriangleID
	if n := len(m.free); n > 0 {
		id = m.free[n-1]
		m.free = m.free[:n-1]
		m.triangles[id] = t
	} else {
		id = TriangleID(len(m.triangles))
		m.triangles = append(m.triangles, t)
	}
	if ghost {
		m.ghostTriangles++
	} else {
		m.realTriangles++
	}
	return id, nil
}

// link makes t1 and t2 neighbours across edge e1 of t1 and edge e2 of t2.
func (m *mesh) link(t1 TriangleID, e1 int, t2 TriangleID, e2 int) {
	m.triangles[t1].n[e1] = t2
	m.triangles[t2].n[e2] = t1
}

// glue links t1 and t2 across the edge a->b of t1.
func (m *mesh) glue(t1, t2 TriangleID, a, b VertexID) {
	e1 := m.triangles[t1].edgeIndex(a, b)
	e2 := m.triangles[t2].edgeIndex(b, a)
	m.link(t1, e1, t2, e2)
}

// backEdge returns the index, inside the neighbour across edge e of t, of
// the same edge. It matches the reversed vertex pair, which stays unambiguous
// when two triangles share more than one edge.
func (m *mesh) backEdge(t TriangleID, e int) int {
	tr := &m.triangles[t]
	a, b := tr.edge(e)
	return m.triangles[tr.n[e]].edgeIndex(b, a)
}

// retireTriangle frees the slot of t and clears the back references of its
// neighbours.
func (m *mesh) retireTriangle(t TriangleID) {
	tr := &m.triangles[t]
	for _, nb := range tr.n {
		if nb == NoTriangle {
			continue
		}
		ntr := &m.triangles[nb]
		for j := range ntr.n {
			if ntr.n[j] == t {
				ntr.n[j] = NoTriangle
			}
		}
	}
	if tr.ghost() {
		m.ghostTriangles--
	} else {
		m.realTriangles--
	}
	*tr = triangle{
		v:    [3]VertexID{NoVertex, NoVertex, NoVertex},
		n:    [3]TriangleID{NoTriangle, NoTriangle, NoTriangle},
		live: false,
	}
	m.free = append(m.free, t)
}

// setHint records t as an incident triangle of its finite corners.
func (m *mesh) setHint(t TriangleID) {
	for _, v := range m.triangles[t].v {
		if v >= 0 {
			m.vertices[v].hint = t
		}
	}
}

// centroid of a solid triangle.
func (m *mesh) centroid(t TriangleID) r2.Point {
	tr := &m.triangles[t]
	a, b, c := m.pos(tr.v[0]), m.pos(tr.v[1]), m.pos(tr.v[2])
	return a.Add(b).Add(c).Mul(1.0 / 3)
}

// encircles classifies p against the circumcircle of t. For ghosts the
// circumcircle degenerates to the open half-plane left of the solid edge.
func (m *mesh) encircles(t TriangleID, p r2.Point) Continence {
	tr := &m.triangles[t]
	if tr.ghost() {
		return ghostEncircles(m.pos(tr.v[0]), m.pos(tr.v[1]), p)
	}
	return InCircle(m.pos(tr.v[0]), m.pos(tr.v[1]), m.pos(tr.v[2]), p)
}

func (m *mesh) conflicts(t TriangleID, p r2.Point) bool {
	return m.encircles(t, p) == Inside
}

// clone returns a deep copy used to roll back failed batch operations.
func (m *mesh) clone() *mesh {
	c := &mesh{
		vertices:       append([]vertex(nil), m.vertices...),
		triangles:      append([]triangle(nil), m.triangles...),
		free:           append([]TriangleID(nil), m.free...),
		coords:         make(map[r2.Point]VertexID, len(m.coords)),
		liveVertices:   m.liveVertices,
		realTriangles:  m.realTriangles,
		ghostTriangles: m.ghostTriangles,
	}
	for p, id := range m.coords {
		c.coords[p] = id
	}
	return c
}

// validate runs a full consistency check of the arena: adjacency symmetry,
// orientation, local Delaunay property across every edge, counters and hints.
func (m *mesh) validate() error {
	var real, ghosts int
	for i := range m.triangles {
		t := TriangleID(i)
		tr := &m.triangles[i]
		if !tr.live {
			continue
		}
		if tr.ghost() {
			ghosts++
		} else {
			real++
		}
		for k, v := range tr.v {
			if v == InfiniteVertex {
				if k != 2 {
					return errors.Errorf("triangle %d: sentinel in slot %d", t, k)
				}
				continue
			}
			if !m.live(v) {
				return errors.Errorf("triangle %d: references dead vertex %d", t, v)
			}
		}
		if !tr.ghost() && Orient(m.pos(tr.v[0]), m.pos(tr.v[1]), m.pos(tr.v[2])) != CounterClockwise {
			return errors.Errorf("triangle %d: not counterclockwise", t)
		}
		if tr.ghost() && tr.v[0] == tr.v[1] {
			return errors.Errorf("triangle %d: collapsed ghost", t)
		}
		for e := 0; e < 3; e++ {
			nb := tr.n[e]
			if nb == NoTriangle || !m.triangles[nb].live {
				return errors.Errorf("triangle %d: missing neighbour across edge %d", t, e)
			}
			be := m.backEdge(t, e)
			if be < 0 || m.triangles[nb].n[be] != t {
				return errors.Errorf("triangle %d: asymmetric adjacency with %d", t, nb)
			}
			opp := m.triangles[nb].v[be]
			if opp == InfiniteVertex {
				continue
			}
			if m.encircles(t, m.pos(opp)) == Inside {
				return errors.Errorf("triangle %d: vertex %d violates the empty circle", t, opp)
			}
		}
	}

	if real != m.realTriangles || ghosts != m.ghostTriangles {
		return errors.Errorf("triangle counters %d/%d, found %d/%d",
			m.realTriangles, m.ghostTriangles, real, ghosts)
	}

	var live int
	for i := range m.vertices {
		v := VertexID(i)
		vx := &m.vertices[i]
		if vx.deleted || vx.pending {
			continue
		}
		live++
		if id, ok := m.coords[vx.pos]; !ok || id != v {
			return errors.Errorf("vertex %d: missing from the coordinate index", v)
		}
		if real+ghosts == 0 {
			continue
		}
		if vx.hint == NoTriangle || !m.triangles[vx.hint].live || m.triangles[vx.hint].index(v) < 0 {
			return errors.Errorf("vertex %d: stale incident triangle hint", v)
		}
	}
	if live != m.liveVertices {
		return errors.Errorf("vertex counter %d, found %d", m.liveVertices, live)
	}

	n, h := m.liveVertices, m.ghostTriangles
	switch {
	case n < 2:
		if real+ghosts != 0 {
			return errors.Errorf("%d vertices cannot carry triangles", n)
		}
	case real == 0:
		if h != 2*(n-1) {
			return errors.Errorf("collinear mesh of %d vertices has %d ghosts", n, h)
		}
	default:
		if real != 2*n-2-h {
			return errors.Errorf("euler relation violated: %d triangles, %d vertices, %d hull edges", real, n, h)
		}
	}
	return nil
}
