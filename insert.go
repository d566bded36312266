package delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// boundaryEdge is a directed edge a->b of a cavity together with the
// triangle on its far side and the index of the edge inside that triangle.
type boundaryEdge struct {
	a, b    VertexID
	outside TriangleID
	back    int
}

type cavity struct {
	triangles []TriangleID
	boundary  []boundaryEdge
}

// InsertVertex adds p to the triangulation and restores the Delaunay
// property around it. On error the triangulation is left unchanged.
func (tr *Triangulation) InsertVertex(p r2.Point) (VertexID, error) {
	id := NoVertex
	err := tr.mutate("insert", func() error {
		var err error
		id, err = tr.insert(p)
		return err
	})
	if err != nil {
		return NoVertex, err
	}
	tr.metrics.insertions.Inc()
	return id, nil
}

// InsertVertices adds a batch of points in random order, locating each one
// through the conflict graph instead of walking the mesh. The returned ids
// follow the order of ps. The batch is all or nothing.
func (tr *Triangulation) InsertVertices(ps []r2.Point) ([]VertexID, error) {
	var ids []VertexID
	err := tr.mutate("insert batch", func() error {
		var err error
		ids, err = tr.insertBatch(ps)
		return err
	})
	if err != nil {
		return nil, err
	}
	tr.metrics.insertions.Add(float64(len(ids)))
	return ids, nil
}

// admit rejects points that cannot enter the mesh.
func (tr *Triangulation) admit(p r2.Point) error {
	if !isFinite(p) {
		return errors.Wrapf(ErrDegenerateConfiguration, "non-finite coordinate %v", p)
	}
	if id, ok := tr.mesh.coords[p]; ok {
		return errors.Wrapf(ErrDuplicateVertex, "point %v is vertex %d", p, id)
	}
	return nil
}

func (tr *Triangulation) insert(p r2.Point) (VertexID, error) {
	if err := tr.admit(p); err != nil {
		return NoVertex, err
	}

	m := tr.mesh
	switch {
	case m.liveVertices < 2:
		id := m.addVertex(p, false)
		if m.liveVertices == 2 {
			if err := m.bootstrapPair(m.otherLive(id), id); err != nil {
				return NoVertex, err
			}
		}
		return id, nil
	case m.realTriangles == 0 && m.collinearWith(p):
		return NoVertex, errors.Wrapf(ErrDegenerateConfiguration, "point %v is collinear with every vertex", p)
	}

	seed, err := tr.locate(p)
	if err != nil {
		return NoVertex, err
	}
	c, err := tr.carve(seed, p)
	if err != nil {
		return NoVertex, err
	}
	id := m.addVertex(p, false)
	tr.fill(id, c)
	return id, nil
}

func (tr *Triangulation) insertBatch(ps []r2.Point) ([]VertexID, error) {
	if len(ps) == 0 {
		return nil, nil
	}

	seen := make(map[r2.Point]int, len(ps))
	for i, p := range ps {
		if err := tr.admit(p); err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		if j, dup := seen[p]; dup {
			return nil, errors.Wrapf(ErrDuplicateVertex, "points %d and %d coincide at %v", j, i, p)
		}
		seen[p] = i
	}
	if tr.mesh.realTriangles == 0 && tr.mesh.liveVertices+len(ps) >= 3 && tr.allCollinear(ps) {
		return nil, errors.Wrapf(ErrDegenerateConfiguration, "all %d points are collinear", tr.mesh.liveVertices+len(ps))
	}

	snap := tr.snapshot()
	ids, err := tr.fillBatch(ps)
	if err != nil {
		tr.restore(snap)
		return nil, err
	}
	return ids, nil
}

// allCollinear reports whether the live vertices together with ps lie on one line.
func (tr *Triangulation) allCollinear(ps []r2.Point) bool {
	pts := make([]r2.Point, 0, tr.mesh.liveVertices+len(ps))
	for _, id := range tr.Vertices() {
		pts = append(pts, tr.mesh.pos(id))
	}
	pts = append(pts, ps...)
	for _, q := range pts[2:] {
		if Orient(pts[0], pts[1], q) != Collinear {
			return false
		}
	}
	return true
}

func (tr *Triangulation) fillBatch(ps []r2.Point) ([]VertexID, error) {
	m, g := tr.mesh, tr.graph

	ids := make([]VertexID, len(ps))
	for i, p := range ps {
		ids[i] = m.addVertex(p, true)
	}

	// Bring the mesh to two dimensions first; points collinear with a
	// degenerate mesh wait for the first solid triangle.
	var rest []VertexID
	for _, i := range tr.rng.Perm(len(ps)) {
		v := ids[i]
		if m.realTriangles > 0 || (m.liveVertices >= 2 && m.collinearWith(m.pos(v))) {
			rest = append(rest, v)
			continue
		}
		if err := tr.activate(v); err != nil {
			return nil, err
		}
	}
	if len(rest) > 0 && m.realTriangles == 0 {
		return nil, errors.Wrapf(ErrDegenerateConfiguration, "%d points left on a collinear mesh", len(rest))
	}

	for _, v := range rest {
		g.register(m, v)
	}
	tr.logger.Debug("conflict graph built",
		zap.Int("pending", len(rest)),
		zap.Int("edges", g.edges))

	for _, v := range rest {
		ts := g.conflicts(v)
		if len(ts) == 0 {
			return nil, errors.Wrapf(ErrDegenerateConfiguration, "vertex %d has no conflicting triangle", v)
		}
		c, err := tr.carve(ts[0], m.pos(v))
		if err != nil {
			return nil, err
		}
		m.vertices[v].pending = false
		m.liveVertices++
		tr.fill(v, c)
	}
	return ids, nil
}

// activate turns a pending vertex live through the single point path.
func (tr *Triangulation) activate(v VertexID) error {
	m := tr.mesh
	p := m.pos(v)

	var c *cavity
	if m.liveVertices >= 2 {
		seed, err := tr.locate(p)
		if err != nil {
			return err
		}
		if c, err = tr.carve(seed, p); err != nil {
			return err
		}
	}
	m.vertices[v].pending = false
	m.liveVertices++

	switch {
	case c != nil:
		tr.fill(v, c)
	case m.liveVertices == 2:
		return m.bootstrapPair(m.otherLive(v), v)
	}
	return nil
}

// locate returns a triangle in conflict with p. It walks from the last
// created triangle towards p, crossing an edge that separates the current
// triangle from p; the edge to test first is picked at random so the walk
// cannot cycle. A walk that stepped into a ghost has left the hull through
// its solid edge, so that ghost is in conflict.
func (tr *Triangulation) locate(p r2.Point) (TriangleID, error) {
	m := tr.mesh
	if m.realTriangles == 0 {
		return tr.scan(p)
	}

	t := tr.start()
	limit := 4*len(m.triangles) + 16
	for step := 0; step < limit; step++ {
		cur := m.tri(t)
		if cur.ghost() {
			if m.conflicts(t, p) {
				return t, nil
			}
			t = cur.n[2]
			continue
		}

		next := NoTriangle
		first := tr.rng.Intn(3)
		for k := 0; k < 3; k++ {
			e := (first + k) % 3
			a, b := cur.edge(e)
			if Orient(m.pos(a), m.pos(b), p) == Clockwise {
				next = cur.n[e]
				break
			}
		}
		if next == NoTriangle {
			return t, nil
		}
		t = next
	}

	tr.logger.Warn("point location walk exhausted, scanning", zap.Int("limit", limit))
	return tr.scan(p)
}

// scan returns the first live triangle in conflict with p.
func (tr *Triangulation) scan(p r2.Point) (TriangleID, error) {
	m := tr.mesh
	for i := range m.triangles {
		if t := TriangleID(i); m.triangles[i].live && m.conflicts(t, p) {
			return t, nil
		}
	}
	return NoTriangle, errors.Wrapf(ErrDegenerateConfiguration, "no triangle in conflict with %v", p)
}

func (tr *Triangulation) start() TriangleID {
	m := tr.mesh
	if tr.last != NoTriangle && int(tr.last) < len(m.triangles) && m.triangles[tr.last].live {
		return tr.last
	}
	for i := range m.triangles {
		if m.triangles[i].live {
			return TriangleID(i)
		}
	}
	return NoTriangle
}

// carve collects the triangles in conflict with p, starting from seed,
// together with the boundary of their union. Nothing is modified, so a
// degenerate fan is reported before any change is made.
func (tr *Triangulation) carve(seed TriangleID, p r2.Point) (*cavity, error) {
	m := tr.mesh
	c := &cavity{}
	inside := map[TriangleID]bool{seed: true}
	queue := []TriangleID{seed}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		c.triangles = append(c.triangles, t)

		cur := m.tri(t)
		for e := 0; e < 3; e++ {
			nb := cur.n[e]
			in, seen := inside[nb]
			if !seen {
				in = m.conflicts(nb, p)
				inside[nb] = in
				if in {
					queue = append(queue, nb)
				}
			}
			if in {
				continue
			}

			a, b := cur.edge(e)
			if a != InfiniteVertex && b != InfiniteVertex && Orient(m.pos(a), m.pos(b), p) != CounterClockwise {
				return nil, errors.Wrapf(ErrDegenerateTriangle, "cavity edge %d-%d does not see %v", a, b, p)
			}
			c.boundary = append(c.boundary, boundaryEdge{
				a:       a,
				b:       b,
				outside: nb,
				back:    m.backEdge(t, e),
			})
		}
	}
	return c, nil
}

// fill replaces the cavity with the fan of triangles joining its boundary
// to v and hands the pending vertices of the retired triangles over to the
// new ones.
func (tr *Triangulation) fill(v VertexID, c *cavity) {
	m, g := tr.mesh, tr.graph

	touched := slices.Clone(c.triangles)
	for _, b := range c.boundary {
		touched = append(touched, b.outside)
	}
	candidates := g.candidates(touched)
	if i := slices.Index(candidates, v); i >= 0 {
		candidates = slices.Delete(candidates, i, i+1)
	}

	g.dropVertex(v)
	for _, t := range c.triangles {
		g.dropTriangle(t)
	}
	for _, t := range c.triangles {
		m.retireTriangle(t)
	}

	fan := make([]TriangleID, len(c.boundary))
	byStart := make(map[VertexID]int, len(c.boundary))
	for i, b := range c.boundary {
		// The orientation of every solid fan triangle was checked by carve.
		t, _ := m.createTriangle(b.a, b.b, v)
		fan[i] = t
		byStart[b.a] = i
	}
	for i, b := range c.boundary {
		t := fan[i]
		m.link(t, m.tri(t).edgeIndex(b.a, b.b), b.outside, b.back)
		m.glue(t, fan[byStart[b.b]], b.b, v)
	}

	for _, t := range fan {
		m.tri(t).void = tr.voidAt(t)
		m.setHint(t)
	}
	g.attach(m, fan, candidates)
	tr.last = fan[0]

	tr.metrics.cavitySize.Observe(float64(len(c.triangles)))
	tr.logger.Debug("vertex inserted",
		zap.Int32("vertex", int32(v)),
		zap.Int("cavity", len(c.triangles)),
		zap.Int("fan", len(fan)))
}
