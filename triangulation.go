package delaunay

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Triangulation is an incremental Delaunay triangulation of a planar point
// set. The convex hull is closed by ghost triangles that share the
// InfiniteVertex, so every triangle always has three neighbours.
//
// A Triangulation is not safe for concurrent use.
type Triangulation struct {
	mesh  *mesh
	graph *conflictGraph
	holes []*hole

	nextHole   HoleID
	generation uint64
	last       TriangleID

	rng      *rand.Rand
	logger   *zap.Logger
	metrics  *metrics
	validate bool
}

// New returns an empty triangulation.
func New(opts ...Option) *Triangulation {
	o := Options{}
	for _, set := range opts {
		set(&o)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(DefaultSeed))
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return &Triangulation{
		mesh:     newMesh(),
		graph:    newConflictGraph(),
		last:     NoTriangle,
		rng:      o.Rand,
		logger:   o.Logger,
		metrics:  newMetrics(o.Registerer),
		validate: o.Validate,
	}
}

// VertexCount returns the number of live vertices.
func (tr *Triangulation) VertexCount() int { return tr.mesh.liveVertices }

// TriangleCount returns the number of solid triangles.
func (tr *Triangulation) TriangleCount() int { return tr.mesh.realTriangles }

// GhostCount returns the number of ghost triangles, which equals the number of
// convex hull edges.
func (tr *Triangulation) GhostCount() int { return tr.mesh.ghostTriangles }

// Vertex returns the position of a live vertex.
func (tr *Triangulation) Vertex(id VertexID) (r2.Point, error) {
	if !tr.mesh.live(id) {
		return r2.Point{}, errors.Wrapf(ErrVertexNotFound, "vertex %d", id)
	}
	return tr.mesh.pos(id), nil
}

// Vertices returns the ids of all live vertices in ascending order.
func (tr *Triangulation) Vertices() []VertexID {
	ids := make([]VertexID, 0, tr.mesh.liveVertices)
	for i := range tr.mesh.vertices {
		if id := VertexID(i); tr.mesh.live(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Hull returns the convex hull vertices in counterclockwise order.
func (tr *Triangulation) Hull() []VertexID { return tr.mesh.hull() }

// Bounds returns the bounding rectangle of the live vertices.
func (tr *Triangulation) Bounds() r2.Rect {
	hull := tr.mesh.hull()
	if len(hull) == 0 {
		return r2.EmptyRect()
	}
	pts := make([]r2.Point, len(hull))
	for i, v := range hull {
		pts[i] = tr.mesh.pos(v)
	}
	return r2.RectFromPoints(pts...)
}

// Area returns the area of a solid triangle. Ghosts and triangles that do
// not reference three live vertices have none.
func (tr *Triangulation) Area(t Triangle) float64 {
	m := tr.mesh
	if t.Ghost || !m.live(t.A) || !m.live(t.B) || !m.live(t.C) {
		return 0
	}
	a, b, c := m.pos(t.A), m.pos(t.B), m.pos(t.C)
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
}

// Validate checks the structural and Delaunay invariants of the whole mesh.
// It runs in O(n) and is meant for tests and debugging.
func (tr *Triangulation) Validate() error {
	if err := tr.mesh.validate(); err != nil {
		return err
	}
	if tr.graph.edges != 0 {
		return errors.Errorf("conflict graph holds %d edges between operations", tr.graph.edges)
	}
	for i := range tr.mesh.triangles {
		t := &tr.mesh.triangles[i]
		if !t.live {
			continue
		}
		if want := tr.voidAt(TriangleID(i)); t.void != want {
			return errors.Errorf("triangle %d: void flag is %v, want %v", i, t.void, want)
		}
	}
	return nil
}

type snapshot struct {
	mesh     *mesh
	holes    int
	nextHole HoleID
	last     TriangleID
}

func (tr *Triangulation) snapshot() *snapshot {
	return &snapshot{
		mesh:     tr.mesh.clone(),
		holes:    len(tr.holes),
		nextHole: tr.nextHole,
		last:     tr.last,
	}
}

func (tr *Triangulation) restore(s *snapshot) {
	tr.mesh = s.mesh
	tr.holes = tr.holes[:s.holes]
	tr.nextHole = s.nextHole
	tr.last = s.last
	tr.graph.reset()
}

// mutate runs a mutating operation, validating and rolling it back when
// validation is enabled, and records the outcome.
func (tr *Triangulation) mutate(op string, fn func() error) error {
	var snap *snapshot
	if tr.validate {
		snap = tr.snapshot()
	}

	err := fn()
	if err == nil && tr.validate {
		if verr := tr.Validate(); verr != nil {
			tr.restore(snap)
			err = errors.Wrapf(verr, "%s: rolled back", op)
		}
	}
	tr.metrics.conflictEdges.Set(float64(tr.graph.edges))

	if err != nil {
		tr.metrics.fail(err)
		if errors.Is(err, ErrDegenerateTriangle) {
			tr.logger.Error("operation failed", zap.String("op", op), zap.Error(err))
		} else {
			tr.logger.Debug("operation rejected", zap.String("op", op), zap.Error(err))
		}
		return err
	}
	tr.generation++
	return nil
}

// Mesh is a compact export of the material triangles.
type Mesh struct {
	// Vertices maps the export index to the vertex id.
	Vertices []VertexID
	// Coordinates holds x, y pairs indexed like Vertices.
	Coordinates []float64
	// Triangles holds index triples, each rotated to start at its smallest index.
	Triangles []int
}

// Export returns the solid triangles outside any hole.
func (tr *Triangulation) Export() Mesh {
	m := tr.mesh
	index := make(map[VertexID]int, m.liveVertices)
	out := Mesh{
		Vertices:    make([]VertexID, 0, m.liveVertices),
		Coordinates: make([]float64, 0, 2*m.liveVertices),
		Triangles:   make([]int, 0, 3*m.realTriangles),
	}
	for _, id := range tr.Vertices() {
		index[id] = len(out.Vertices)
		out.Vertices = append(out.Vertices, id)
		p := m.pos(id)
		out.Coordinates = append(out.Coordinates, p.X, p.Y)
	}

	it := tr.Triangles(MaterialOnly())
	for it.Next() {
		t := it.Triangle()
		a, b, c := index[t.A], index[t.B], index[t.C]
		switch {
		case b < a && b < c:
			a, b, c = b, c, a
		case c < a && c < b:
			a, b, c = c, a, b
		}
		out.Triangles = append(out.Triangles, a, b, c)
	}
	return out
}
