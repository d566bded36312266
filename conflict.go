package delaunay

import (
	"sort"

	"golang.org/x/exp/maps"
)

// conflictGraph is the bipartite relation between pending vertices and the
// live triangles whose circumcircle contains them. Both directions are kept
// so retiring a triangle and inserting a vertex are proportional to the
// number of edges they touch.
type conflictGraph struct {
	byVertex   map[VertexID]map[TriangleID]struct{}
	byTriangle map[TriangleID]map[VertexID]struct{}
	edges      int
}

func newConflictGraph() *conflictGraph {
	return &conflictGraph{
		byVertex:   make(map[VertexID]map[TriangleID]struct{}),
		byTriangle: make(map[TriangleID]map[VertexID]struct{}),
	}
}

func (g *conflictGraph) add(v VertexID, t TriangleID) {
	ts, ok := g.byVertex[v]
	if !ok {
		ts = make(map[TriangleID]struct{})
		g.byVertex[v] = ts
	}
	if _, dup := ts[t]; dup {
		return
	}
	ts[t] = struct{}{}

	vs, ok := g.byTriangle[t]
	if !ok {
		vs = make(map[VertexID]struct{})
		g.byTriangle[t] = vs
	}
	vs[v] = struct{}{}
	g.edges++
}

// register tests every live triangle against v.
func (g *conflictGraph) register(m *mesh, v VertexID) {
	p := m.pos(v)
	for i := range m.triangles {
		t := TriangleID(i)
		if m.triangles[i].live && m.conflicts(t, p) {
			g.add(v, t)
		}
	}
}

// conflicts returns the triangles in conflict with v, ordered by id.
func (g *conflictGraph) conflicts(v VertexID) []TriangleID {
	ts := maps.Keys(g.byVertex[v])
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// candidates returns the union of the vertices in conflict with any of ts.
func (g *conflictGraph) candidates(ts []TriangleID) []VertexID {
	seen := make(map[VertexID]struct{})
	for _, t := range ts {
		for v := range g.byTriangle[t] {
			seen[v] = struct{}{}
		}
	}
	return sortedVertices(seen)
}

// pending lists every vertex still waiting in the graph.
func (g *conflictGraph) pending() []VertexID {
	seen := make(map[VertexID]struct{}, len(g.byVertex))
	for v := range g.byVertex {
		seen[v] = struct{}{}
	}
	return sortedVertices(seen)
}

func (g *conflictGraph) dropTriangle(t TriangleID) {
	for v := range g.byTriangle[t] {
		ts := g.byVertex[v]
		delete(ts, t)
		if len(ts) == 0 {
			delete(g.byVertex, v)
		}
		g.edges--
	}
	delete(g.byTriangle, t)
}

func (g *conflictGraph) dropVertex(v VertexID) {
	for t := range g.byVertex[v] {
		vs := g.byTriangle[t]
		delete(vs, v)
		if len(vs) == 0 {
			delete(g.byTriangle, t)
		}
		g.edges--
	}
	delete(g.byVertex, v)
}

// attach tests the new triangles against the candidate vertices.
func (g *conflictGraph) attach(m *mesh, ts []TriangleID, vs []VertexID) {
	for _, v := range vs {
		p := m.pos(v)
		for _, t := range ts {
			if m.conflicts(t, p) {
				g.add(v, t)
			}
		}
	}
}

func (g *conflictGraph) reset() {
	g.byVertex = make(map[VertexID]map[TriangleID]struct{})
	g.byTriangle = make(map[TriangleID]map[VertexID]struct{})
	g.edges = 0
}

func sortedVertices(set map[VertexID]struct{}) []VertexID {
	vs := maps.Keys(set)
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}
