package delaunay

import (
	"testing"
)

func TestConflictGraph(t *testing.T) {
	g := newConflictGraph()
	g.add(1, 10)
	g.add(1, 11)
	g.add(2, 11)
	g.add(2, 11)

	if g.edges != 3 {
		t.Fatalf("expected 3 edges, got %d", g.edges)
	}
	if got := g.conflicts(1); len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Fatalf("unexpected conflicts %v", got)
	}
	if got := g.candidates([]TriangleID{11}); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected candidates %v", got)
	}

	g.dropTriangle(11)
	if g.edges != 1 {
		t.Fatalf("expected 1 edge after dropping a triangle, got %d", g.edges)
	}
	if got := g.pending(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("vertex 2 should have left the graph, pending %v", got)
	}

	g.dropVertex(1)
	if g.edges != 0 || len(g.byTriangle) != 0 || len(g.byVertex) != 0 {
		t.Fatalf("graph not empty: %d edges", g.edges)
	}
}

func TestConflictRegistration(t *testing.T) {
	tr := New()
	mustInsert(t, tr, pt(0, 0), pt(4, 0), pt(0, 4))

	m := tr.mesh
	inside := m.addVertex(pt(1, 1), true)
	outside := m.addVertex(pt(5, 5), true)
	tr.graph.register(m, inside)
	tr.graph.register(m, outside)

	// A point inside the triangle conflicts with it alone; a point beyond the
	// long edge sees exactly one hull edge.
	in := tr.graph.conflicts(inside)
	if len(in) != 1 || m.tri(in[0]).ghost() {
		t.Fatalf("unexpected conflicts for an inner point: %v", in)
	}
	out := tr.graph.conflicts(outside)
	var ghosts int
	for _, id := range out {
		if m.tri(id).ghost() {
			ghosts++
		}
	}
	if ghosts != 1 {
		t.Fatalf("expected one ghost in conflict with an outer point, got %d of %v", ghosts, out)
	}
}
