package delaunay

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// framedSquare builds an outer square with an inner square and returns the
// ids of the outer and inner corners, both counterclockwise.
func framedSquare(t *testing.T) (*Triangulation, []VertexID, []VertexID) {
	t.Helper()
	tr := New(WithValidation(true))
	outer := mustInsert(t, tr, pt(0, 0), pt(4, 0), pt(4, 4), pt(0, 4))
	inner := mustInsert(t, tr, pt(1, 1), pt(3, 1), pt(3, 3), pt(1, 3))
	return tr, outer, inner
}

func countVoid(tr *Triangulation) (void, material int) {
	it := tr.Triangles()
	for it.Next() {
		if it.Triangle().Void {
			void++
		}
	}
	it = tr.Triangles(MaterialOnly())
	for it.Next() {
		material++
	}
	return void, material
}

func TestAddHole(t *testing.T) {
	tr, _, inner := framedSquare(t)
	checkCounts(t, tr, 10, 4)

	id, err := tr.AddHole(inner)
	if err != nil {
		t.Fatalf("AddHole: %v", err)
	}
	mustValidate(t, tr)

	void, material := countVoid(tr)
	if void != 2 || material != 8 {
		t.Fatalf("expected 2 void and 8 material triangles, got %d and %d", void, material)
	}
	// Holes never change the topology.
	checkCounts(t, tr, 10, 4)

	holes := tr.Holes()
	if len(holes) != 1 || holes[0].ID != id {
		t.Fatalf("unexpected holes %+v", holes)
	}
}

func TestAddHoleNormalisesOrientation(t *testing.T) {
	tr, _, inner := framedSquare(t)
	cw := []VertexID{inner[3], inner[2], inner[1], inner[0]}
	if _, err := tr.AddHole(cw); err != nil {
		t.Fatalf("AddHole: %v", err)
	}

	got := tr.Holes()[0].Boundary
	if len(got) != 4 {
		t.Fatalf("unexpected boundary %v", got)
	}
	for i := range got {
		a, b, c := got[i], got[(i+1)%4], got[(i+2)%4]
		pa, _ := tr.Vertex(a)
		pb, _ := tr.Vertex(b)
		pc, _ := tr.Vertex(c)
		if Orient(pa, pb, pc) != CounterClockwise {
			t.Fatalf("boundary %v is not counterclockwise", got)
		}
	}
}

func TestInvalidHoles(t *testing.T) {
	tr, outer, inner := framedSquare(t)

	tests := []struct {
		name     string
		boundary []VertexID
	}{
		{"too short", []VertexID{inner[0], inner[1]}},
		{"repeated vertex", []VertexID{inner[0], inner[1], inner[0]}},
		{"unknown vertex", []VertexID{inner[0], inner[1], 99}},
		{"sentinel", []VertexID{inner[0], inner[1], InfiniteVertex}},
		{"bow tie", []VertexID{inner[0], inner[2], inner[1], inner[3]}},
		{"zero area", []VertexID{outer[0], inner[0], inner[2]}},
	}
	for _, tc := range tests {
		if _, err := tr.AddHole(tc.boundary); !errors.Is(err, ErrInvalidHole) {
			t.Errorf("%s: expected ErrInvalidHole, got %v", tc.name, err)
		}
	}
	if len(tr.Holes()) != 0 {
		t.Fatalf("rejected holes were registered: %+v", tr.Holes())
	}
}

func TestOverlappingHoles(t *testing.T) {
	tr, outer, inner := framedSquare(t)
	if _, err := tr.AddHole(inner); err != nil {
		t.Fatalf("AddHole: %v", err)
	}

	tests := []struct {
		name     string
		boundary []VertexID
	}{
		{"shares a corner", []VertexID{outer[0], outer[1], inner[0]}},
		{"shares an edge", []VertexID{inner[0], outer[1], inner[1]}},
		{"contains the hole", outer},
	}
	for _, tc := range tests {
		if _, err := tr.AddHole(tc.boundary); !errors.Is(err, ErrHoleIntersectsExisting) {
			t.Errorf("%s: expected ErrHoleIntersectsExisting, got %v", tc.name, err)
		}
	}

	if _, err := tr.AddHole([]VertexID{outer[2], outer[3], inner[3], inner[2]}); !errors.Is(err, ErrHoleIntersectsExisting) {
		t.Fatalf("expected a hole sharing an edge to be rejected, got %v", err)
	}
	if len(tr.Holes()) != 1 {
		t.Fatalf("expected a single hole, got %d", len(tr.Holes()))
	}
}

func TestDisjointHoles(t *testing.T) {
	tr, outer, inner := framedSquare(t)
	if _, err := tr.AddHole(inner); err != nil {
		t.Fatalf("AddHole: %v", err)
	}
	extra := mustInsert(t, tr, pt(6, 0), pt(6, 4))
	if _, err := tr.AddHole([]VertexID{outer[1], extra[0], extra[1], outer[2]}); err != nil {
		t.Fatalf("AddHole: %v", err)
	}
	mustValidate(t, tr)
	if len(tr.Holes()) != 2 {
		t.Fatalf("expected two holes, got %d", len(tr.Holes()))
	}
}

func TestHoleClassifiesNewTriangles(t *testing.T) {
	tr, _, inner := framedSquare(t)
	if _, err := tr.AddHole(inner); err != nil {
		t.Fatalf("AddHole: %v", err)
	}

	center := mustInsert(t, tr, pt(2, 2))
	mustValidate(t, tr)
	if void, _ := countVoid(tr); void != 4 {
		t.Fatalf("expected the 4 triangles around the center to be void, got %d", void)
	}

	if err := tr.DeleteVertex(center[0]); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}
	if void, _ := countVoid(tr); void != 2 {
		t.Fatalf("expected 2 void triangles after deleting the center, got %d", void)
	}

	// Deleting a corner keeps the hole polygon.
	if err := tr.DeleteVertex(inner[0]); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}
	mustValidate(t, tr)
	if len(tr.Holes()) != 1 {
		t.Fatalf("the hole was dropped with its corner")
	}
}

func TestFoldsBack(t *testing.T) {
	for _, tc := range []struct {
		a, b, c r2.Point
		want    bool
	}{
		{pt(0, 0), pt(2, 0), pt(1, 0), true},
		{pt(0, 0), pt(2, 0), pt(-1, 0), true},
		{pt(0, 0), pt(2, 0), pt(0, 0), true},
		{pt(0, 0), pt(2, 0), pt(3, 0), false},
		{pt(0, 0), pt(2, 0), pt(2, 1), false},
		{pt(0, 0), pt(2e-200, 0), pt(1e-200, 0), true},
	} {
		if got := foldsBack(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("foldsBack(%v, %v, %v): expected %v, got %v", tc.a, tc.b, tc.c, tc.want, got)
		}
	}
}
