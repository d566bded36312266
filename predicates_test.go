package delaunay

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestOrient(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    Orientation
	}{
		{"left turn", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, CounterClockwise},
		{"right turn", r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 0}, Clockwise},
		{"collinear", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}, Collinear},
		{"collinear far", r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 12, Y: 12}, r2.Point{X: 24, Y: 24}, Collinear},
		{"coincident", r2.Point{X: 3, Y: 3}, r2.Point{X: 3, Y: 3}, r2.Point{X: 1, Y: 7}, Collinear},
	}
	for _, tc := range tests {
		if got := Orient(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("%s: Orient = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOrientNearDegenerate(t *testing.T) {
	q := r2.Point{X: 12, Y: 12}
	r := r2.Point{X: 24, Y: 24}

	above := r2.Point{X: math.Nextafter(0.5, 0), Y: 0.5}
	below := r2.Point{X: math.Nextafter(0.5, 1), Y: 0.5}

	if got := Orient(above, q, r); got != CounterClockwise {
		t.Fatalf("expected counterclockwise for a point one ulp left of the line, got %v", got)
	}
	if got := Orient(below, q, r); got != Clockwise {
		t.Fatalf("expected clockwise for a point one ulp right of the line, got %v", got)
	}

	// The sign must not depend on which vertex comes first.
	if Orient(below, q, r) != Orient(q, r, below) || Orient(q, r, below) != Orient(r, below, q) {
		t.Fatal("orientation changed under cyclic rotation")
	}
	if Orient(below, q, r) != -Orient(q, below, r) {
		t.Fatal("swapping two points should flip the orientation")
	}

	// Products of such tiny differences underflow to zero or to subnormals.
	for _, tc := range []struct {
		a, b, c r2.Point
		want    Orientation
	}{
		{pt(0, 0), pt(1e-200, 0), pt(0, 1e-200), CounterClockwise},
		{pt(0, 0), pt(0, 1e-200), pt(1e-200, 0), Clockwise},
		{pt(0, 0), pt(1e-160, 0), pt(0, 1e-160), CounterClockwise},
		{pt(1e-200, 1e-200), pt(3e-200, 3e-200), pt(2e-200, 2e-200), Collinear},
	} {
		if got := Orient(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("Orient(%v, %v, %v): expected %v, got %v", tc.a, tc.b, tc.c, tc.want, got)
		}
	}
}

func TestInCircle(t *testing.T) {
	a := r2.Point{X: 1, Y: 0}
	b := r2.Point{X: 0, Y: 1}
	c := r2.Point{X: -1, Y: 0}

	tests := []struct {
		name string
		d    r2.Point
		want Continence
	}{
		{"center", r2.Point{X: 0, Y: 0}, Inside},
		{"far", r2.Point{X: 2, Y: 0}, Outside},
		{"on circle", r2.Point{X: 0, Y: -1}, Boundary},
		{"vertex", a, Boundary},
	}
	for _, tc := range tests {
		if got := InCircle(a, b, c, tc.d); got != tc.want {
			t.Errorf("%s: InCircle = %v, want %v", tc.name, got, tc.want)
		}
	}

	if got := InCircle(a, c, b, r2.Point{}); got != Outside {
		t.Errorf("clockwise triangle should swap inside and outside, got %v", got)
	}
}

func TestInCircleUnderflow(t *testing.T) {
	a, b, c := pt(0, 0), pt(1e-100, 0), pt(0, 1e-100)
	if got := InCircle(a, b, c, pt(5e-101, 5e-101)); got != Inside {
		t.Errorf("expected the circumcentre to be inside, got %v", got)
	}
	if got := InCircle(a, b, c, pt(1e-100, 1e-100)); got != Boundary {
		t.Errorf("expected the fourth square corner on the circle, got %v", got)
	}
	if got := InCircle(a, b, c, pt(2e-100, 2e-100)); got != Outside {
		t.Errorf("expected a far point to be outside, got %v", got)
	}
}

func TestInCircleNearDegenerate(t *testing.T) {
	a := r2.Point{X: 1, Y: 0}
	b := r2.Point{X: 0, Y: 1}
	c := r2.Point{X: -1, Y: 0}

	in := r2.Point{X: 0, Y: math.Nextafter(-1, 0)}
	out := r2.Point{X: 0, Y: math.Nextafter(-1, -2)}
	if got := InCircle(a, b, c, in); got != Inside {
		t.Errorf("expected inside, got %v", got)
	}
	if got := InCircle(a, b, c, out); got != Outside {
		t.Errorf("expected outside, got %v", got)
	}
}

func TestGhostEncircles(t *testing.T) {
	u := r2.Point{X: 0, Y: 0}
	w := r2.Point{X: 1, Y: 0}

	tests := []struct {
		p    r2.Point
		want Continence
	}{
		{r2.Point{X: 0.5, Y: 1}, Inside},
		{r2.Point{X: 0.5, Y: -1}, Outside},
		{r2.Point{X: 0.5, Y: 0}, Inside},
		{r2.Point{X: 2, Y: 0}, Boundary},
		{r2.Point{X: -1, Y: 0}, Boundary},
		{u, Boundary},
	}
	for _, tc := range tests {
		if got := ghostEncircles(u, w, tc.p); got != tc.want {
			t.Errorf("ghostEncircles(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestSegmentsIntersect(t *testing.T) {
	p := func(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

	tests := []struct {
		name           string
		p1, p2, q1, q2 r2.Point
		want           bool
	}{
		{"crossing", p(0, 0), p(2, 2), p(0, 2), p(2, 0), true},
		{"shared endpoint", p(0, 0), p(1, 0), p(1, 0), p(2, 5), true},
		{"t junction", p(0, 0), p(2, 0), p(1, 0), p(1, 3), true},
		{"overlap", p(0, 0), p(2, 0), p(1, 0), p(3, 0), true},
		{"collinear apart", p(0, 0), p(1, 0), p(2, 0), p(3, 0), false},
		{"parallel", p(0, 0), p(1, 0), p(0, 1), p(1, 1), false},
		{"disjoint", p(0, 0), p(1, 1), p(3, 0), p(2, 1), false},
	}
	for _, tc := range tests {
		if got := segmentsIntersect(tc.p1, tc.p2, tc.q1, tc.q2); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
