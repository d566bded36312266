package main

import (
	"testing"

	"github.com/golang/geo/r2"
)

func TestParseCoordinates(t *testing.T) {
	pts, err := parseCoordinates("1, 1,3,1,3,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 3 || pts[2] != (r2.Point{X: 3, Y: 3}) {
		t.Fatalf("unexpected points %v", pts)
	}
	if pts, err := parseCoordinates(""); err != nil || pts != nil {
		t.Fatalf("an empty list should yield no points, got %v, %v", pts, err)
	}
	for _, s := range []string{"1,2,3", "1,x"} {
		if _, err := parseCoordinates(s); err == nil {
			t.Errorf("expected an error for %q", s)
		}
	}
}

func TestMerge(t *testing.T) {
	hole := []r2.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	pts := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 5, Y: 5}}

	got := merge(hole, pts)
	if len(got) != 5 {
		t.Fatalf("expected 5 points, got %v", got)
	}
	for i, p := range hole {
		if got[i] != p {
			t.Fatalf("the hole boundary should come first, got %v", got)
		}
	}
}
