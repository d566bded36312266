/*
Package delaunay maintains the Delaunay triangulation of a planar point set
under insertion and deletion of vertices.

The convex hull is closed by ghost triangles: every hull edge carries a
triangle whose third corner is the shared InfiniteVertex, so each triangle
always has three neighbours and points outside the hull are inserted the same
way as points inside it. All decisions are made with exact orientation and
in-circle predicates.

Example of building a triangulation and walking its triangles:

	package main

	import (
		"fmt"

		"github.com/esimov/delaunay"
		"github.com/golang/geo/r2"
	)

	func main() {
		tr := delaunay.New(delaunay.WithSeed(42))
		ids, err := tr.InsertVertices([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
		if err != nil {
			fmt.Printf("Error on triangulation: %s", err.Error())
			return
		}
		if err := tr.DeleteVertex(ids[2]); err != nil {
			fmt.Printf("Error on deletion: %s", err.Error())
			return
		}

		it := tr.Triangles()
		for it.Next() {
			t := it.Triangle()
			fmt.Println(t.A, t.B, t.C)
		}
	}

Holes are registered with AddHole. They do not change the topology; the
enumeration reports the solid triangles whose centroid lies inside a hole as
void and MaterialOnly skips them.

The sample package produces point sets (uniform or image edge points) and the
render package rasterizes a triangulation.
*/
package delaunay
