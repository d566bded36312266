package delaunay

import (
	"math/rand"
	"testing"
)

func BenchmarkInsertVertex(b *testing.B) {
	pts := randomPoints(rand.New(rand.NewSource(1)), 2500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New()
		for _, p := range pts {
			if _, err := tr.InsertVertex(p); err != nil {
				b.Fatalf("Failed inserting vertex: %v", err)
			}
		}
	}
}

func BenchmarkInsertVertices(b *testing.B) {
	pts := randomPoints(rand.New(rand.NewSource(1)), 2500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New().InsertVertices(pts); err != nil {
			b.Fatalf("Failed inserting batch: %v", err)
		}
	}
}

func BenchmarkDeleteVertex(b *testing.B) {
	pts := randomPoints(rand.New(rand.NewSource(1)), 2500)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		tr := New()
		ids, err := tr.InsertVertices(pts)
		if err != nil {
			b.Fatalf("Failed inserting batch: %v", err)
		}
		b.StartTimer()
		for _, id := range ids {
			if err := tr.DeleteVertex(id); err != nil {
				b.Fatalf("Failed deleting vertex: %v", err)
			}
		}
	}
}
