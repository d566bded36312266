package delaunay

// Triangle is a triangle yielded by the enumeration. A, B and C are in
// counterclockwise order; for a ghost C is the InfiniteVertex.
type Triangle struct {
	ID      TriangleID
	A, B, C VertexID
	Ghost   bool
	Void    bool
}

// EnumOption tunes Triangles.
type EnumOption func(*enumOptions)

type enumOptions struct {
	ghosts   bool
	material bool
}

// IncludeGhosts makes the enumeration yield ghost triangles too.
func IncludeGhosts() EnumOption {
	return func(o *enumOptions) { o.ghosts = true }
}

// MaterialOnly skips triangles inside a hole.
func MaterialOnly() EnumOption {
	return func(o *enumOptions) { o.material = true }
}

// TriangleIterator walks the live triangles in slot order. It is lazy and
// can be restarted with Reset. Once the triangulation is mutated Next
// returns false and Err reports ErrStaleIterator.
type TriangleIterator struct {
	tr         *Triangulation
	opts       enumOptions
	generation uint64
	pos        int
	cur        Triangle
	err        error
}

// Triangles returns an iterator over the solid triangles.
func (tr *Triangulation) Triangles(opts ...EnumOption) *TriangleIterator {
	it := &TriangleIterator{tr: tr}
	for _, set := range opts {
		set(&it.opts)
	}
	it.Reset()
	return it
}

// Next advances to the next triangle.
func (it *TriangleIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.generation != it.tr.generation {
		it.err = ErrStaleIterator
		return false
	}

	ts := it.tr.mesh.triangles
	for it.pos < len(ts) {
		t := &ts[it.pos]
		id := TriangleID(it.pos)
		it.pos++
		switch {
		case !t.live:
			continue
		case t.ghost() && !it.opts.ghosts:
			continue
		case t.void && it.opts.material:
			continue
		}
		it.cur = Triangle{
			ID:    id,
			A:     t.v[0],
			B:     t.v[1],
			C:     t.v[2],
			Ghost: t.ghost(),
			Void:  t.void,
		}
		return true
	}
	return false
}

// Triangle returns the current triangle.
func (it *TriangleIterator) Triangle() Triangle { return it.cur }

// Err returns ErrStaleIterator if the triangulation changed under the iterator.
func (it *TriangleIterator) Err() error { return it.err }

// Reset rewinds the iterator to the current state of the triangulation.
func (it *TriangleIterator) Reset() {
	it.generation = it.tr.generation
	it.pos = 0
	it.cur = Triangle{}
	it.err = nil
}
