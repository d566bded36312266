package delaunay

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

// Orientation is the turn direction of an ordered point triple.
type Orientation int

// These are the three possible outcomes of Orient.
const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return "collinear"
}

// Continence locates a point relative to a circumcircle.
type Continence int

// These are the three possible outcomes of InCircle.
const (
	Outside  Continence = -1
	Boundary Continence = 0
	Inside   Continence = 1
)

func (c Continence) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	}
	return "boundary"
}

const (
	// epsilon is half the distance between 1 and the next float64 (2^-53).
	epsilon = 1.1102230246251565e-16

	// ccwErrBound bounds the absolute error of the floating point orientation
	// determinant relative to the sum of magnitudes of its two products.
	ccwErrBound = (3 + 16*epsilon) * epsilon

	// iccErrBound plays the same role for the in-circle determinant, scaled by
	// its permanent.
	iccErrBound = (10 + 96*epsilon) * epsilon

	// minNormal is the smallest normal float64. Products below it are
	// subnormal or flushed to zero and the error bounds above do not hold.
	minNormal = 0x1p-1022

	// tinySum is the magnitude under which an error bound itself would
	// underflow; such determinants always take the exact path.
	tinySum = 0x1p-960
)

// Orient reports whether c lies to the left (CounterClockwise), to the right
// (Clockwise) or on the directed line through a and b.
//
// The floating point determinant is accepted only when its magnitude exceeds
// the forward error bound; otherwise the sign is recomputed exactly. The result
// is therefore exact for every finite input and is stable under repeated
// evaluation and under cyclic rotation of the arguments.
func Orient(a, b, c r2.Point) Orientation {
	acx, bcy := a.X-c.X, b.Y-c.Y
	acy, bcx := a.Y-c.Y, b.X-c.X
	detLeft := acx * bcy
	detRight := acy * bcx
	if underflows(acx, bcy, detLeft) || underflows(acy, bcx, detRight) {
		return exactOrient(a, b, c)
	}
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return orientationOf(det)
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return orientationOf(det)
		}
		detSum = -detLeft - detRight
	default:
		return orientationOf(det)
	}

	if detSum < tinySum {
		return exactOrient(a, b, c)
	}
	errBound := ccwErrBound * detSum
	if det > errBound || -det > errBound {
		return orientationOf(det)
	}
	return exactOrient(a, b, c)
}

// underflows reports whether the product p of two nonzero factors x and y
// lost its relative precision below the normal range.
func underflows(x, y, p float64) bool {
	return x != 0 && y != 0 && math.Abs(p) < minNormal
}

// InCircle reports whether d lies inside, outside or on the circle passing
// through a, b and c. The triangle abc must be counterclockwise; for a
// clockwise triangle Inside and Outside are swapped.
func InCircle(a, b, c, d r2.Point) Continence {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	aLift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	bLift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdxcdy-cdxbdy) + bLift*(cdxady-adxcdy) + cLift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*aLift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*bLift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*cLift

	if permanent < tinySum {
		return exactInCircle(a, b, c, d)
	}
	errBound := iccErrBound * permanent
	if det > errBound || -det > errBound {
		return continenceOf(det)
	}
	return exactInCircle(a, b, c, d)
}

func orientationOf(det float64) Orientation {
	switch {
	case det > 0:
		return CounterClockwise
	case det < 0:
		return Clockwise
	}
	return Collinear
}

func continenceOf(det float64) Continence {
	switch {
	case det > 0:
		return Inside
	case det < 0:
		return Outside
	}
	return Boundary
}

// newBigFloat constructs a new big.Float with maximum precision, which keeps
// sums and products of float64 values exact.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bigSub(x, y float64) *big.Float {
	return newBigFloat().Sub(newBigFloat().SetFloat64(x), newBigFloat().SetFloat64(y))
}

func bigMul(x, y *big.Float) *big.Float { return newBigFloat().Mul(x, y) }

// exactOrient evaluates the orientation determinant in multiple precision.
func exactOrient(a, b, c r2.Point) Orientation {
	acx, acy := bigSub(a.X, c.X), bigSub(a.Y, c.Y)
	bcx, bcy := bigSub(b.X, c.X), bigSub(b.Y, c.Y)

	det := newBigFloat().Sub(bigMul(acx, bcy), bigMul(acy, bcx))
	return Orientation(det.Sign())
}

// exactInCircle evaluates the in-circle determinant in multiple precision.
func exactInCircle(a, b, c, d r2.Point) Continence {
	adx, ady := bigSub(a.X, d.X), bigSub(a.Y, d.Y)
	bdx, bdy := bigSub(b.X, d.X), bigSub(b.Y, d.Y)
	cdx, cdy := bigSub(c.X, d.X), bigSub(c.Y, d.Y)

	lift := func(x, y *big.Float) *big.Float {
		return newBigFloat().Add(bigMul(x, x), bigMul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		return newBigFloat().Sub(bigMul(x1, y2), bigMul(x2, y1))
	}

	det := bigMul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, bigMul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, bigMul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return Continence(det.Sign())
}

// onOpenSegment reports whether p, known to be collinear with a and b, lies
// strictly between them.
func onOpenSegment(a, b, p r2.Point) bool {
	if a.X != b.X {
		return (a.X < p.X && p.X < b.X) || (b.X < p.X && p.X < a.X)
	}
	return (a.Y < p.Y && p.Y < b.Y) || (b.Y < p.Y && p.Y < a.Y)
}

// onClosedSegment is the closed counterpart of onOpenSegment.
func onClosedSegment(a, b, p r2.Point) bool {
	return p == a || p == b || onOpenSegment(a, b, p)
}

// ghostEncircles classifies p against the conflict region of the ghost
// triangle whose solid edge is u->w. The sentinel is treated as a point
// infinitely far to the left of u->w, so the "circumcircle" degenerates to the
// open half-plane left of the edge plus the open edge itself.
func ghostEncircles(u, w, p r2.Point) Continence {
	switch Orient(u, w, p) {
	case CounterClockwise:
		return Inside
	case Clockwise:
		return Outside
	}
	if onOpenSegment(u, w, p) {
		return Inside
	}
	return Boundary
}

// segmentsIntersect reports whether the closed segments p1p2 and q1q2 share
// at least one point.
func segmentsIntersect(p1, p2, q1, q2 r2.Point) bool {
	o1 := Orient(p1, p2, q1)
	o2 := Orient(p1, p2, q2)
	o3 := Orient(q1, q2, p1)
	o4 := Orient(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == Collinear && onClosedSegment(p1, p2, q1):
		return true
	case o2 == Collinear && onClosedSegment(p1, p2, q2):
		return true
	case o3 == Collinear && onClosedSegment(q1, q2, p1):
		return true
	case o4 == Collinear && onClosedSegment(q1, q2, p2):
		return true
	}
	return false
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
