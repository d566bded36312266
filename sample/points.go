// Package sample produces point sets to be triangulated: uniformly scattered
// points, explicit coordinate lists and points sampled along image edges.
package sample

import (
	"image"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// pointRate is the share of edge pixels kept as candidates before MaxPoints applies.
const pointRate = 0.875

// EdgeOptions configures the edge point extraction.
type EdgeOptions struct {
	BlurRadius      int
	SobelThreshold  int
	PointsThreshold int
	MaxPoints       int
}

// DefaultEdgeOptions mirrors the values used by the command line tool.
var DefaultEdgeOptions = EdgeOptions{
	BlurRadius:      2,
	SobelThreshold:  10,
	PointsThreshold: 20,
	MaxPoints:       2500,
}

// Uniform returns n points drawn uniformly from bounds.
func Uniform(r *rand.Rand, n int, bounds r2.Rect) []r2.Point {
	pts := make([]r2.Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, r2.Point{
			X: bounds.X.Lo + r.Float64()*bounds.X.Length(),
			Y: bounds.Y.Lo + r.Float64()*bounds.Y.Length(),
		})
	}
	return pts
}

// FromCoordinates pairs a flat x0, y0, x1, y1, ... list into points.
func FromCoordinates(coords []float64) ([]r2.Point, error) {
	if len(coords)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates: %d", len(coords))
	}
	pts := make([]r2.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, r2.Point{X: coords[i], Y: coords[i+1]})
	}
	return pts, nil
}

// EdgePoints blurs and grayscales the image, runs the Sobel operator over it and
// samples the pixels whose gradient exceeds PointsThreshold. The four image corners
// are always part of the result so the triangulation covers the whole picture.
// The returned points are distinct.
func EdgePoints(img image.Image, opts EdgeOptions, r *rand.Rand) []r2.Point {
	src := ToNRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil
	}

	edges := Sobel(Blur(Grayscale(src), opts.BlurRadius), float64(opts.SobelThreshold))

	var candidates []r2.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if int(edges.Pix[(x+y*width)<<2]) > opts.PointsThreshold {
				candidates = append(candidates, r2.Point{X: float64(x), Y: float64(y)})
			}
		}
	}

	limit := int(float64(len(candidates)) * pointRate)
	if opts.MaxPoints > 0 {
		limit = Min(limit, opts.MaxPoints)
	}

	maxX, maxY := float64(width-1), float64(height-1)
	corners := []r2.Point{{X: 0, Y: 0}, {X: maxX, Y: 0}, {X: maxX, Y: maxY}, {X: 0, Y: maxY}}

	seen := make(map[r2.Point]struct{}, limit+len(corners))
	pts := make([]r2.Point, 0, limit+len(corners))
	keep := func(p r2.Point) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}
	for _, c := range corners {
		keep(c)
	}
	for _, i := range r.Perm(len(candidates))[:limit] {
		keep(candidates[i])
	}
	return pts
}
