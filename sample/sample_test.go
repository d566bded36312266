package sample

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
)

func TestUniform(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: -2, Y: 1}, r2.Point{X: 3, Y: 4})
	a := Uniform(rand.New(rand.NewSource(7)), 100, bounds)
	b := Uniform(rand.New(rand.NewSource(7)), 100, bounds)

	if len(a) != 100 {
		t.Fatalf("expected 100 points, got %d", len(a))
	}
	for i, p := range a {
		if !bounds.ContainsPoint(p) {
			t.Errorf("point %v outside of %v", p, bounds)
		}
		if p != b[i] {
			t.Fatalf("same seed produced different points at %d: %v != %v", i, p, b[i])
		}
	}
}

func TestFromCoordinates(t *testing.T) {
	pts, err := FromCoordinates([]float64{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 || pts[1] != (r2.Point{X: 2, Y: 3}) {
		t.Fatalf("unexpected points %v", pts)
	}
	if _, err := FromCoordinates([]float64{0, 1, 2}); err == nil {
		t.Fatal("an odd coordinate list should be rejected")
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(3, 1, 2); got != 1 {
		t.Errorf("Min: expected 1, got %d", got)
	}
	if got := Max(0.5, 2.5, -1); got != 2.5 {
		t.Errorf("Max: expected 2.5, got %v", got)
	}
}

func square(size, from, to int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{A: 0xff}
			if x >= from && x < to && y >= from && y < to {
				c = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSobel(t *testing.T) {
	img := Sobel(Grayscale(square(20, 5, 15)), 10)

	if v := img.NRGBAAt(10, 10).R; v != 0 {
		t.Errorf("expected no gradient inside the square, got %d", v)
	}
	if v := img.NRGBAAt(1, 1).R; v != 0 {
		t.Errorf("expected no gradient on the background, got %d", v)
	}
	if v := img.NRGBAAt(5, 10).R; v == 0 {
		t.Error("expected a gradient on the square border")
	}
}

func TestEdgePoints(t *testing.T) {
	img := square(40, 10, 30)
	pts := EdgePoints(img, DefaultEdgeOptions, rand.New(rand.NewSource(1)))

	if len(pts) <= 4 {
		t.Fatalf("expected edge points besides the corners, got %d points", len(pts))
	}
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 39, Y: 39})
	seen := make(map[r2.Point]bool)
	for _, p := range pts {
		if !bounds.ContainsPoint(p) {
			t.Errorf("point %v outside of the image", p)
		}
		if seen[p] {
			t.Errorf("duplicate point %v", p)
		}
		seen[p] = true
	}
	for _, c := range bounds.Vertices() {
		if !seen[c] {
			t.Errorf("missing image corner %v", c)
		}
	}

	opts := DefaultEdgeOptions
	opts.MaxPoints = 10
	if got := EdgePoints(img, opts, rand.New(rand.NewSource(1))); len(got) > 14 {
		t.Errorf("expected at most 14 points with MaxPoints 10, got %d", len(got))
	}
}

func TestEdgePointsFlatImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	pts := EdgePoints(img, DefaultEdgeOptions, rand.New(rand.NewSource(1)))
	if len(pts) != 4 {
		t.Fatalf("a flat image should only yield its corners, got %v", pts)
	}
}

func TestDecodeAndDownscale(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, square(64, 16, 48)); err != nil {
		t.Fatalf("encoding: %v", err)
	}
	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if format != "png" {
		t.Errorf("expected png, got %s", format)
	}

	small := Downscale(img, 16)
	if b := small.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("expected a 16x16 image, got %v", b)
	}
	if same := Downscale(img, 128); same != img {
		t.Error("images narrower than the limit should be returned unchanged")
	}

	if _, _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected an error decoding garbage")
	}
}
