// Package render rasterizes a triangulation with the gg 2D graphics library.
package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/esimov/delaunay"
	"github.com/esimov/delaunay/sample"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Wireframe selects how the triangle edges are drawn.
type Wireframe int

const (
	WithoutWireframe Wireframe = iota
	WithWireframe
	WireframeOnly
)

// Options : type with rendering options
type Options struct {
	// Width and Height size the canvas when no Source is set. The
	// triangulation bounds are fitted into it with the y axis pointing up.
	Width  int
	Height int
	// Source, when set, gives the canvas size and the fill color of each
	// triangle, taken at its centroid. Vertices are read as pixel coordinates.
	Source    image.Image
	Grayscale bool

	Wireframe Wireframe
	LineWidth float64
	// IsSolid strokes the edges black instead of with the fill color.
	IsSolid bool
	// Noise adds a grain of the given strength to the result.
	Noise int
	Seed  int64

	Background color.Color
	Fill       color.Color
	Void       color.Color
}

// DefaultOptions renders filled triangles with thin wireframe lines.
var DefaultOptions = Options{
	Width:      512,
	Height:     512,
	Wireframe:  WithWireframe,
	LineWidth:  1,
	Background: color.White,
	Fill:       color.RGBA{R: 200, G: 200, B: 200, A: 255},
	Void:       color.RGBA{R: 230, G: 80, B: 80, A: 255},
}

// Draw renders the solid triangles of tr. Triangles inside a hole are never
// filled; their edges use the Void color when a wireframe is drawn.
func Draw(tr *delaunay.Triangulation, opts Options) (image.Image, error) {
	var src *image.NRGBA
	width, height := opts.Width, opts.Height
	if opts.Source != nil {
		src = sample.ToNRGBA(opts.Source)
		if opts.Grayscale {
			src = sample.Grayscale(src)
		}
		width, height = src.Bounds().Dx(), src.Bounds().Dy()
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid canvas size %dx%d", width, height)
	}
	opts = withDefaults(opts)
	project := projection(tr.Bounds(), width, height, opts)

	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetColor(opts.Background)
	ctx.Fill()

	it := tr.Triangles()
	for it.Next() {
		t := it.Triangle()
		var pts [3]r2.Point
		for i, id := range [3]delaunay.VertexID{t.A, t.B, t.C} {
			p, err := tr.Vertex(id)
			if err != nil {
				return nil, errors.Wrapf(err, "triangle %d", t.ID)
			}
			pts[i] = project(p)
		}

		ctx.Push()
		ctx.MoveTo(pts[0].X, pts[0].Y)
		ctx.LineTo(pts[1].X, pts[1].Y)
		ctx.LineTo(pts[2].X, pts[2].Y)
		ctx.LineTo(pts[0].X, pts[0].Y)

		if t.Void {
			if opts.Wireframe != WithoutWireframe {
				ctx.SetStrokeStyle(gg.NewSolidPattern(opts.Void))
				ctx.SetLineWidth(opts.LineWidth)
				ctx.Stroke()
			}
			ctx.ClearPath()
			ctx.Pop()
			continue
		}

		fill := opts.Fill
		if src != nil {
			fill = pixelAt(src, pts[0].Add(pts[1]).Add(pts[2]).Mul(1.0/3))
		}
		lineColor := fill
		if opts.IsSolid {
			lineColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
		}

		switch opts.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	img := ctx.Image()
	// Apply a noise on the final image. This will give it a more artistic look.
	if opts.Noise > 0 {
		return Noise(opts.Noise, img, rand.New(rand.NewSource(opts.Seed))), nil
	}
	return img, nil
}

// Save encodes img as png into path.
func Save(path string, img image.Image) error {
	return errors.Wrapf(gg.SavePNG(path, img), "cannot save %s", path)
}

func withDefaults(opts Options) Options {
	if opts.Background == nil {
		opts.Background = DefaultOptions.Background
	}
	if opts.Fill == nil {
		opts.Fill = DefaultOptions.Fill
	}
	if opts.Void == nil {
		opts.Void = DefaultOptions.Void
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultOptions.LineWidth
	}
	return opts
}

// projection maps triangulation coordinates onto the canvas.
func projection(bounds r2.Rect, width, height int, opts Options) func(r2.Point) r2.Point {
	if opts.Source != nil {
		return func(p r2.Point) r2.Point { return p }
	}
	margin := math.Ceil(opts.LineWidth) + 1
	w, h := float64(width)-2*margin, float64(height)-2*margin

	scale := 1.0
	if dx, dy := bounds.X.Length(), bounds.Y.Length(); dx > 0 || dy > 0 {
		scale = math.Inf(1)
		if dx > 0 {
			scale = w / dx
		}
		if dy > 0 {
			scale = math.Min(scale, h/dy)
		}
	}
	lo := bounds.Lo()
	return func(p r2.Point) r2.Point {
		d := p.Sub(lo).Mul(scale)
		return r2.Point{X: margin + d.X, Y: float64(height) - margin - d.Y}
	}
}

func pixelAt(img *image.NRGBA, p r2.Point) color.Color {
	b := img.Bounds()
	x := sample.Max(b.Min.X, sample.Min(b.Max.X-1, int(p.X)))
	y := sample.Max(b.Min.Y, sample.Min(b.Max.Y-1, int(p.Y)))
	c := img.NRGBAAt(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
