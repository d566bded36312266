package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/esimov/delaunay"
	"github.com/esimov/delaunay/render"
	"github.com/esimov/delaunay/sample"
	"github.com/esimov/delaunay/utils"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Flags
	source          = flag.String("in", "", "Source image path or URL; random points are used when empty")
	destination     = flag.String("out", "", "Destination png")
	count           = flag.Int("n", 1000, "Number of random points when no source is given")
	size            = flag.Int("size", 1024, "Canvas size when no source is given")
	seed            = flag.Int64("seed", delaunay.DefaultSeed, "Random seed")
	deletions       = flag.Int("delete", 0, "Number of random vertices to delete after insertion")
	holeCoords      = flag.String("hole", "", "Hole boundary as a comma separated x,y list")
	blurRadius      = flag.Int("blur", 2, "Blur radius")
	sobelThreshold  = flag.Int("sobel", 10, "Sobel filter threshold")
	pointsThreshold = flag.Int("points", 20, "Points threshold")
	maxPoints       = flag.Int("max", 2500, "Maximum number of points")
	maxWidth        = flag.Int("resize", 0, "Downscale the source to this width")
	wireframe       = flag.Int("wireframe", 1, "Wireframe mode (0: none, 1: with wireframe, 2: wireframe only)")
	noise           = flag.Int("noise", 0, "Noise factor")
	lineWidth       = flag.Float64("width", 1, "Wireframe line width")
	isSolid         = flag.Bool("solid", false, "Solid line color")
	grayscale       = flag.Bool("gray", false, "Convert to grayscale")
	validate        = flag.Bool("validate", false, "Check the triangulation after every operation")
	verbose         = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()

	if len(*destination) == 0 {
		log.Fatal("Usage: delaunay [-in input.jpg] -out out.png")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Unable to create logger: %v", err)
	}
	defer logger.Sync()

	var s *utils.Spinner
	if utils.IsTerminal(os.Stderr) {
		s = utils.NewSpinner(os.Stderr)
		s.Start("Generating triangulation...")
	}
	start := time.Now()
	stats, err := run(context.Background(), logger)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%sError: %v%s\n", utils.ErrorColor, err, utils.DefaultColor)
		os.Exit(1)
	}

	fmt.Printf("\nGenerated in: %s%s\n", utils.SuccessColor, utils.FormatTime(time.Since(start)))
	fmt.Printf("%sTotal number of %s%d %striangles generated out of %s%d %spoints\n",
		utils.DefaultColor, utils.SuccessColor, stats.triangles, utils.DefaultColor,
		utils.SuccessColor, stats.vertices, utils.DefaultColor)
	fmt.Printf("Saved as: %s %s✓%s\n\n", path.Base(*destination), utils.SuccessColor, utils.DefaultColor)
}

type stats struct {
	vertices  int
	triangles int
}

func run(ctx context.Context, logger *zap.Logger) (stats, error) {
	rng := rand.New(rand.NewSource(*seed))
	reg := prometheus.NewRegistry()
	tr := delaunay.New(
		delaunay.WithSeed(*seed),
		delaunay.WithLogger(logger),
		delaunay.WithRegisterer(reg),
		delaunay.WithValidation(*validate),
	)

	src, err := loadSource(ctx, *source)
	if err != nil {
		return stats{}, err
	}

	var pts []r2.Point
	if src != nil {
		src = sample.Downscale(src, *maxWidth)
		pts = sample.EdgePoints(src, sample.EdgeOptions{
			BlurRadius:      *blurRadius,
			SobelThreshold:  *sobelThreshold,
			PointsThreshold: *pointsThreshold,
			MaxPoints:       *maxPoints,
		}, rng)
	} else {
		bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: float64(*size), Y: float64(*size)})
		pts = sample.Uniform(rng, *count, bounds)
	}

	hole, err := parseCoordinates(*holeCoords)
	if err != nil {
		return stats{}, err
	}
	pts = merge(hole, pts)
	logger.Info("triangulating", zap.Int("points", len(pts)), zap.Int("hole", len(hole)))

	ids, err := tr.InsertVertices(pts)
	if err != nil {
		return stats{}, errors.Wrap(err, "triangulation failed")
	}
	if len(hole) > 0 {
		if _, err := tr.AddHole(ids[:len(hole)]); err != nil {
			return stats{}, errors.Wrap(err, "cannot add hole")
		}
	}

	rest := ids[len(hole):]
	for _, i := range rng.Perm(len(rest))[:sample.Max(0, sample.Min(*deletions, len(rest)))] {
		if err := tr.DeleteVertex(rest[i]); err != nil {
			return stats{}, errors.Wrapf(err, "cannot delete vertex %d", rest[i])
		}
	}

	img, err := render.Draw(tr, render.Options{
		Width:     *size,
		Height:    *size,
		Source:    src,
		Grayscale: *grayscale,
		Wireframe: render.Wireframe(*wireframe),
		LineWidth: *lineWidth,
		IsSolid:   *isSolid,
		Noise:     *noise,
		Seed:      *seed,
	})
	if err != nil {
		return stats{}, err
	}
	if err := render.Save(*destination, img); err != nil {
		return stats{}, err
	}

	logMetrics(logger, reg)
	return stats{vertices: tr.VertexCount(), triangles: tr.TriangleCount()}, nil
}

// loadSource opens the image behind a path or an http(s) URL. An empty
// source yields a nil image.
func loadSource(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, nil
	}

	var (
		f   *os.File
		err error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		f, err = utils.DownloadImage(ctx, src)
		if err == nil {
			defer os.Remove(f.Name())
		}
	} else {
		f, err = os.Open(src)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to open source")
	}
	defer f.Close()

	img, _, err := sample.Decode(f)
	return img, err
}

func parseCoordinates(s string) ([]r2.Point, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	coords := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hole coordinate %q", field)
		}
		coords = append(coords, v)
	}
	return sample.FromCoordinates(coords)
}

// merge puts the hole boundary first and drops the points it already covers.
func merge(hole, pts []r2.Point) []r2.Point {
	seen := make(map[r2.Point]struct{}, len(hole))
	out := make([]r2.Point, 0, len(hole)+len(pts))
	for _, p := range hole {
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range pts {
		if _, ok := seen[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func logMetrics(logger *zap.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("cannot gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				logger.Info("metric", zap.String("name", mf.GetName()), zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				logger.Info("metric", zap.String("name", mf.GetName()),
					zap.Uint64("count", m.GetHistogram().GetSampleCount()),
					zap.Float64("sum", m.GetHistogram().GetSampleSum()))
			}
		}
	}
}
