package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// Noise applies a noise factor, like adobe's grain filter.
func Noise(amount int, pxl image.Image, r *rand.Rand) *image.NRGBA {
	b := pxl.Bounds()
	noiseImg := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for x := 0; x < b.Dx(); x++ {
		for y := 0; y < b.Dy(); y++ {
			noise := (r.Float64() - 0.1) * float64(amount)
			cr, cg, cb, ca := pxl.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rf, gf, bf := float64(cr>>8), float64(cg>>8), float64(cb>>8)
			// Keep the pixel untouched when the noise would overflow a channel.
			if math.Abs(rf+noise) < 255 && math.Abs(gf+noise) < 255 && math.Abs(bf+noise) < 255 {
				rf += noise
				gf += noise
				bf += noise
			}
			noiseImg.Set(x, y, color.RGBA{R: clamp(rf), G: clamp(gf), B: clamp(bf), A: uint8(ca >> 8)})
		}
	}
	return noiseImg
}

func clamp(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}
