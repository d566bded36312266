package sample

import (
	"image"
	"math"
)

var (
	kernelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	kernelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Blur applies a box blur of the given radius to a copy of the red channel
// of a grayscale image.
func Blur(src *image.NRGBA, radius int) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	if radius <= 0 {
		return dst
	}
	matrix := setBlurMatrix(radius)
	convolutionFilter(matrix, dst, float64(len(matrix)))
	return dst
}

// Sobel computes the gradient magnitude of a grayscale image. Magnitudes not
// exceeding threshold are cleared; the result is stored in every color channel.
func Sobel(src *image.NRGBA, threshold float64) *image.NRGBA {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(src.Bounds())

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumX, sumY int
			for row := -1; row <= 1; row++ {
				sy := Min(height-1, Max(0, y+row))
				for col := -1; col <= 1; col++ {
					sx := Min(width-1, Max(0, x+col))
					v := int(src.Pix[(sx+sy*width)<<2])
					sumX += v * kernelX[row+1][col+1]
					sumY += v * kernelY[row+1][col+1]
				}
			}

			var m uint8
			if magnitude := math.Hypot(float64(sumX), float64(sumY)); magnitude > threshold {
				m = uint8(Min(255, magnitude))
			}
			i := (x + y*width) << 2
			dst.Pix[i] = m
			dst.Pix[i+1] = m
			dst.Pix[i+2] = m
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}

// convolutionFilter applies a mathematical operation over the source image by taking
// the matrix table as input parameter and convolving the matrix values over the pixels data.
func convolutionFilter(matrix []float64, img *image.NRGBA, divisor float64) {
	var (
		width  = img.Bounds().Dx()
		height = img.Bounds().Dy()
		size   = int(math.Sqrt(float64(len(matrix))))
		dim    = size / 2
	)

	if divisor != 1 {
		for k := range matrix {
			matrix[k] /= divisor
		}
	}
	channel := make([]int, len(img.Pix)/4)
	for i := range channel {
		channel[i] = int(img.Pix[i*4])
	}

	for y := 0; y < height; y++ {
		istep := y * width

		for x := 0; x < width; x++ {
			var r float64

			for row := -dim; row <= dim; row++ {
				sy := y + row
				jstep := sy * width
				kstep := (row + dim) * size

				if sy >= 0 && sy < height {
					for col := -dim; col <= dim; col++ {
						sx := x + col
						if sx >= 0 && sx < width {
							r += float64(channel[sx+jstep]) * matrix[(col+dim)+kstep]
						}
					}
				}
			}

			v := uint8(Max(0, Min(255, int(r))))
			i := (x + istep) << 2
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
		}
	}
}

// setBlurMatrix populates a matrix table with values used in conjunction with the convolution filter operator.
func setBlurMatrix(size int) []float64 {
	var (
		side   = size*2 + 1
		length = side * side
		matrix = make([]float64, length)
	)

	for i := 0; i < length; i++ {
		matrix[i] = 1
	}

	return matrix
}
