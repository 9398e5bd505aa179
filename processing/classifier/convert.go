package classifier

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// toRGBA copies any decodable bitmap into an RGBA buffer anchored at (0,0).
// Malformed images that panic while being read are reported as errors.
func toRGBA(img image.Image) (out *image.RGBA, err error) {
	if img == nil {
		return nil, errors.New("nil image")
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("malformed image: %v", r)
		}
	}()

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image bounds %v", b)
	}

	out = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	return out, nil
}

// tensor scales src to size x size and returns a normalised CHW vector.
func tensor(src *image.RGBA, size int, mean, std [3]float64) []float32 {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	plane := size * size
	out := make([]float32, 3*plane)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := dst.PixOffset(x, y)
			p := y*size + x
			for c := 0; c < 3; c++ {
				v := float64(dst.Pix[i+c]) / 255
				out[c*plane+p] = float32((v - mean[c]) / std[c])
			}
		}
	}

	return out
}
