// Package compositor turns a decoded image into a frame of exactly the
// output size: the image scaled down (or up) to fit while preserving
// aspect ratio, centered over letterbox bars colored by the configured
// fill policy.
package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/pyframe/pyframe/internal/config"
)

// Fit computes the centered destination rectangle for a w×h image
// scaled to fit inside a W×H surface without cropping. Deterministic
// for a given input.
func Fit(w, h, targetW, targetH int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rect(0, 0, targetW, targetH)
	}

	scaleW := float64(targetW) / float64(w)
	scaleH := float64(targetH) / float64(h)
	scale := min(scaleW, scaleH)

	scaledW := int(float64(w) * scale)
	scaledH := int(float64(h) * scale)

	x := (targetW - scaledW) / 2
	y := (targetH - scaledH) / 2
	return image.Rect(x, y, x+scaledW, y+scaledH)
}

// FillColor picks the letterbox bar color for img under the given
// policy.
func FillColor(img image.Image, fill config.FillType) color.RGBA {
	switch fill {
	case config.FillWhite:
		return color.RGBA{255, 255, 255, 255}
	case config.FillTopPixel:
		return rowAverage(img, img.Bounds().Min.Y)
	case config.FillSidePixel:
		return columnAverage(img, img.Bounds().Min.X)
	case config.FillClosestBW:
		if averageLuminance(img) < 128 {
			return color.RGBA{0, 0, 0, 255}
		}
		return color.RGBA{255, 255, 255, 255}
	case config.FillBlack:
		fallthrough
	default:
		return color.RGBA{0, 0, 0, 255}
	}
}

// Compose renders img onto a targetW×targetH canvas: bars filled
// first, then the scaled image blitted centered on top with CatmullRom
// resampling.
func Compose(img image.Image, targetW, targetH int, fill config.FillType) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(FillColor(img, fill)), image.Point{}, draw.Src)

	dstRect := Fit(img.Bounds().Dx(), img.Bounds().Dy(), targetW, targetH)
	draw.CatmullRom.Scale(dst, dstRect, img, img.Bounds(), draw.Over, nil)
	return dst
}

func rowAverage(img image.Image, y int) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, n uint64
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		pr, pg, pb, _ := img.At(x, y).RGBA()
		r += uint64(pr >> 8)
		g += uint64(pg >> 8)
		b += uint64(pb >> 8)
		n++
	}
	if n == 0 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

func columnAverage(img image.Image, x int) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		pr, pg, pb, _ := img.At(x, y).RGBA()
		r += uint64(pr >> 8)
		g += uint64(pg >> 8)
		b += uint64(pb >> 8)
		n++
	}
	if n == 0 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

// averageLuminance samples the image on a coarse grid; exact per-pixel
// averaging gains nothing for a black-or-white decision.
func averageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	stepX := max(bounds.Dx()/64, 1)
	stepY := max(bounds.Dy()/64, 1)

	var sum float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
