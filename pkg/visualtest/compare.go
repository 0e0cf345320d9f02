// Package visualtest holds pixel comparison helpers and fixtures for tests that
// check rendered sheets and cropped photos.
package visualtest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// CompareResult summarizes a pixel comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen
}

// CompareOptions configures a comparison.
type CompareOptions struct {
	// Tolerance is the largest channel difference (0-255) still counted as equal.
	// JPEG round trips need 8 or more.
	Tolerance int

	// MaxDifferentPercent lets a comparison pass with up to this share of differing pixels.
	MaxDifferentPercent float64
}

func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareFiles decodes two image files of any registered format and compares them.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (CompareResult, error) {
	actual, err := imaging.Open(actualPath)
	if err != nil {
		return CompareResult{}, fmt.Errorf("opening %s: %w", actualPath, err)
	}
	expected, err := imaging.Open(expectedPath)
	if err != nil {
		return CompareResult{}, fmt.Errorf("opening %s: %w", expectedPath, err)
	}
	return Compare(actual, expected, opts)
}

// Compare walks both images pixel by pixel. Only the sizes of the bounds must agree.
func Compare(actual, expected image.Image, opts CompareOptions) (CompareResult, error) {
	ab, eb := actual.Bounds(), expected.Bounds()
	if ab.Size() != eb.Size() {
		return CompareResult{}, fmt.Errorf("size mismatch: got %v, want %v", ab.Size(), eb.Size())
	}

	res := CompareResult{TotalPixels: ab.Dx() * ab.Dy()}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			d := ColorDistance(actual.At(ab.Min.X+x, ab.Min.Y+y), expected.At(eb.Min.X+x, eb.Min.Y+y))
			res.MaxDifference = max(res.MaxDifference, d)
			if d > opts.Tolerance {
				res.DifferentPixels++
			}
		}
	}

	res.Match = res.DifferentPixels == 0
	if !res.Match && opts.MaxDifferentPercent > 0 && res.TotalPixels > 0 {
		res.Match = float64(res.DifferentPixels)*100/float64(res.TotalPixels) <= opts.MaxDifferentPercent
	}
	return res, nil
}

// ColorDistance is the largest 8-bit channel difference between a and b.
func ColorDistance(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		channelDiff(ar, br),
		channelDiff(ag, bg),
		channelDiff(ab, bb),
		channelDiff(aa, ba),
	)
}

func channelDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

// AverageColor averages the pixels of img inside r.
func AverageColor(img image.Image, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return color.RGBA{}
	}
	var sr, sg, sb, sa uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			sr += uint64(cr >> 8)
			sg += uint64(cg >> 8)
			sb += uint64(cb >> 8)
			sa += uint64(ca >> 8)
		}
	}
	n := uint64(r.Dx() * r.Dy())
	return color.RGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), uint8(sa / n)}
}
