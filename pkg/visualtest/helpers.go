package visualtest

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// Quadrants returns a w x h image whose left half is left and right half is right.
// Cover-fit tests use it to see which part of a photo survived cropping.
func Quadrants(w, h int, left, right color.Color) *image.NRGBA {
	img := imaging.New(w, h, left)
	return imaging.Paste(img, imaging.New(w-w/2, h, right), image.Pt(w/2, 0))
}

// WriteJPEG saves img as a quality 100 JPEG under dir and returns the path.
func WriteJPEG(dir, name string, img image.Image) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(100)); err != nil {
		return "", err
	}
	return path, nil
}

// WritePNG saves img as PNG under dir and returns the path.
func WritePNG(dir, name string, img image.Image) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, path); err != nil {
		return "", err
	}
	return path, nil
}
