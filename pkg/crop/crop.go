// Package crop cuts the passport rectangle out of a photo.
package crop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"passgrid/pkg/imageref"
)

// Rect is the fixed passport crop: origin (0,0), 1000x1333 pixels.
var Rect = image.Rect(0, 0, 1000, 1333)

// ErrOutOfBounds is returned when the source image does not contain the crop rectangle.
var ErrOutOfBounds = errors.New("crop rectangle exceeds image bounds")

// ImageLoader decodes an image reference.
type ImageLoader interface {
	Load(ctx context.Context, ref imageref.Ref) (image.Image, error)
}

// Cropper applies a fixed rectangle and writes the result as a JPEG.
type Cropper struct {
	loader  ImageLoader
	workDir string

	Rect    image.Rectangle
	Quality int
}

// New creates a Cropper writing into workDir with the passport rectangle at full quality.
func New(loader ImageLoader, workDir string) *Cropper {
	return &Cropper{
		loader:  loader,
		workDir: workDir,
		Rect:    Rect,
		Quality: 100,
	}
}

// Crop returns a reference to a new JPEG holding the cropped region of ref.
func (c *Cropper) Crop(ctx context.Context, ref imageref.Ref) (imageref.Ref, error) {
	src, err := c.loader.Load(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", ref, err)
	}

	b := src.Bounds()
	r := c.Rect.Add(b.Min)
	if !r.In(b) {
		return "", fmt.Errorf("%w: image is %dx%d, crop is %dx%d at (%d,%d)",
			ErrOutOfBounds, b.Dx(), b.Dy(), c.Rect.Dx(), c.Rect.Dy(), c.Rect.Min.X, c.Rect.Min.Y)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := imaging.Crop(src, r)

	if err := os.MkdirAll(c.workDir, 0o755); err != nil {
		return "", fmt.Errorf("creating work dir: %w", err)
	}
	path := filepath.Join(c.workDir, "crop-"+uuid.NewString()+".jpg")
	if err := imaging.Save(out, path, imaging.JPEGQuality(c.Quality)); err != nil {
		return "", fmt.Errorf("saving crop: %w", err)
	}
	return imageref.FromPath(path), nil
}
