package acquire

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"passgrid/pkg/imageref"
	"passgrid/pkg/task"
)

// ImageLoader decodes an image reference.
type ImageLoader interface {
	Load(ctx context.Context, ref imageref.Ref) (image.Image, error)
}

// Editor performs the picker's built-in edit step: a centred crop to the
// requested aspect, re-encoded at the requested quality.
type Editor struct {
	Loader  ImageLoader
	WorkDir string
}

// Apply returns asset unchanged when it already has the aspect.
func (e *Editor) Apply(ctx context.Context, asset Asset, opts Options) (Asset, error) {
	src, err := e.Loader.Load(ctx, asset.Ref)
	if err != nil {
		return Asset{}, fmt.Errorf("loading %s: %w", asset.Ref, err)
	}
	b := src.Bounds()
	w, h := AspectCrop(b.Dx(), b.Dy(), opts.Aspect)
	if w == b.Dx() && h == b.Dy() {
		return Asset{Ref: asset.Ref, Width: w, Height: h}, nil
	}

	out := imaging.CropCenter(src, w, h)
	if err := os.MkdirAll(e.WorkDir, 0o755); err != nil {
		return Asset{}, fmt.Errorf("creating work dir: %w", err)
	}
	path := filepath.Join(e.WorkDir, "edit-"+uuid.NewString()+".jpg")
	if err := imaging.Save(out, path, imaging.JPEGQuality(opts.JPEGQuality())); err != nil {
		return Asset{}, fmt.Errorf("saving edit: %w", err)
	}
	return Asset{Ref: imageref.FromPath(path), Width: w, Height: h}, nil
}

// AspectCrop returns the largest w x h inside width x height with aspect a.
func AspectCrop(width, height int, a Aspect) (int, int) {
	if a.W <= 0 || a.H <= 0 || width <= 0 || height <= 0 {
		return width, height
	}
	// Compare width/height with a.W/a.H without floating point.
	if width*a.H > height*a.W {
		return height * a.W / a.H, height
	}
	return width, width * a.H / a.W
}

// WithEditing wraps p so that, when opts.AllowsEditing is set, the first
// picked asset goes through e before it is returned.
func WithEditing(p Picker, e *Editor) Picker {
	return PickerFunc(func(ctx context.Context, opts Options) task.Result[[]Asset] {
		r := p.Launch(ctx, opts)
		if !r.OK() || !opts.AllowsEditing || len(r.Value) == 0 {
			return r
		}
		edited, err := e.Apply(ctx, r.Value[0], opts)
		if err != nil {
			return task.Failed[[]Asset](err)
		}
		return task.Succeeded([]Asset{edited})
	})
}
