package render

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"passgrid/pkg/imageref"
	"passgrid/pkg/layout"
)

// ImageLoader decodes an image reference.
type ImageLoader interface {
	Load(ctx context.Context, ref imageref.Ref) (image.Image, error)
}

// Options controls how a grid is painted.
type Options struct {
	Geometry    layout.Geometry
	Background  color.Color
	BorderColor color.Color
	BorderWidth float64
}

// DefaultOptions paints white paper with thin black cut lines around each cell.
func DefaultOptions() Options {
	return Options{
		Geometry:    layout.DefaultGeometry(),
		Background:  color.White,
		BorderColor: color.Black,
		BorderWidth: 0.5,
	}
}

// Renderer paints a composed grid onto a bitmap.
type Renderer struct {
	loader ImageLoader
	opts   Options
}

func NewRenderer(loader ImageLoader, opts Options) *Renderer {
	return &Renderer{loader: loader, opts: opts}
}

// Options returns the renderer's paint options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render paints every cell of grid with its image, cover-fitted to the cell.
func (r *Renderer) Render(ctx context.Context, grid layout.Grid) (image.Image, error) {
	if !grid.Layout.Valid() || len(grid.Cells) == 0 {
		return nil, fmt.Errorf("%w: %q with %d cells", layout.ErrUnknownLayout, grid.Layout, len(grid.Cells))
	}
	frame := grid.Arrange(r.opts.Geometry)

	dc := gg.NewContext(frame.Width, frame.Height)
	dc.SetColor(r.opts.Background)
	dc.Clear()

	// Every cell shares one source, so each distinct ref is fitted once.
	fitted := make(map[imageref.Ref]image.Image)
	for _, box := range frame.Boxes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, ok := fitted[box.Cell.Image]
		if !ok {
			var err error
			img, err = r.cellImage(ctx, box.Cell.Image, box.Width, box.Height)
			if err != nil {
				return nil, err
			}
			fitted[box.Cell.Image] = img
		}
		r.drawCell(dc, box, img)
	}

	return dc.Image(), nil
}

func (r *Renderer) cellImage(ctx context.Context, ref imageref.Ref, w, h int) (image.Image, error) {
	if ref.Kind() == imageref.KindPlaceholder {
		return Placeholder(w, h), nil
	}
	src, err := r.loader.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref, err)
	}
	return Cover(src, w, h), nil
}

func (r *Renderer) drawCell(dc *gg.Context, box layout.Box, img image.Image) {
	dc.DrawImage(img, box.X, box.Y)

	if r.opts.BorderWidth <= 0 {
		return
	}
	half := r.opts.BorderWidth / 2
	dc.SetColor(r.opts.BorderColor)
	dc.SetLineWidth(r.opts.BorderWidth)
	dc.DrawRectangle(float64(box.X)+half, float64(box.Y)+half,
		float64(box.Width)-r.opts.BorderWidth, float64(box.Height)-r.opts.BorderWidth)
	dc.Stroke()
}

// Cover scales src to fill w x h and crops the overflow around the center.
func Cover(src image.Image, w, h int) image.Image {
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
}
