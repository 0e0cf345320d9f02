package ui

import (
	"context"
	"image"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"golang.org/x/image/draw"

	"passgrid/pkg/images"
	"passgrid/pkg/imageref"
)

const previewMax = 640

// fit scales src down to fit within maxW x maxH, keeping its aspect.
func fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// previewer loads references off the UI thread and shows them in a canvas image.
type previewer struct {
	loader *images.Loader
	log    *slog.Logger
}

func (p previewer) show(ctx context.Context, ref imageref.Ref, target *canvas.Image) {
	if ref.IsZero() {
		fyne.Do(func() {
			target.Image = nil
			target.Refresh()
		})
		return
	}
	src, err := p.loader.Load(ctx, ref)
	if err != nil {
		p.log.Warn("preview failed", "ref", ref, "err", err)
		return
	}
	scaled := fit(src, previewMax, previewMax)
	fyne.Do(func() {
		target.Image = scaled
		target.Refresh()
	})
}

func newPreviewImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(300, 400))
	return img
}
