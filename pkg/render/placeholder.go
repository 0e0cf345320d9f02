package render

import (
	"image"

	"github.com/fogleman/gg"
)

// Placeholder draws a neutral head-and-shoulders silhouette of size w x h.
func Placeholder(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	dc.SetRGB(0.85, 0.87, 0.9)
	dc.Clear()

	dc.SetRGB(0.55, 0.58, 0.63)
	// Shoulders
	dc.DrawEllipse(fw/2, fh*1.02, fw*0.42, fh*0.3)
	dc.Fill()
	// Neck
	dc.DrawRectangle(fw*0.43, fh*0.5, fw*0.14, fh*0.25)
	dc.Fill()
	// Head
	dc.DrawEllipse(fw/2, fh*0.4, fw*0.2, fh*0.19)
	dc.Fill()

	return dc.Image()
}
