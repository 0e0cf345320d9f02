package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"

	"passgrid/pkg/imageref"
	"passgrid/pkg/layout"
)

// Rasterizer captures a composed grid as a flat JPEG file.
type Rasterizer struct {
	renderer *Renderer
	workDir  string

	Quality int
}

// NewRasterizer writes captures into workDir at full JPEG quality.
func NewRasterizer(renderer *Renderer, workDir string) *Rasterizer {
	return &Rasterizer{renderer: renderer, workDir: workDir, Quality: 100}
}

// Capture renders grid and returns a reference to the written JPEG.
func (r *Rasterizer) Capture(ctx context.Context, grid layout.Grid) (imageref.Ref, error) {
	img, err := r.renderer.Render(ctx, grid)
	if err != nil {
		return "", fmt.Errorf("rendering grid: %w", err)
	}
	if err := os.MkdirAll(r.workDir, 0o755); err != nil {
		return "", fmt.Errorf("creating work dir: %w", err)
	}
	path := filepath.Join(r.workDir, "grid-"+uuid.NewString()+".jpg")
	if err := gg.SaveJPG(path, img, r.Quality); err != nil {
		return "", fmt.Errorf("saving capture: %w", err)
	}
	return imageref.FromPath(path), nil
}
