package main

import (
	"fmt"

	"passgrid/pkg/acquire"
	"passgrid/pkg/config"
	"passgrid/pkg/crop"
	"passgrid/pkg/gallery"
	"passgrid/pkg/images"
	"passgrid/pkg/render"
	stdnet "passgrid/std/net"
)

// previewCellWidth is the on-screen cell width of the grid preview.
const previewCellWidth = 90

type services struct {
	loader     *images.Loader
	cropper    *crop.Cropper
	rasterizer *render.Rasterizer
	preview    *render.Renderer
	album      *gallery.Album
	editor     *acquire.Editor
	camera     acquire.Picker
}

func newServices(cfg config.Config) (*services, error) {
	album, err := gallery.Open(cfg.Gallery.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening gallery: %w", err)
	}
	loader := images.NewLoader(stdnet.FetchImage)

	opts := render.DefaultOptions()
	opts.Geometry.CellWidth = cfg.Grid.CellWidth
	small := opts
	small.Geometry.CellWidth = min(previewCellWidth, cfg.Grid.CellWidth)

	s := &services{
		loader:     loader,
		cropper:    crop.New(loader, cfg.Work.Dir),
		rasterizer: render.NewRasterizer(render.NewRenderer(loader, opts), cfg.Work.Dir),
		preview:    render.NewRenderer(loader, small),
		album:      album,
		editor:     &acquire.Editor{Loader: loader, WorkDir: cfg.Work.Dir},
	}
	if cfg.Camera.Command != "" {
		s.camera = acquire.CommandCamera{Command: cfg.Camera.Command, WorkDir: cfg.Work.Dir}
	}
	return s, nil
}
