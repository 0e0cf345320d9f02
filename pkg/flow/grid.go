package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"passgrid/pkg/gallery"
	"passgrid/pkg/imageref"
	"passgrid/pkg/layout"
	"passgrid/pkg/permission"
	"passgrid/pkg/task"
)

const (
	LabelSave   = "Save Grid"
	LabelSaving = "Saving..."

	msgGalleryPermission = "Please grant permission to save photos to your gallery."
	msgSaved             = "Grid saved to your gallery!"
	msgSaveFailed        = "Failed to save grid. Please try again."
)

// Rasterizer captures a composed grid as a flat image file.
type Rasterizer interface {
	Capture(ctx context.Context, grid layout.Grid) (imageref.Ref, error)
}

// AssetWriter creates a gallery asset from a file.
type AssetWriter interface {
	CreateAsset(ctx context.Context, ref imageref.Ref) (gallery.Asset, error)
}

// GridScreen tiles the image into the selected layout and saves the sheet.
type GridScreen struct {
	perms      permission.Requester
	rasterizer Rasterizer
	gallery    AssetWriter
	alerts     Alerter
	log        *slog.Logger
	fallback   imageref.Ref

	OnChange func()

	mu     sync.Mutex
	layout layout.Layout
	image  imageref.Ref
	busy   busy
}

type GridDeps struct {
	Permissions permission.Requester
	Rasterizer  Rasterizer
	Gallery     AssetWriter
	Alerts      Alerter
	Log         *slog.Logger
	// Fallback fills cells when no image is set. Defaults to imageref.Placeholder.
	Fallback imageref.Ref
}

func NewGridScreen(d GridDeps) *GridScreen {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	fallback := d.Fallback
	if fallback.IsZero() {
		fallback = imageref.Placeholder
	}
	return &GridScreen{
		perms:      d.Permissions,
		rasterizer: d.Rasterizer,
		gallery:    d.Gallery,
		alerts:     d.Alerts,
		log:        log,
		fallback:   fallback,
		layout:     layout.Default,
	}
}

// Enter adopts the handoff's image. The layout resets to the default.
func (s *GridScreen) Enter(h Handoff) {
	s.mu.Lock()
	s.image = h.ImageRef
	s.layout = layout.Default
	s.mu.Unlock()
	notify(s.OnChange)
}

func (s *GridScreen) Image() imageref.Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

func (s *GridScreen) Layout() layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// SelectLayout switches the grid. It has no side effect besides recomposition.
func (s *GridScreen) SelectLayout(l layout.Layout) error {
	if !l.Valid() {
		return layout.ErrUnknownLayout
	}
	s.mu.Lock()
	changed := s.layout != l
	s.layout = l
	s.mu.Unlock()
	if changed {
		notify(s.OnChange)
	}
	return nil
}

// Grid composes the current layout and image.
func (s *GridScreen) Grid() layout.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return layout.Compose(s.layout, s.image, s.fallback)
}

// Saving reports whether a save is in flight.
func (s *GridScreen) Saving() bool { return s.busy.get() }

// SaveLabel is the caption of the save control.
func (s *GridScreen) SaveLabel() string {
	if s.Saving() {
		return LabelSaving
	}
	return LabelSave
}

// Save rasterizes the current grid and writes it to the gallery.
func (s *GridScreen) Save(ctx context.Context) (res task.Result[gallery.Asset]) {
	if !s.busy.acquire() {
		return task.Failed[gallery.Asset](ErrBusy)
	}
	notify(s.OnChange)
	defer func() {
		// saving resets on every exit, panics included.
		if p := recover(); p != nil {
			s.log.Error("save panicked", "panic", p)
			s.alerts.Alert("Error", msgSaveFailed)
			res = task.Failed[gallery.Asset](errors.New("save panicked"))
		}
		s.busy.release()
		notify(s.OnChange)
	}()

	if err := permission.Check(ctx, s.perms, permission.GalleryWrite); err != nil {
		if errors.Is(err, permission.ErrDenied) {
			s.alerts.Alert("Permission Required", msgGalleryPermission)
		} else {
			s.log.Error("permission request failed", "err", err)
			s.alerts.Alert("Error", msgSaveFailed)
		}
		return task.Failed[gallery.Asset](err)
	}

	grid := s.Grid()
	r := task.Run(ctx, func(ctx context.Context) (gallery.Asset, error) {
		file, err := s.rasterizer.Capture(ctx, grid)
		if err != nil {
			return gallery.Asset{}, err
		}
		return s.gallery.CreateAsset(ctx, file)
	})
	switch {
	case r.IsCancelled():
		return r
	case r.IsFailed():
		s.log.Error("saving grid", "layout", grid.Layout, "err", r.Err)
		s.alerts.Alert("Error", msgSaveFailed)
		return r
	}

	s.log.Info("grid saved", "layout", grid.Layout, "asset", r.Value.ID)
	s.alerts.Alert("Success", msgSaved)
	return r
}
