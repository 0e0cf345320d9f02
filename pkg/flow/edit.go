package flow

import (
	"context"
	"log/slog"
	"sync"

	"passgrid/pkg/imageref"
	"passgrid/pkg/task"
)

const msgCropFailed = "Error cropping image. Please try again."

// Cropper cuts the passport rectangle out of an image.
type Cropper interface {
	Crop(ctx context.Context, ref imageref.Ref) (imageref.Ref, error)
}

// EditScreen shows the acquired image, optionally crops it, and forwards it to the grid.
type EditScreen struct {
	cropper Cropper
	nav     Navigator
	alerts  Alerter
	log     *slog.Logger

	OnChange func()

	mu    sync.Mutex
	image imageref.Ref
	busy  busy
}

type EditDeps struct {
	Cropper Cropper
	Nav     Navigator
	Alerts  Alerter
	Log     *slog.Logger
}

func NewEditScreen(d EditDeps) *EditScreen {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &EditScreen{cropper: d.Cropper, nav: d.Nav, alerts: d.Alerts, log: log}
}

// Enter adopts the handoff's image as current state.
func (s *EditScreen) Enter(h Handoff) {
	s.mu.Lock()
	s.image = h.ImageRef
	s.mu.Unlock()
	notify(s.OnChange)
}

func (s *EditScreen) Image() imageref.Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// Loading reports whether a crop is in flight.
func (s *EditScreen) Loading() bool { return s.busy.get() }

// CanProceed reports whether the grid button is enabled.
func (s *EditScreen) CanProceed() bool {
	return !s.Image().IsZero() && !s.Loading()
}

// Crop replaces the current image with its passport crop.
func (s *EditScreen) Crop(ctx context.Context) task.Result[imageref.Ref] {
	src := s.Image()
	if src.IsZero() {
		return task.Failed[imageref.Ref](ErrNoImage)
	}
	if !s.busy.acquire() {
		return task.Failed[imageref.Ref](ErrBusy)
	}
	notify(s.OnChange)
	defer func() {
		s.busy.release()
		notify(s.OnChange)
	}()

	r := task.Run(ctx, func(ctx context.Context) (imageref.Ref, error) {
		return s.cropper.Crop(ctx, src)
	})
	switch {
	case r.IsCancelled():
		return r
	case r.IsFailed():
		s.log.Error("crop failed", "ref", src, "err", r.Err)
		s.alerts.Alert("Error", msgCropFailed)
		return r
	}

	s.mu.Lock()
	s.image = r.Value
	s.mu.Unlock()
	s.log.Info("image cropped", "from", src, "to", r.Value)
	return r
}

// ProceedToGrid forwards the current image unchanged.
func (s *EditScreen) ProceedToGrid() error {
	if s.Loading() {
		return ErrBusy
	}
	return s.nav.Navigate(ScreenGrid, Handoff{ImageRef: s.Image()})
}
