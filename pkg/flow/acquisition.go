package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"passgrid/pkg/acquire"
	"passgrid/pkg/imageref"
	"passgrid/pkg/permission"
	"passgrid/pkg/task"
)

const (
	msgLibraryPermission = "Sorry, we need camera roll permissions to make this work!"
	msgCameraPermission  = "Sorry, we need camera permissions to make this work!"
	msgPickFailed        = "Error picking image. Please try again."
	msgCaptureFailed     = "Error taking photo. Please try again."
)

// AcquisitionScreen obtains one image from the library or the camera and moves
// on to the edit screen.
type AcquisitionScreen struct {
	perms   permission.Requester
	library acquire.Picker
	camera  acquire.Picker
	nav     Navigator
	alerts  Alerter
	log     *slog.Logger

	// OnChange runs after the screen's state changes.
	OnChange func()

	mu    sync.Mutex
	image imageref.Ref
	busy  busy
}

// AcquisitionDeps are the collaborators of an AcquisitionScreen.
type AcquisitionDeps struct {
	Permissions permission.Requester
	Library     acquire.Picker
	Camera      acquire.Picker
	Nav         Navigator
	Alerts      Alerter
	Log         *slog.Logger
}

func NewAcquisitionScreen(d AcquisitionDeps) *AcquisitionScreen {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &AcquisitionScreen{
		perms:   d.Permissions,
		library: d.Library,
		camera:  d.Camera,
		nav:     d.Nav,
		alerts:  d.Alerts,
		log:     log,
	}
}

// Mount asks for photo library access when the screen first appears.
func (s *AcquisitionScreen) Mount(ctx context.Context) error {
	if err := permission.Check(ctx, s.perms, permission.MediaLibrary); err != nil {
		s.log.Info("media library permission not granted", "err", err)
		s.alerts.Alert("Permission Required", msgLibraryPermission)
		return err
	}
	return nil
}

// Image returns the last acquired reference, if any.
func (s *AcquisitionScreen) Image() imageref.Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// Busy reports whether a picker is open.
func (s *AcquisitionScreen) Busy() bool { return s.busy.get() }

// PickFromLibrary opens the photo library picker.
func (s *AcquisitionScreen) PickFromLibrary(ctx context.Context) task.Result[imageref.Ref] {
	return s.acquire(ctx, s.library, permission.MediaLibrary, msgLibraryPermission, msgPickFailed)
}

// CaptureFromCamera opens the camera.
func (s *AcquisitionScreen) CaptureFromCamera(ctx context.Context) task.Result[imageref.Ref] {
	return s.acquire(ctx, s.camera, permission.Camera, msgCameraPermission, msgCaptureFailed)
}

func (s *AcquisitionScreen) acquire(ctx context.Context, p acquire.Picker, kind permission.Kind, deniedMsg, failedMsg string) task.Result[imageref.Ref] {
	if !s.busy.acquire() {
		return task.Failed[imageref.Ref](ErrBusy)
	}
	notify(s.OnChange)
	defer func() {
		s.busy.release()
		notify(s.OnChange)
	}()

	if err := permission.Check(ctx, s.perms, kind); err != nil {
		if errors.Is(err, permission.ErrDenied) {
			s.alerts.Alert("Permission Required", deniedMsg)
		} else {
			s.log.Error("permission request failed", "kind", kind, "err", err)
			s.alerts.Alert("Error", failedMsg)
		}
		return task.Failed[imageref.Ref](err)
	}

	if p == nil {
		s.alerts.Alert("Error", failedMsg)
		return task.Failed[imageref.Ref](acquire.ErrNoCamera)
	}

	r := acquire.First(p.Launch(ctx, acquire.PassportOptions()))
	switch {
	case r.IsCancelled():
		return r
	case r.IsFailed():
		s.log.Error("acquisition failed", "kind", kind, "err", r.Err)
		s.alerts.Alert("Error", failedMsg)
		return r
	}

	s.mu.Lock()
	s.image = r.Value
	s.mu.Unlock()

	if err := s.nav.Navigate(ScreenEdit, Handoff{ImageRef: r.Value}); err != nil {
		s.log.Error("navigating to edit", "err", err)
		s.alerts.Alert("Error", failedMsg)
		return task.Failed[imageref.Ref](err)
	}
	s.log.Info("image acquired", "kind", kind, "ref", r.Value)
	return r
}
