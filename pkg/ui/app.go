// Package ui is the desktop front end. One window swaps between the
// acquisition, edit and grid views as the flow advances.
package ui

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"passgrid/pkg/acquire"
	"passgrid/pkg/applog"
	"passgrid/pkg/flow"
	"passgrid/pkg/images"
	"passgrid/pkg/permission"
	"passgrid/pkg/render"
)

// Services are the non-UI collaborators of the window.
type Services struct {
	Loader     *images.Loader
	Cropper    flow.Cropper
	Rasterizer flow.Rasterizer
	Gallery    flow.AssetWriter
	// Preview paints the on-screen grid, usually at a smaller cell width than Rasterizer.
	Preview *render.Renderer
	// Editor applies the picker's edit step to library and camera results. Optional.
	Editor *acquire.Editor
	// Camera is nil when no capture command is configured.
	Camera acquire.Picker
	// Permissions defaults to a session that asks through confirm dialogs.
	Permissions permission.Requester
	Log         *slog.Logger
}

// Window owns the controller and the three views.
type Window struct {
	win   fyne.Window
	ctrl  *flow.Controller
	perms permission.Requester
	views map[flow.Screen]view
	log   *slog.Logger

	ctx    context.Context
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWindow builds the flow inside a new window of a.
func NewWindow(ctx context.Context, a fyne.App, svc Services) *Window {
	w := a.NewWindow("PassGrid")
	w.Resize(fyne.NewSize(520, 820))

	perms := svc.Permissions
	if perms == nil {
		perms = permission.NewSession(confirmPrompt(w))
	}
	var library acquire.Picker = filePicker{win: w}
	camera := svc.Camera
	if svc.Editor != nil {
		library = acquire.WithEditing(library, svc.Editor)
		if camera != nil {
			camera = acquire.WithEditing(camera, svc.Editor)
		}
	}

	alerts := dialogAlerter{win: w}
	ctrl := flow.NewController()
	acq := flow.NewAcquisitionScreen(flow.AcquisitionDeps{
		Permissions: perms,
		Library:     library,
		Camera:      camera,
		Nav:         ctrl,
		Alerts:      alerts,
		Log:         applog.WithComponent(svc.Log, "acquisition"),
	})
	edit := flow.NewEditScreen(flow.EditDeps{
		Cropper: svc.Cropper,
		Nav:     ctrl,
		Alerts:  alerts,
		Log:     applog.WithComponent(svc.Log, "edit"),
	})
	grid := flow.NewGridScreen(flow.GridDeps{
		Permissions: perms,
		Rasterizer:  svc.Rasterizer,
		Gallery:     svc.Gallery,
		Alerts:      alerts,
		Log:         applog.WithComponent(svc.Log, "grid"),
	})

	log := applog.WithComponent(svc.Log, "ui")
	pv := previewer{loader: svc.Loader, log: log}
	ww := &Window{
		win:   w,
		ctrl:  ctrl,
		perms: perms,
		log:   log,
		ctx:   ctx,
	}
	ww.views = map[flow.Screen]view{
		flow.ScreenAcquisition: newAcquisitionView(acq),
		flow.ScreenEdit:        newEditView(edit, pv, log),
		flow.ScreenGrid:        newGridView(grid, svc.Preview, log, ww.restart),
	}
	ctrl.OnEnter(ww.show)
	return ww
}

// show cancels the work of the screen being left and swaps in the next view.
func (w *Window) show(s flow.Screen, h flow.Handoff) {
	v, ok := w.views[s]
	if !ok {
		w.log.Error("no view for screen", "screen", s)
		return
	}

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	var ctx context.Context
	ctx, w.cancel = context.WithCancel(w.ctx)
	w.mu.Unlock()

	w.log.Debug("entering screen", "screen", s)
	fyne.Do(func() { w.win.SetContent(v.content()) })
	v.enter(ctx, h)
}

// restart clears remembered permission answers and returns to acquisition.
func (w *Window) restart() {
	if r, ok := w.perms.(interface{ Reset() }); ok {
		r.Reset()
	}
	w.ctrl.Restart()
}

// Start shows the acquisition screen.
func (w *Window) Start() {
	w.win.Show()
	go w.show(flow.ScreenAcquisition, flow.Handoff{})
}

func (w *Window) close() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()
}

// Run opens the window and blocks until it is closed or ctx ends.
func Run(ctx context.Context, svc Services) error {
	a := app.NewWithID("io.passgrid.app")
	w := NewWindow(ctx, a, svc)
	defer w.close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-done:
		}
	}()

	w.Start()
	a.Run()
	return nil
}
