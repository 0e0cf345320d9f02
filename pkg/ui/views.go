package ui

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"passgrid/pkg/flow"
	"passgrid/pkg/imageref"
	"passgrid/pkg/layout"
	"passgrid/pkg/render"
)

// view is one screen's widget tree.
type view interface {
	// enter runs off the UI thread after the controller moves to the screen.
	enter(ctx context.Context, h flow.Handoff)
	content() fyne.CanvasObject
}

// scope holds the context of the screen currently shown.
type scope struct {
	mu  sync.Mutex
	ctx context.Context
}

func (s *scope) set(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

func (s *scope) get() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

type acquisitionView struct {
	screen  *flow.AcquisitionScreen
	scope   scope
	mounted sync.Once

	library *widget.Button
	camera  *widget.Button
	root    fyne.CanvasObject
}

func newAcquisitionView(s *flow.AcquisitionScreen) *acquisitionView {
	v := &acquisitionView{screen: s}
	v.library = widget.NewButton("Choose from Library", func() {
		go v.screen.PickFromLibrary(v.scope.get())
	})
	v.camera = widget.NewButton("Take Photo", func() {
		go v.screen.CaptureFromCamera(v.scope.get())
	})
	hint := widget.NewLabelWithStyle("Pick a portrait photo or take a new one.", fyne.TextAlignCenter, fyne.TextStyle{})

	s.OnChange = func() { fyne.Do(v.refresh) }
	v.root = container.NewCenter(container.NewVBox(heading("Passport Photo"), hint, v.library, v.camera))
	return v
}

func (v *acquisitionView) refresh() {
	busy := v.screen.Busy()
	setEnabled(v.library, !busy)
	setEnabled(v.camera, !busy)
}

func (v *acquisitionView) enter(ctx context.Context, _ flow.Handoff) {
	v.scope.set(ctx)
	v.mounted.Do(func() { _ = v.screen.Mount(ctx) })
}

func (v *acquisitionView) content() fyne.CanvasObject { return v.root }

type editView struct {
	screen  *flow.EditScreen
	preview previewer
	log     *slog.Logger
	scope   scope

	mu    sync.Mutex
	shown imageref.Ref

	image    *canvas.Image
	crop     *widget.Button
	proceed  *widget.Button
	activity *widget.Activity
	overlay  *fyne.Container
	root     fyne.CanvasObject
}

func newEditView(s *flow.EditScreen, p previewer, log *slog.Logger) *editView {
	v := &editView{screen: s, preview: p, log: log, image: newPreviewImage()}
	v.crop = widget.NewButton("Crop to Passport Size", func() {
		go v.screen.Crop(v.scope.get())
	})
	v.proceed = widget.NewButton("Continue to Grid", func() {
		go func() {
			if err := v.screen.ProceedToGrid(); err != nil {
				v.log.Warn("cannot continue to grid", "err", err)
			}
		}()
	})
	v.proceed.Importance = widget.HighImportance

	v.activity = widget.NewActivity()
	v.overlay = container.NewCenter(container.NewVBox(v.activity, widget.NewLabel("Processing image...")))
	v.overlay.Hide()

	s.OnChange = func() {
		v.reload()
		fyne.Do(v.refresh)
	}
	body := container.NewBorder(heading("Edit Photo"), container.NewVBox(v.crop, v.proceed), nil, nil, v.image)
	v.root = container.NewStack(body, v.overlay)
	return v
}

// reload refreshes the preview when the screen's image changed.
func (v *editView) reload() {
	ref := v.screen.Image()
	v.mu.Lock()
	changed := ref != v.shown
	v.shown = ref
	v.mu.Unlock()
	if changed {
		go v.preview.show(v.scope.get(), ref, v.image)
	}
}

func (v *editView) refresh() {
	loading := v.screen.Loading()
	setEnabled(v.crop, !loading && !v.screen.Image().IsZero())
	setEnabled(v.proceed, v.screen.CanProceed())
	if loading {
		v.overlay.Show()
		v.activity.Start()
	} else {
		v.activity.Stop()
		v.overlay.Hide()
	}
}

func (v *editView) enter(ctx context.Context, h flow.Handoff) {
	v.scope.set(ctx)
	v.screen.Enter(h)
}

func (v *editView) content() fyne.CanvasObject { return v.root }

type gridView struct {
	screen   *flow.GridScreen
	renderer *render.Renderer
	log      *slog.Logger
	restart  func()
	scope    scope

	layouts *widget.RadioGroup
	save    *widget.Button
	sheet   *canvas.Image
	root    fyne.CanvasObject
}

func newGridView(s *flow.GridScreen, r *render.Renderer, log *slog.Logger, restart func()) *gridView {
	v := &gridView{screen: s, renderer: r, log: log, restart: restart}

	labels := make([]string, 0, len(layout.All()))
	for _, l := range layout.All() {
		labels = append(labels, l.Label())
	}
	v.layouts = widget.NewRadioGroup(labels, v.selectLayout)
	v.layouts.Horizontal = true
	v.layouts.Required = true
	v.layouts.SetSelected(s.Layout().Label())

	v.save = widget.NewButton(s.SaveLabel(), func() {
		go v.screen.Save(v.scope.get())
	})
	v.save.Importance = widget.HighImportance
	again := widget.NewButton("New Photo", func() { go v.restart() })

	v.sheet = canvas.NewImageFromImage(nil)
	v.sheet.FillMode = canvas.ImageFillOriginal

	s.OnChange = func() {
		go v.redraw(v.scope.get())
		fyne.Do(v.refresh)
	}
	top := container.NewVBox(heading("Photo Grid"), container.NewCenter(v.layouts))
	v.root = container.NewBorder(top, container.NewVBox(v.save, again), nil, nil, container.NewScroll(container.NewCenter(v.sheet)))
	return v
}

func (v *gridView) selectLayout(label string) {
	l, err := layout.FromLabel(label)
	if err != nil {
		v.log.Warn("unknown layout option", "label", label)
		return
	}
	if err := v.screen.SelectLayout(l); err != nil {
		v.log.Warn("selecting layout", "layout", l, "err", err)
	}
}

func (v *gridView) refresh() {
	if want := v.screen.Layout().Label(); v.layouts.Selected != want {
		v.layouts.SetSelected(want)
	}
	v.save.SetText(v.screen.SaveLabel())
	setEnabled(v.save, !v.screen.Saving())
}

// stale reports whether grid no longer matches the screen's layout and image.
func (v *gridView) stale(grid layout.Grid) bool {
	now := v.screen.Grid()
	return now.Layout != grid.Layout || now.Source() != grid.Source()
}

// redraw paints the current grid into the on-screen sheet.
func (v *gridView) redraw(ctx context.Context) {
	grid := v.screen.Grid()
	img, err := v.renderer.Render(ctx, grid)
	if err != nil {
		v.log.Warn("drawing grid preview", "layout", grid.Layout, "err", err)
		return
	}
	fyne.Do(func() {
		if v.stale(grid) {
			return
		}
		v.sheet.Image = img
		b := img.Bounds()
		v.sheet.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		v.sheet.Refresh()
	})
}

func (v *gridView) enter(ctx context.Context, h flow.Handoff) {
	v.scope.set(ctx)
	v.screen.Enter(h)
}

func (v *gridView) content() fyne.CanvasObject { return v.root }
