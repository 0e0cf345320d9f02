package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"passgrid/pkg/acquire"
	"passgrid/pkg/imageref"
	"passgrid/pkg/permission"
	"passgrid/pkg/task"
)

// dialogAlerter shows flow alerts as modal dialogs on win.
type dialogAlerter struct {
	win fyne.Window
}

func (a dialogAlerter) Alert(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, a.win)
	})
}

var permissionPrompts = map[permission.Kind]string{
	permission.MediaLibrary: "PassGrid would like to access your photos.",
	permission.Camera:       "PassGrid would like to use your camera.",
	permission.GalleryWrite: "PassGrid would like to save photos to your gallery.",
}

// confirmPrompt asks through a confirm dialog. It blocks the calling
// goroutine, so it must never run on the UI thread.
func confirmPrompt(win fyne.Window) permission.PromptFunc {
	return func(ctx context.Context, kind permission.Kind) (bool, error) {
		answer := make(chan bool, 1)
		fyne.Do(func() {
			dialog.ShowConfirm("Allow Access", permissionPrompts[kind], func(ok bool) {
				answer <- ok
			}, win)
		})
		select {
		case ok := <-answer:
			return ok, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".JPG", ".JPEG", ".PNG"}

// filePicker is the photo library on the desktop: a file-open dialog.
type filePicker struct {
	win fyne.Window
}

func (p filePicker) Launch(ctx context.Context, _ acquire.Options) task.Result[[]acquire.Asset] {
	type pick struct {
		path string
		err  error
	}
	picked := make(chan pick, 1)

	fyne.Do(func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				picked <- pick{err: err}
				return
			}
			if rc == nil {
				picked <- pick{}
				return
			}
			defer rc.Close()
			picked <- pick{path: rc.URI().Path()}
		}, p.win)
		d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
		d.Show()
	})

	select {
	case <-ctx.Done():
		return task.Cancelled[[]acquire.Asset]()
	case r := <-picked:
		switch {
		case r.err != nil:
			return task.Failed[[]acquire.Asset](fmt.Errorf("file dialog: %w", r.err))
		case r.path == "":
			return task.Cancelled[[]acquire.Asset]()
		}
		return task.Succeeded([]acquire.Asset{{Ref: imageref.FromPath(r.path)}})
	}
}
