// Package acquire obtains a single portrait from the photo library or a camera.
package acquire

import (
	"context"
	"errors"
	"fmt"

	"passgrid/pkg/imageref"
	"passgrid/pkg/task"
)

// Aspect is a width:height ratio.
type Aspect struct {
	W, H int
}

// Portrait is the 3:4 passport aspect (30mm x 40mm).
var Portrait = Aspect{W: 3, H: 4}

func (a Aspect) Ratio() float64 {
	if a.H == 0 {
		return 0
	}
	return float64(a.W) / float64(a.H)
}

func (a Aspect) String() string { return fmt.Sprintf("%d:%d", a.W, a.H) }

// Presentation is how a picker is shown.
type Presentation int

const (
	PresentationFullScreen Presentation = iota
	PresentationPageSheet
)

// Options configures one picker or camera launch.
type Options struct {
	AllowsEditing     bool
	Aspect            Aspect
	Quality           float64 // 0..1
	Presentation      Presentation
	MultipleSelection bool
}

// PassportOptions is the configuration used for every acquisition.
func PassportOptions() Options {
	return Options{
		AllowsEditing:     true,
		Aspect:            Portrait,
		Quality:           1.0,
		Presentation:      PresentationFullScreen,
		MultipleSelection: false,
	}
}

// JPEGQuality maps Quality onto the 1..100 JPEG scale.
func (o Options) JPEGQuality() int {
	q := int(o.Quality*100 + 0.5)
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}

// Asset is one picked image.
type Asset struct {
	Ref    imageref.Ref
	Width  int
	Height int
}

// Picker launches a library picker or camera and waits for the user.
type Picker interface {
	Launch(ctx context.Context, opts Options) task.Result[[]Asset]
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context, opts Options) task.Result[[]Asset]

func (f PickerFunc) Launch(ctx context.Context, opts Options) task.Result[[]Asset] {
	return f(ctx, opts)
}

var ErrNoAssets = errors.New("picker returned no assets")

// First reduces a picker result to the first asset's reference.
func First(r task.Result[[]Asset]) task.Result[imageref.Ref] {
	switch {
	case r.IsCancelled():
		return task.Cancelled[imageref.Ref]()
	case r.IsFailed():
		return task.Failed[imageref.Ref](r.Err)
	case len(r.Value) == 0 || r.Value[0].Ref.IsZero():
		return task.Failed[imageref.Ref](ErrNoAssets)
	}
	return task.Succeeded(r.Value[0].Ref)
}
