package flow

import (
	"context"
	"sync"

	"passgrid/pkg/acquire"
	"passgrid/pkg/gallery"
	"passgrid/pkg/imageref"
	"passgrid/pkg/layout"
	"passgrid/pkg/task"
)

type alert struct{ title, message string }

type alertLog struct {
	mu     sync.Mutex
	alerts []alert
}

func (a *alertLog) Alert(title, message string) {
	a.mu.Lock()
	a.alerts = append(a.alerts, alert{title, message})
	a.mu.Unlock()
}

func (a *alertLog) messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.alerts))
	for _, al := range a.alerts {
		out = append(out, al.message)
	}
	return out
}

type fakePicker struct {
	result task.Result[[]acquire.Asset]
	calls  int
	opts   acquire.Options
}

func (p *fakePicker) Launch(_ context.Context, opts acquire.Options) task.Result[[]acquire.Asset] {
	p.calls++
	p.opts = opts
	return p.result
}

type cropFunc func(ctx context.Context, ref imageref.Ref) (imageref.Ref, error)

func (f cropFunc) Crop(ctx context.Context, ref imageref.Ref) (imageref.Ref, error) {
	return f(ctx, ref)
}

type captureFunc func(ctx context.Context, grid layout.Grid) (imageref.Ref, error)

func (f captureFunc) Capture(ctx context.Context, grid layout.Grid) (imageref.Ref, error) {
	return f(ctx, grid)
}

type assetFunc func(ctx context.Context, ref imageref.Ref) (gallery.Asset, error)

func (f assetFunc) CreateAsset(ctx context.Context, ref imageref.Ref) (gallery.Asset, error) {
	return f(ctx, ref)
}
