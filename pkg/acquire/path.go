package acquire

import (
	"context"
	"fmt"
	"os"

	"passgrid/pkg/imageref"
	"passgrid/pkg/task"
)

// PathPicker "picks" a file chosen ahead of time, e.g. on the command line.
// An empty path behaves like the user dismissing the picker.
type PathPicker struct {
	Path string
}

func (p PathPicker) Launch(ctx context.Context, _ Options) task.Result[[]Asset] {
	if p.Path == "" {
		return task.Cancelled[[]Asset]()
	}
	if err := ctx.Err(); err != nil {
		return task.Cancelled[[]Asset]()
	}
	ref := imageref.FromPath(p.Path)
	if ref.Kind() != imageref.KindPath {
		// URLs and data URIs are passed through untouched.
		return task.Succeeded([]Asset{{Ref: imageref.Ref(p.Path)}})
	}
	if _, err := os.Stat(p.Path); err != nil {
		return task.Failed[[]Asset](fmt.Errorf("picking %s: %w", p.Path, err))
	}
	return task.Succeeded([]Asset{{Ref: ref}})
}
