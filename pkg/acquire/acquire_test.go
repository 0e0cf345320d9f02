package acquire

import (
	"context"
	"errors"
	"image/color"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passgrid/pkg/imageref"
	"passgrid/pkg/images"
	"passgrid/pkg/task"
	"passgrid/pkg/visualtest"
)

func TestPassportOptions(t *testing.T) {
	o := PassportOptions()
	assert.True(t, o.AllowsEditing)
	assert.Equal(t, Aspect{3, 4}, o.Aspect)
	assert.Equal(t, 1.0, o.Quality)
	assert.Equal(t, 100, o.JPEGQuality())
	assert.Equal(t, PresentationFullScreen, o.Presentation)
	assert.False(t, o.MultipleSelection)
}

func TestAspectCrop(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{300, 400, 300, 400},
		{800, 400, 300, 400},
		{300, 900, 300, 400},
		{1200, 1600, 1200, 1600},
		{4032, 3024, 2268, 3024},
	}
	for _, tt := range tests {
		w, h := AspectCrop(tt.w, tt.h, Portrait)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("AspectCrop(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
	w, h := AspectCrop(10, 20, Aspect{})
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
}

func TestFirst(t *testing.T) {
	ok := First(task.Succeeded([]Asset{{Ref: "/a.jpg"}, {Ref: "/b.jpg"}}))
	require.True(t, ok.OK())
	assert.Equal(t, imageref.Ref("/a.jpg"), ok.Value)

	assert.True(t, First(task.Cancelled[[]Asset]()).IsCancelled())
	assert.ErrorIs(t, First(task.Succeeded([]Asset{})).Err, ErrNoAssets)

	boom := errors.New("boom")
	assert.ErrorIs(t, First(task.Failed[[]Asset](boom)).Err, boom)
}

func TestPathPicker(t *testing.T) {
	dir := t.TempDir()
	path, err := visualtest.WriteJPEG(dir, "me.jpg", visualtest.Solid(30, 40, color.White))
	require.NoError(t, err)

	r := PathPicker{Path: path}.Launch(context.Background(), PassportOptions())
	require.True(t, r.OK())
	assert.Equal(t, imageref.FromPath(path), r.Value[0].Ref)

	assert.True(t, PathPicker{}.Launch(context.Background(), PassportOptions()).IsCancelled())
	assert.True(t, PathPicker{Path: filepath.Join(dir, "nope.jpg")}.Launch(context.Background(), PassportOptions()).IsFailed())

	url := PathPicker{Path: "https://example.com/me.jpg"}.Launch(context.Background(), PassportOptions())
	require.True(t, url.OK())
	assert.Equal(t, imageref.Ref("https://example.com/me.jpg"), url.Value[0].Ref)
}

func TestWithEditingCropsToPortrait(t *testing.T) {
	dir := t.TempDir()
	path, err := visualtest.WriteJPEG(dir, "wide.jpg", visualtest.Solid(800, 400, color.RGBA{200, 100, 50, 255}))
	require.NoError(t, err)

	loader := images.NewLoader(nil)
	p := WithEditing(PathPicker{Path: path}, &Editor{Loader: loader, WorkDir: dir})

	r := p.Launch(context.Background(), PassportOptions())
	require.True(t, r.OK(), "err: %v", r.Err)
	edited := r.Value[0]
	assert.NotEqual(t, imageref.FromPath(path), edited.Ref)
	assert.Equal(t, 300, edited.Width)
	assert.Equal(t, 400, edited.Height)

	img, err := loader.Load(context.Background(), edited.Ref)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	noEdit := PassportOptions()
	noEdit.AllowsEditing = false
	raw := p.Launch(context.Background(), noEdit)
	require.True(t, raw.OK())
	assert.Equal(t, imageref.FromPath(path), raw.Value[0].Ref)
}

func TestWithEditingKeepsMatchingAspect(t *testing.T) {
	dir := t.TempDir()
	path, err := visualtest.WriteJPEG(dir, "portrait.jpg", visualtest.Solid(300, 400, color.White))
	require.NoError(t, err)

	p := WithEditing(PathPicker{Path: path}, &Editor{Loader: images.NewLoader(nil), WorkDir: dir})
	r := p.Launch(context.Background(), PassportOptions())
	require.True(t, r.OK())
	assert.Equal(t, imageref.FromPath(path), r.Value[0].Ref)
}

func TestWithEditingPassesCancellation(t *testing.T) {
	p := WithEditing(PathPicker{}, &Editor{Loader: images.NewLoader(nil), WorkDir: t.TempDir()})
	assert.True(t, p.Launch(context.Background(), PassportOptions()).IsCancelled())
}

func TestCommandCamera(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}
	dir := t.TempDir()
	src, err := visualtest.WriteJPEG(dir, "shot.jpg", visualtest.Solid(30, 40, color.White))
	require.NoError(t, err)

	cam := CommandCamera{Command: "cp " + src + " {output}", WorkDir: filepath.Join(dir, "work")}
	r := cam.Launch(context.Background(), PassportOptions())
	require.True(t, r.OK(), "err: %v", r.Err)
	assert.Equal(t, filepath.Join(dir, "work"), filepath.Dir(string(r.Value[0].Ref)))

	appended := CommandCamera{Command: "cp " + src, WorkDir: dir}.Launch(context.Background(), PassportOptions())
	assert.True(t, appended.OK(), "err: %v", appended.Err)

	cancelled := CommandCamera{Command: "true", WorkDir: dir}.Launch(context.Background(), PassportOptions())
	assert.True(t, cancelled.IsCancelled())

	failed := CommandCamera{Command: "false", WorkDir: dir}.Launch(context.Background(), PassportOptions())
	assert.True(t, failed.IsFailed())

	none := CommandCamera{WorkDir: dir}.Launch(context.Background(), PassportOptions())
	assert.ErrorIs(t, none.Err, ErrNoCamera)
}
