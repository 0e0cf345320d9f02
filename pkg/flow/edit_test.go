package flow

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passgrid/pkg/crop"
	"passgrid/pkg/imageref"
	"passgrid/pkg/images"
	"passgrid/pkg/visualtest"
)

func editAt(t *testing.T, cropper Cropper, ref imageref.Ref) (*EditScreen, *Controller, *alertLog) {
	t.Helper()
	c := NewController()
	alerts := &alertLog{}
	s := NewEditScreen(EditDeps{Cropper: cropper, Nav: c, Alerts: alerts})
	c.OnEnter(func(sc Screen, h Handoff) {
		if sc == ScreenEdit {
			s.Enter(h)
		}
	})
	if !ref.IsZero() {
		require.NoError(t, c.Navigate(ScreenEdit, Handoff{ImageRef: ref}))
	}
	return s, c, alerts
}

func TestEditAdoptsHandoff(t *testing.T) {
	s, _, _ := editAt(t, nil, "/photos/a.jpg")
	assert.Equal(t, imageref.Ref("/photos/a.jpg"), s.Image())
	assert.True(t, s.CanProceed())
}

func TestEditCropReplacesImage(t *testing.T) {
	cropper := cropFunc(func(_ context.Context, ref imageref.Ref) (imageref.Ref, error) {
		return ref + ".crop.jpg", nil
	})
	s, _, alerts := editAt(t, cropper, "/photos/a.jpg")

	r := s.Crop(context.Background())
	require.True(t, r.OK())
	assert.Equal(t, imageref.Ref("/photos/a.jpg.crop.jpg"), s.Image())
	assert.False(t, s.Loading())
	assert.Empty(t, alerts.messages())
}

func TestEditCropFailureClearsLoading(t *testing.T) {
	cropper := cropFunc(func(context.Context, imageref.Ref) (imageref.Ref, error) {
		return "", errors.New("transform failed")
	})
	s, _, alerts := editAt(t, cropper, "/photos/a.jpg")

	r := s.Crop(context.Background())
	assert.True(t, r.IsFailed())
	assert.Equal(t, imageref.Ref("/photos/a.jpg"), s.Image())
	assert.False(t, s.Loading())
	assert.Equal(t, []string{msgCropFailed}, alerts.messages())
}

func TestEditCropWithoutImage(t *testing.T) {
	s, _, alerts := editAt(t, nil, "")
	assert.ErrorIs(t, s.Crop(context.Background()).Err, ErrNoImage)
	assert.Empty(t, alerts.messages())
	assert.False(t, s.CanProceed())
	assert.ErrorIs(t, s.ProceedToGrid(), ErrNoImage)
}

func TestEditBlocksDuplicateCrop(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	cropper := cropFunc(func(_ context.Context, ref imageref.Ref) (imageref.Ref, error) {
		close(started)
		<-release
		return ref, nil
	})
	s, _, _ := editAt(t, cropper, "/photos/a.jpg")

	done := make(chan struct{})
	go func() {
		s.Crop(context.Background())
		close(done)
	}()
	<-started

	assert.True(t, s.Loading())
	assert.False(t, s.CanProceed())
	assert.ErrorIs(t, s.Crop(context.Background()).Err, ErrBusy)
	assert.ErrorIs(t, s.ProceedToGrid(), ErrBusy)

	close(release)
	<-done
	assert.False(t, s.Loading())
}

func TestEditCropCancelledIsSilent(t *testing.T) {
	cropper := cropFunc(func(ctx context.Context, _ imageref.Ref) (imageref.Ref, error) {
		return "", ctx.Err()
	})
	s, _, alerts := editAt(t, cropper, "/photos/a.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, s.Crop(ctx).IsCancelled())
	assert.Empty(t, alerts.messages())
}

func TestEditProceedForwardsCurrentImage(t *testing.T) {
	s, c, _ := editAt(t, cropFunc(func(_ context.Context, ref imageref.Ref) (imageref.Ref, error) {
		return "/work/crop.jpg", nil
	}), "/photos/a.jpg")

	require.True(t, s.Crop(context.Background()).OK())
	require.NoError(t, s.ProceedToGrid())

	screen, h := c.Current()
	assert.Equal(t, ScreenGrid, screen)
	assert.Equal(t, imageref.Ref("/work/crop.jpg"), h.ImageRef)
}

func TestEditRealCropTwiceKeepsPassportSize(t *testing.T) {
	dir := t.TempDir()
	src, err := visualtest.WriteJPEG(dir, "p.jpg", visualtest.Solid(1500, 2000, color.RGBA{150, 120, 100, 255}))
	require.NoError(t, err)

	loader := images.NewLoader(nil)
	s, _, _ := editAt(t, crop.New(loader, dir), imageref.FromPath(src))

	for i := 0; i < 2; i++ {
		r := s.Crop(context.Background())
		require.True(t, r.OK(), "crop %d: %v", i, r.Err)
		img, err := loader.Load(context.Background(), s.Image())
		require.NoError(t, err)
		assert.Equal(t, 1000, img.Bounds().Dx())
		assert.Equal(t, 1333, img.Bounds().Dy())
	}
}
