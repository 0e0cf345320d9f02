package visualtest

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	skin  = color.RGBA{224, 172, 140, 255}
	paper = color.RGBA{255, 255, 255, 255}
)

func TestCompareFilesPhotoAgainstItself(t *testing.T) {
	path, err := WriteJPEG(t.TempDir(), "me.jpg", Solid(30, 40, skin))
	require.NoError(t, err)

	res, err := CompareFiles(path, path, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Zero(t, res.DifferentPixels)
	assert.Equal(t, 1200, res.TotalPixels)
}

func TestCompareFilesJPEGAgainstLosslessSource(t *testing.T) {
	dir := t.TempDir()
	src := Solid(24, 32, skin)
	jpg, err := WriteJPEG(dir, "me.jpg", src)
	require.NoError(t, err)
	png, err := WritePNG(dir, "me.png", src)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Tolerance = 8
	res, err := CompareFiles(jpg, png, opts)
	require.NoError(t, err)
	assert.True(t, res.Match, "max diff %d", res.MaxDifference)
}

func TestCompareCountsChangedCells(t *testing.T) {
	// A 2-cell sheet where only the right cell changes colour.
	want := Quadrants(20, 10, skin, skin)
	got := Quadrants(20, 10, skin, paper)

	res, err := Compare(got, want, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 100, res.DifferentPixels)
	assert.Equal(t, ColorDistance(skin, paper), res.MaxDifference)

	opts := DefaultOptions()
	opts.MaxDifferentPercent = 50
	res, err = Compare(got, want, opts)
	require.NoError(t, err)
	assert.True(t, res.Match)
}

func TestCompareIgnoresBoundsOrigin(t *testing.T) {
	full := Solid(10, 10, skin)
	sub := Solid(20, 20, skin).SubImage(image.Rect(10, 10, 20, 20))

	res, err := Compare(sub, full, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)
}

func TestCompareRejectsSizeMismatch(t *testing.T) {
	// A crop written at the wrong size must not pass as a match.
	_, err := Compare(Solid(1000, 1333, skin), Solid(1000, 1334, skin), DefaultOptions())
	assert.ErrorContains(t, err, "size mismatch")
}

func TestCompareFilesMissing(t *testing.T) {
	_, err := CompareFiles("/does/not/exist.jpg", "/does/not/exist.png", DefaultOptions())
	assert.Error(t, err)
}

func TestAverageColorAndQuadrants(t *testing.T) {
	img := Quadrants(10, 4, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, AverageColor(img, image.Rect(0, 0, 5, 4)))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, AverageColor(img, image.Rect(5, 0, 10, 4)))
	assert.Equal(t, color.RGBA{}, AverageColor(img, image.Rect(20, 20, 30, 30)))
}
