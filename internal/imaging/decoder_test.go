package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, w, h int, encode func(*os.File, image.Image) error, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, encode(file, img))
	return path
}

func decodeThumbnail(t *testing.T, encoded string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestFileDecoderShrinksLargeImages(t *testing.T) {
	path := writeTestImage(t, 800, 600, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, nil)
	}, "large.jpg")

	encoded, err := NewFileDecoder().Thumbnail(path, 400)
	require.NoError(t, err)

	thumb := decodeThumbnail(t, encoded)
	assert.Equal(t, 400, thumb.Bounds().Dx(), "the longer side lands on maxSide")
	assert.Equal(t, 300, thumb.Bounds().Dy(), "the aspect ratio is kept")
}

func TestFileDecoderKeepsSmallImages(t *testing.T) {
	path := writeTestImage(t, 120, 80, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, nil)
	}, "small.jpg")

	encoded, err := NewFileDecoder().Thumbnail(path, 400)
	require.NoError(t, err)

	thumb := decodeThumbnail(t, encoded)
	assert.Equal(t, 120, thumb.Bounds().Dx())
	assert.Equal(t, 80, thumb.Bounds().Dy())
}

func TestFileDecoderReadsPNG(t *testing.T) {
	path := writeTestImage(t, 500, 1000, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	}, "tall.png")

	encoded, err := NewFileDecoder().Thumbnail(path, 400)
	require.NoError(t, err)

	thumb := decodeThumbnail(t, encoded)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 400, thumb.Bounds().Dy())
}

func TestFileDecoderErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileDecoder().Thumbnail(filepath.Join(t.TempDir(), "nope.jpg"), 400)
		assert.Error(t, err)
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.jpg")
		require.NoError(t, os.WriteFile(path, []byte("definitely not a jpeg"), 0o644))

		_, err := NewFileDecoder().Thumbnail(path, 400)
		assert.Error(t, err)
	})
}
