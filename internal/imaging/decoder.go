// Package imaging produces the small base64 thumbnails the engine keeps
// alongside queued photos. Decoding runs on the dedicated image pool, off
// the shared task domain.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
)

//go:generate mockgen -source ./decoder.go -destination=./mocks/decoder.go -package=mock_imaging

const thumbnailJPEGQuality = 75

// Decoder turns an image file into a base64 JPEG thumbnail.
type Decoder interface {
	Thumbnail(path string, maxSide int) (string, error)
}

type FileDecoder struct{}

func NewFileDecoder() *FileDecoder {
	return &FileDecoder{}
}

// Thumbnail decodes the image at path and downsamples it so its longer
// side is at most maxSide pixels.
func (d *FileDecoder) Thumbnail(path string, maxSide int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	thumb := downsample(src, maxSide)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail for %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// downsample scales with nearest-neighbour sampling. Thumbnails are
// preview-sized, so sampling quality is not worth a filtering pass.
func downsample(src image.Image, maxSide int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	outW, outH := maxSide, maxSide
	if w > h {
		outH = h * maxSide / w
	} else {
		outW = w * maxSide / h
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	for y := 0; y < outH; y++ {
		srcY := bounds.Min.Y + y*h/outH
		for x := 0; x < outW; x++ {
			srcX := bounds.Min.X + x*w/outW
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}
	return dst
}
