package imageprocessor

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest valid lossy WebP: a single pixel.
const tinyWebP = "UklGRiQAAABXRUJQVlA4IBgAAAAwAQCdASoBAAEAAwA0JaQAA3AA/vuUAAA="

func webpFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)
	return raw
}

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 120, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGetImageDimensionsDecodesWebP(t *testing.T) {
	width, height, err := GetImageDimensions(bytes.NewReader(webpFixture(t)))

	require.NoError(t, err)
	assert.Equal(t, 1, width)
	assert.Equal(t, 1, height)
}

func TestProcessImageReencodesWebPAsJPEG(t *testing.T) {
	p := NewProcessor(85)

	out, err := p.ProcessImage(bytes.NewReader(webpFixture(t)), SizeThumbnail, "jpeg")
	require.NoError(t, err)

	_, format, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestProcessImageNeverUpscales(t *testing.T) {
	p := NewProcessor(85)

	out, err := p.ProcessImage(bytes.NewReader(pngFixture(t, 100, 100)), SizeGallery, "png")
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(out)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestProcessImageFitsInsideBox(t *testing.T) {
	p := NewProcessor(85)

	out, err := p.ProcessImage(bytes.NewReader(pngFixture(t, 800, 400)), SizeCard, "png")
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(out)
	require.NoError(t, err)
	assert.Equal(t, SizeCard.Width, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestProcessImageRejectsUnknownOutputFormat(t *testing.T) {
	p := NewProcessor(85)

	_, err := p.ProcessImage(bytes.NewReader(pngFixture(t, 10, 10)), SizeThumbnail, "gif")
	assert.ErrorContains(t, err, "unsupported image format")
}
