package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	// Uploads may arrive as WebP; register the decoder so image.Decode
	// recognises them. Output is always jpeg or png.
	_ "golang.org/x/image/webp"
)

// ImageSize is a named bounding box a gallery rendition must fit inside.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

// Renditions produced for every approved gallery photo.
var (
	SizeThumbnail = ImageSize{Name: "thumb", Width: 150, Height: 150}
	SizeCard      = ImageSize{Name: "card", Width: 400, Height: 400}
	SizeGallery   = ImageSize{Name: "gallery", Width: 1200, Height: 1200}
)

// GalleryRenditions lists the sizes generated on upload, largest last so the
// original is decoded once and reused.
var GalleryRenditions = []ImageSize{SizeThumbnail, SizeCard, SizeGallery}

// Processor downscales and re-encodes uploaded photos.
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// ProcessImage decodes, fits the image into the size box, and re-encodes.
// Images already smaller than the box are re-encoded without upscaling.
func (p *Processor) ProcessImage(reader io.Reader, size ImageSize, format string) (io.Reader, error) {
	img, imgFormat, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.fit(img, size.Width, size.Height)

	if format == "" {
		format = imgFormat
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	return &buf, nil
}

// fit scales the image down to fit the box, preserving aspect ratio. Never
// upscales.
func (p *Processor) fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// GetImageDimensions returns the pixel dimensions of an image.
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
