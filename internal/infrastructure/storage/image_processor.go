package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Variant sizes. Every variant fits inside a square of that many pixels.
var variantSizes = map[string]int{
	"large":     1200,
	"thumbnail": 300,
}

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage accepts JPEG or PNG up to MaxSize.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("image is empty")
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// ProcessImage trả về map[variant][]byte: resize → enc JPEG chất lượng 90.
// Images smaller than a variant are never upscaled.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	variants := make(map[string][]byte, len(variantSizes))
	for name, size := range variantSizes {
		out := img
		b := img.Bounds()
		if b.Dx() > size || b.Dy() > size {
			out = imaging.Fit(img, size, size, imaging.Lanczos)
		}

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, out, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = buf.Bytes()
	}
	return variants, nil
}
