package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for logo/signature assets

	"golang.org/x/image/draw"
)

// DefaultMaxWidth bounds the width of embedded assets so document size stays
// independent of the source asset resolution.
const DefaultMaxWidth = 200

// DefaultQuality is the fixed JPEG quality factor used when re-encoding.
const DefaultQuality = 60

// ShrinkConfig controls asset downscaling before embedding.
type ShrinkConfig struct {
	MaxWidth int // maximum width in pixels (default 200)
	Quality  int // JPEG quality 1-100 (default 60)
}

// DefaultConfig returns the shrink configuration used for bill assets.
func DefaultConfig() *ShrinkConfig {
	return &ShrinkConfig{
		MaxWidth: DefaultMaxWidth,
		Quality:  DefaultQuality,
	}
}

// ShrinkToJPEG decodes an image, scales it down so its width does not exceed
// MaxWidth while keeping the aspect ratio, and re-encodes it as JPEG at the
// configured quality. Images already within bounds are still re-encoded so
// the embedded format is uniform.
func ShrinkToJPEG(imageData []byte, config *ShrinkConfig) ([]byte, error) {
	if config == nil {
		config = DefaultConfig()
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > config.MaxWidth {
		newWidth := config.MaxWidth
		newHeight := int(float64(height) * float64(config.MaxWidth) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		// CatmullRom gives Lanczos-like quality for downscaling.
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: config.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
