package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessedImage carries the thumbnail variant and the source dimensions
type ProcessedImage struct {
	Thumbnail []byte // JPEG-encoded, nil when the source could not be decoded
	Width     int
	Height    int
}

// Config for image processing
type Config struct {
	ThumbWidth  int // Thumbnail bounding width (default 300)
	ThumbHeight int // Thumbnail bounding height (default 400)
	Quality     int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		ThumbWidth:  300,
		ThumbHeight: 400,
		Quality:     85,
	}
}

// Processor renders thumbnails and captures image dimensions at upload time
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes the image, records its dimensions and renders a thumbnail.
// Formats without a registered decoder (e.g. webp) return an error; callers
// treat thumbnails as best-effort.
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &ProcessedImage{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	thumb := imaging.Fit(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: p.config.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	result.Thumbnail = buf.Bytes()

	return result, nil
}
