package operations

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	"image-resizer/internal/domain"
)

// Encode writes img to w in the requested format. Quality is the 1-100
// codec quality; PNG is lossless, so quality maps onto the compression
// level instead.
func Encode(w io.Writer, img image.Image, format domain.Format, quality int) error {
	var err error
	switch format {
	case domain.FormatPNG:
		enc := png.Encoder{CompressionLevel: pngCompression(quality)}
		err = enc.Encode(w, img)
	case domain.FormatWebP:
		err = webp.Encode(w, img, webp.Options{Quality: quality})
	case domain.FormatAVIF:
		err = avif.Encode(w, img, avif.Options{Quality: quality})
	default:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func pngCompression(quality int) png.CompressionLevel {
	switch {
	case quality >= 90:
		return png.BestCompression
	case quality >= 50:
		return png.DefaultCompression
	default:
		return png.BestSpeed
	}
}
