package operations

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Register the decoders for every format in the upload allow-list.
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"

	"image-resizer/internal/domain"
)

// Probe reads the image header and reports format, dimensions and color
// layout without decoding the pixel data.
func Probe(data []byte) (domain.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ImageInfo{}, fmt.Errorf("failed to read image metadata: %w", err)
	}

	space, channels, hasAlpha := describeColorModel(cfg.ColorModel)

	return domain.ImageInfo{
		Format:   normalizeProbeFormat(format),
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     int64(len(data)),
		Space:    space,
		Channels: channels,
		HasAlpha: hasAlpha,
	}, nil
}

func normalizeProbeFormat(format string) string {
	if format == "jpg" {
		return "jpeg"
	}
	return format
}

func describeColorModel(model color.Model) (space string, channels int, hasAlpha bool) {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return "gray", 1, false
	case color.YCbCrModel, color.CMYKModel:
		return "srgb", 3, false
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model:
		return "srgb", 4, true
	}

	if _, ok := model.(color.Palette); ok {
		return "srgb", 3, false
	}
	return "srgb", 3, false
}
