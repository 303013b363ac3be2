package operations

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"image-resizer/internal/domain"
)

// Resize reconciles the source with the target dimensions according to the
// fit mode. Width or height may be zero, meaning "derive from the aspect
// ratio"; when both are zero the source is returned untouched.
//
// contain paints the background color into any letterboxed area and alpha
// blends the scaled image over it, so transparency is flattened against the
// background as a side effect of the compositing.
func Resize(img image.Image, width, height int, fit domain.FitMode, background color.Color) image.Image {
	if width == 0 && height == 0 {
		return img
	}

	// A single known dimension always scales proportionally, whatever the
	// fit mode asks for.
	if width == 0 || height == 0 {
		return imaging.Resize(img, width, height, imaging.Lanczos)
	}

	switch fit {
	case domain.FitCover:
		return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	case domain.FitFill:
		return imaging.Resize(img, width, height, imaging.Lanczos)
	case domain.FitInside:
		w, h := scaleToBound(img.Bounds(), width, height, false)
		return imaging.Resize(img, w, h, imaging.Lanczos)
	case domain.FitOutside:
		w, h := scaleToBound(img.Bounds(), width, height, true)
		return imaging.Resize(img, w, h, imaging.Lanczos)
	default: // contain
		w, h := scaleToBound(img.Bounds(), width, height, false)
		scaled := imaging.Resize(img, w, h, imaging.Lanczos)
		canvas := imaging.New(width, height, background)
		return imaging.OverlayCenter(canvas, scaled, 1.0)
	}
}

// scaleToBound computes the aspect-preserving dimensions that fit within
// (cover, if outside is set) the width×height box. Unlike a plain bounding
// fit, the image may be enlarged.
func scaleToBound(bounds image.Rectangle, width, height int, outside bool) (int, int) {
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())
	if srcW == 0 || srcH == 0 {
		return width, height
	}

	scaleW := float64(width) / srcW
	scaleH := float64(height) / srcH

	scale := math.Min(scaleW, scaleH)
	if outside {
		scale = math.Max(scaleW, scaleH)
	}

	w := int(math.Round(srcW * scale))
	h := int(math.Round(srcH * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
