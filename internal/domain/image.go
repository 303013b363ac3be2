package domain

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
)

// NormalizeFormat maps a client-supplied format string onto the closed
// output enum. Anything unrecognized ("jpg" aside) falls back to JPEG,
// matching the documented leniency of the API.
func NormalizeFormat(s string) Format {
	switch s {
	case "jpeg", "jpg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "webp":
		return FormatWebP
	case "avif":
		return FormatAVIF
	default:
		return FormatJPEG
	}
}

// Extension returns the on-disk extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

func (f Format) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatAVIF:
		return "image/avif"
	default:
		return "image/jpeg"
	}
}

// SupportsAlpha reports whether the format can carry an alpha channel.
// JPEG is the only opaque format in the enum; sources with transparency
// must be flattened before encoding to it.
func (f Format) SupportsAlpha() bool {
	return f != FormatJPEG
}

type FitMode string

const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
	FitFill    FitMode = "fill"
	FitInside  FitMode = "inside"
	FitOutside FitMode = "outside"
)

func ValidFit(s string) bool {
	switch FitMode(s) {
	case FitCover, FitContain, FitFill, FitInside, FitOutside:
		return true
	}
	return false
}

const (
	MaxUploadFiles  = 20
	MaxFileSize     = 10 << 20
	DefaultQuality  = 85
	DefaultFit      = FitContain
	DefaultFormat   = FormatJPEG
	DefaultBg       = "#ffffff"
	UploadFormField = "images"
)

// AllowedMimeTypes is the upload allow-list. Validation is on the declared
// Content-Type of the part; the stored bytes are additionally sniffed for
// the metadata response.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/avif": true,
}

// UploadedFile describes one persisted multipart part. The on-disk file is
// the sole durable representation; ID is the stored filename.
type UploadedFile struct {
	ID           string
	OriginalName string
	StoredPath   string
	Size         int64
	MimeType     string
}

// ImageInfo is the best-effort metadata probe of an image file.
type ImageInfo struct {
	Format   string
	Width    int
	Height   int
	Size     int64
	Space    string
	Channels int
	HasAlpha bool
}
