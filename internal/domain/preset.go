package domain

// Preset is a fixed target geometry for a social-media placement. The
// catalog is populated at startup and never mutated; presets fix geometry,
// not cropping strategy — the fit supplied with a request wins over
// DefaultFit.
type Preset struct {
	Name       string  `json:"name"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	DefaultFit FitMode `json:"fit"`
	Anchor     string  `json:"position"`
	Platform   string  `json:"platform"`
}
