package domain

// ProcessTask is the resolved set of options applied to every file in one
// processing request. It lives for the duration of a single request.
type ProcessTask struct {
	PresetKey  string
	Width      int
	Height     int
	Format     Format
	Quality    int
	Fit        FitMode
	Background string
}

// ProcessedResult describes one transformed output. Width, height, format
// and size are re-read from the encoded file, not echoed from the request.
type ProcessedResult struct {
	Path     string
	FileName string
	Format   string
	Width    int
	Height   int
	Size     int64
	Preset   string
	Platform string
}
