package dto

// ProcessRequest is the JSON body of POST /api/process. Files holds the
// ids returned by the upload endpoint; everything else is optional and
// falls back to the documented defaults.
type ProcessRequest struct {
	Files      []string `json:"files" validate:"required,min=1"`
	Preset     string   `json:"preset"`
	Format     string   `json:"format"`
	Quality    int      `json:"quality" validate:"omitempty,min=1,max=100"`
	Width      int      `json:"width" validate:"omitempty,min=1"`
	Height     int      `json:"height" validate:"omitempty,min=1"`
	Fit        string   `json:"fit" validate:"omitempty,oneof=cover contain fill inside outside"`
	Background string   `json:"background"`
}
