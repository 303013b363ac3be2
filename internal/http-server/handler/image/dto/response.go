package dto

import "image-resizer/internal/domain"

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type PresetsResponse struct {
	Success   bool                     `json:"success"`
	Presets   map[string]domain.Preset `json:"presets"`
	Platforms []string                 `json:"platforms"`
}

// UploadedFileInfo describes one uploaded file in the upload response.
// When the metadata probe fails only Error is populated next to the
// identity fields.
type UploadedFileInfo struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path,omitempty"`
	Size         int64  `json:"size,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Format       string `json:"format,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Space        string `json:"space,omitempty"`
	Channels     int    `json:"channels,omitempty"`
	HasAlpha     bool   `json:"hasAlpha,omitempty"`
	Error        string `json:"error,omitempty"`
}

type UploadResponse struct {
	Success bool               `json:"success"`
	Files   []UploadedFileInfo `json:"files"`
	Count   int                `json:"count"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type APIInfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
