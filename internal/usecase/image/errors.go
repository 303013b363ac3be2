package image

import "errors"

var (
	ErrNoFilesUploaded   = errors.New("no files were uploaded")
	ErrTooManyFiles      = errors.New("too many files in one request")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidFileFormat = errors.New("unsupported file type")
)
