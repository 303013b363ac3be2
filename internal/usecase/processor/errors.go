package processor

import "errors"

var (
	ErrNoFiles          = errors.New("no files specified for processing")
	ErrProcessingFailed = errors.New("image processing failed")
)
