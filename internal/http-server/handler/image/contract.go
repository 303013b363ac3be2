package image

import (
	"context"
	"io"
	"os"

	"image-resizer/internal/domain"
	image_uc "image-resizer/internal/usecase/image"
	"image-resizer/internal/usecase/processor"
)

type uploadUsecase interface {
	Upload(ctx context.Context, parts []image_uc.Part) ([]image_uc.Entry, error)
}

type batchProcessor interface {
	ProcessBatch(ctx context.Context, fileIDs []string, task domain.ProcessTask) (*processor.Artifact, []string, error)
}

type fileStore interface {
	Open(path string) (io.ReadCloser, error)
	Stat(path string) (os.FileInfo, error)
	RemoveAll(paths []string)
}
