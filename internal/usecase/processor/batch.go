package processor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"image-resizer/internal/domain"
)

// Artifact is the single downloadable output of a batch: either the one
// processed file, or a zip archive over all of them.
type Artifact struct {
	Path        string
	FileName    string
	ContentType string
}

// ProcessBatch fans the transform out over every file id concurrently and
// assembles the response artifact. Completion is unordered but the result
// order follows the input order. A single failing item fails the whole
// batch; siblings still run to completion before the error is returned.
//
// The returned cleanup slice lists every path touched — inputs, outputs
// and the archive — and is valid on both the success and the error path.
// The caller must delete those paths once the response has been sent.
func (p *Processor) ProcessBatch(ctx context.Context, fileIDs []string, task domain.ProcessTask) (*Artifact, []string, error) {
	if len(fileIDs) == 0 {
		return nil, nil, ErrNoFiles
	}

	cleanup := make([]string, 0, len(fileIDs)*2+1)
	for _, id := range fileIDs {
		cleanup = append(cleanup, p.InputPath(id))
	}

	results := make([]*domain.ProcessedResult, len(fileIDs))

	var g errgroup.Group
	for i, id := range fileIDs {
		g.Go(func() error {
			result, err := p.Transform(ctx, p.InputPath(id), task)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	err := g.Wait()

	// Outputs written before a sibling failed still need cleaning up.
	collected := make([]domain.ProcessedResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			cleanup = append(cleanup, r.Path)
			collected = append(collected, *r)
		}
	}

	if err != nil {
		return nil, cleanup, err
	}

	if len(collected) == 1 {
		only := collected[0]
		return &Artifact{
			Path:        only.Path,
			FileName:    only.FileName,
			ContentType: task.Format.MimeType(),
		}, cleanup, nil
	}

	archiveName := fmt.Sprintf("images_%d.zip", time.Now().UnixMilli())
	archivePath, err := p.buildArchive(archiveName, collected)
	if archivePath != "" {
		cleanup = append(cleanup, archivePath)
	}
	if err != nil {
		return nil, cleanup, err
	}

	p.logger.Info().
		Int("files", len(collected)).
		Str("archive", archiveName).
		Msg("Batch processed into archive")

	return &Artifact{
		Path:        archivePath,
		FileName:    archiveName,
		ContentType: "application/zip",
	}, cleanup, nil
}
