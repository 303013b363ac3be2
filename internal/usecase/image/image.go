package image

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/domain"
	"image-resizer/internal/usecase/processor/operations"
)

// Part is one incoming multipart file, already size- and MIME-validated by
// the handler.
type Part struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

// Entry is the per-file upload outcome. A failed metadata probe degrades
// the entry (Info nil, ProbeErr set) without failing the batch.
type Entry struct {
	File     domain.UploadedFile
	Info     *domain.ImageInfo
	ProbeErr error
}

// Usecase persists uploads under fresh uuid identities and probes their
// metadata.
type Usecase struct {
	store     fileStore
	uploadDir string
	logger    *zlog.Zerolog
}

func NewUsecase(store fileStore, uploadDir string, logger *zlog.Zerolog) *Usecase {
	return &Usecase{
		store:     store,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Upload commits every part to the upload directory and then probes their
// metadata concurrently. If any part fails to persist, everything stored so
// far is rolled back and the whole request fails — uploads are all or
// nothing at the storage level.
func (u *Usecase) Upload(ctx context.Context, parts []Part) ([]Entry, error) {
	if len(parts) == 0 {
		return nil, ErrNoFilesUploaded
	}
	if len(parts) > domain.MaxUploadFiles {
		return nil, ErrTooManyFiles
	}

	entries := make([]Entry, len(parts))
	stored := make([]string, 0, len(parts))

	for i, part := range parts {
		id := uuid.New().String() + filepath.Ext(part.FileName)
		path := filepath.Join(u.uploadDir, id)

		size, err := u.store.Save(path, part.Data)
		if err != nil {
			u.store.RemoveAll(stored)
			return nil, fmt.Errorf("failed to persist %s: %w", part.FileName, err)
		}
		stored = append(stored, path)

		entries[i] = Entry{
			File: domain.UploadedFile{
				ID:           id,
				OriginalName: part.FileName,
				StoredPath:   path,
				Size:         size,
				MimeType:     part.ContentType,
			},
		}
	}

	u.probeAll(entries)

	u.logger.Info().Int("count", len(entries)).Msg("Files uploaded")
	return entries, nil
}

// probeAll reads metadata for every stored file in parallel, mirroring the
// per-file degrade semantics: one unreadable file marks only its own entry.
func (u *Usecase) probeAll(entries []Entry) {
	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(entry *Entry) {
			defer wg.Done()

			data, err := u.store.ReadFile(entry.File.StoredPath)
			if err == nil {
				// The declared Content-Type made it past the allow-list;
				// sniff the stored bytes and log a mismatch rather than
				// trusting the client silently.
				if detected := mimetype.Detect(data); !detected.Is(entry.File.MimeType) {
					u.logger.Warn().
						Str("file", entry.File.OriginalName).
						Str("declared", entry.File.MimeType).
						Str("detected", detected.String()).
						Msg("Declared MIME type does not match content")
				}

				var info domain.ImageInfo
				info, err = operations.Probe(data)
				if err == nil {
					entry.Info = &info
					return
				}
			}

			entry.ProbeErr = err
			u.logger.Warn().
				Err(err).
				Str("file", entry.File.OriginalName).
				Msg("Failed to read image metadata")
		}(&entries[i])
	}
	wg.Wait()
}
