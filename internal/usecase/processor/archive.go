package processor

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"path/filepath"

	"image-resizer/internal/domain"
)

// buildArchive writes a zip with one entry per processed result, entry
// names matching the generated filenames. The archive is fully flushed to
// the processed directory before the path is returned.
func (p *Processor) buildArchive(name string, results []domain.ProcessedResult) (string, error) {
	path := filepath.Join(p.processedDir, name)

	out, err := p.store.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	if err := p.addEntries(zw, results); err != nil {
		zw.Close()
		out.Close()
		return path, err
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return path, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return path, fmt.Errorf("failed to flush archive: %w", err)
	}

	return path, nil
}

func (p *Processor) addEntries(zw *zip.Writer, results []domain.ProcessedResult) error {
	for _, result := range results {
		entry, err := zw.Create(result.FileName)
		if err != nil {
			return fmt.Errorf("failed to add archive entry %s: %w", result.FileName, err)
		}

		f, err := p.store.Open(result.Path)
		if err != nil {
			return fmt.Errorf("failed to open %s for archiving: %w", result.Path, err)
		}

		_, err = io.Copy(entry, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", result.FileName, err)
		}
	}
	return nil
}
