package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/wb-go/wbf/zlog"
)

// Storage manages the upload and processed directories on a local
// filesystem. Deletion is best-effort everywhere: cleanup must never take
// down a request, so failures are logged and swallowed.
type Storage struct {
	fs     afero.Fs
	logger *zlog.Zerolog
}

func NewStorage(fs afero.Fs, logger *zlog.Zerolog) *Storage {
	return &Storage{
		fs:     fs,
		logger: logger,
	}
}

// EnsureDir creates the directory if it does not exist. Idempotent.
func (s *Storage) EnsureDir(dir string) error {
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Save streams data into a new file at path and returns the byte count.
func (s *Storage) Save(path string, data io.Reader) (int64, error) {
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := io.Copy(f, data)
	if err != nil {
		f.Close()
		s.Remove(path)
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		s.Remove(path)
		return 0, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return written, nil
}

// Create opens a new file at path for writing, replacing any existing one.
func (s *Storage) Create(path string) (io.WriteCloser, error) {
	f, err := s.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// Open returns a reader over the file at path.
func (s *Storage) Open(path string) (io.ReadCloser, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// ReadFile returns the full contents of the file at path.
func (s *Storage) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, replacing any existing file.
func (s *Storage) WriteFile(path string, data []byte) error {
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *Storage) Stat(path string) (os.FileInfo, error) {
	return s.fs.Stat(path)
}

// Remove deletes a single file. A missing file is a no-op; any other
// failure is logged and swallowed.
func (s *Storage) Remove(path string) {
	err := s.fs.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return
	}
	s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove file")
}

// RemoveAll deletes every path concurrently and waits for all deletions to
// finish. An empty slice is a no-op.
func (s *Storage) RemoveAll(paths []string) {
	if len(paths) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			s.Remove(p)
		}(path)
	}
	wg.Wait()
}

// SweepOlderThan deletes every entry of dir whose modification time is
// older than maxAge. Entries vanishing between list and delete are
// tolerated; the directory listing is the only source of truth.
func (s *Storage) SweepOlderThan(dir string, maxAge time.Duration) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to list directory for sweep")
		return
	}

	now := time.Now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if now.Sub(entry.ModTime()) > maxAge {
			s.Remove(filepath.Join(dir, entry.Name()))
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info().
			Str("dir", dir).
			Int("removed", removed).
			Dur("max_age", maxAge).
			Msg("Swept stale files")
	}
}
