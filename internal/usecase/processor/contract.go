package processor

import "io"

type fileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}
