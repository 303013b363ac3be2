package image

import "io"

type fileStore interface {
	Save(path string, data io.Reader) (int64, error)
	ReadFile(path string) ([]byte, error)
	RemoveAll(paths []string)
}
