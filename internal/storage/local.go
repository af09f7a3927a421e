package storage

import (
	"io"
	"os"
	"path/filepath"
)

// LocalProvider simulates buckets under a root directory. Useful for
// development without cloud credentials.
type LocalProvider struct {
	RootPath string
}

func NewLocalProvider(root string) *LocalProvider {
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

func (l *LocalProvider) Put(bucket, key string, body io.ReadSeeker, contentType string, publicRead bool) error {
	path := filepath.Join(l.RootPath, bucket, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l *LocalProvider) Delete(bucket, key string) error {
	return os.Remove(filepath.Join(l.RootPath, bucket, filepath.FromSlash(key)))
}
