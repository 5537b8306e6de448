package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage keeps uploaded media on the local filesystem under root and serves it under urlPrefix.
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) *LocalStorage {
	return &LocalStorage{
		root:      root,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// Save writes r to <root>/<dir>/<uuid><ext> and returns its public path.
func (s *LocalStorage) Save(ctx context.Context, dir, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.root, dir, name))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return path.Join(s.urlPrefix, dir, name), nil
}

// Delete removes a file previously returned by Save. Unknown paths are ignored.
func (s *LocalStorage) Delete(_ context.Context, publicPath string) error {
	rel := strings.TrimPrefix(publicPath, s.urlPrefix+"/")
	if rel == publicPath || rel == "" || strings.Contains(rel, "..") {
		return nil
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func (s *LocalStorage) Root() string {
	return s.root
}
