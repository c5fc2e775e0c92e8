package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalService writes uploads to a directory on disk and serves them under a
// public URL prefix (e.g. static/images).
type LocalService struct {
	dir          string
	publicPrefix string
}

func NewLocalService(dir, publicPrefix string) *LocalService {
	return &LocalService{
		dir:          filepath.Clean(dir),
		publicPrefix: path.Clean(publicPrefix),
	}
}

func (s *LocalService) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	target := filepath.Join(s.dir, name)
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}

// Delete removes the file referenced by a public filepath. Only the base name
// is honored, so a crafted path cannot escape the upload directory.
func (s *LocalService) Delete(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Base(publicPath)
	if name == "" || name == "." || name == "/" {
		return ErrNotFound
	}

	target := filepath.Join(s.dir, name)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

var _ Service = (*LocalService)(nil)
