package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a delete targets a file that does not exist.
var ErrNotFound = errors.New("file not found")

// Service stores uploaded images as opaque blobs. Save returns the public
// filepath clients use to reference the image; Delete accepts that same
// filepath.
type Service interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, filepath string) error
}
