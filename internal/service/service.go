package service

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// MediaStorage is the object store used for uploaded property media.
// Implemented by pkg/utils/storage.Client.
type MediaStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}
