package storage

import (
	"context"
	"io"
)

// StorageService abstracts portfolio media storage.
type StorageService interface {
	// UploadImage stores an image under the given folder and returns its
	// public URL.
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
	// DeleteImage removes a previously uploaded image by public ID.
	DeleteImage(ctx context.Context, publicID string) error
}
