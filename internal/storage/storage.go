package storage

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/flavorconnect/flavorconnect/internal/config"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(path string) error

	// URL returns the public URL for accessing the file
	URL(path string) string
}

// New creates the storage backend selected by STORAGE_DRIVER
func New(c *config.Config) (Storage, error) {
	switch c.StorageDriver {
	case "", "local":
		slog.Info("initializing local storage", "path", c.UploadPath, "url", c.UploadURL)
		return NewLocalStorage(c.UploadPath, c.UploadURL)
	case "s3":
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiryPublic,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
