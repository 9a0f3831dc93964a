package voting

import (
	"context"
	"time"
)

// AllowedAttachmentContentTypes is the whitelist of content types for poll
// attachments. SVG is excluded because it can carry scripts.
var AllowedAttachmentContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"video/mp4":       true,
	"audio/mpeg":      true,
}

// ObjectStorage defines the interface for attachment storage operations,
// implemented by the infrastructure layer (S3-compatible backends).
type ObjectStorage interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
