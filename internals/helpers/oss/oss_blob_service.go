package helper

import (
	"context"
	"fmt"
)

/*
BlobService is the storage facade controllers and services depend on.
The workflow only needs content-addressed uploads with duplicate
tolerance plus a public URL; the OSS wiring stays behind this interface
so tests can substitute an in-memory store.
*/

type BlobService interface {
	// Upload stores data under key. Re-uploading the same key is treated
	// as success (the content is addressed by its hash, so an existing
	// object is by definition the same bytes).
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes an object. Used only by compensation paths; failures
	// are logged, never fatal.
	Delete(ctx context.Context, key string) error

	PublicURL(key string) string
}

// --------------------------------------------------
// Aliyun OSS implementation
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds the facade from ALI_OSS_* env vars.
// prefix is the bucket subdir, e.g. "media" or "images".
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	err := b.svc.UploadBytes(ctx, key, data, contentType)
	if err != nil && IsAlreadyExists(err) {
		return nil
	}
	return err
}

func (b *OSSBlobService) Delete(ctx context.Context, key string) error {
	return b.svc.DeleteObject(ctx, key)
}

func (b *OSSBlobService) PublicURL(key string) string {
	return b.svc.PublicURL(key)
}

// --------------------------------------------------
// Degraded-mode stand-in
// --------------------------------------------------

// UnavailableBlobService lets the app boot without storage credentials
// (local dev, CI). Every call fails with the original configuration
// error so the cause survives into the logs.
func UnavailableBlobService(cause error) BlobService {
	return unavailableBlob{cause: cause}
}

type unavailableBlob struct{ cause error }

func (u unavailableBlob) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return fmt.Errorf("blob storage unavailable: %w", u.cause)
}

func (u unavailableBlob) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("blob storage unavailable: %w", u.cause)
}

func (u unavailableBlob) PublicURL(key string) string { return "" }
