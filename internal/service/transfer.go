package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"audiosummarizer/internal/storage"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ErrLocatorNotFound reports a well-formed locator whose remote object does
// not exist.
var ErrLocatorNotFound = errors.New("remote object not found")

// Transfer moves request-scoped files between remote object storage and local
// temporary storage. Resolved inputs live in per-call temp directories; the
// caller owns their removal (CleanupInput) once the request finishes.
type Transfer interface {
	// ResolveInput fetches the object behind locator into a temporary local
	// file that keeps the object's base name. A malformed locator fails
	// before any local file is created.
	ResolveInput(ctx context.Context, locator string) (string, error)

	// PublishOutput uploads localPath under a collision-resistant key scoped
	// to userID and returns the new object's locator. Existing objects are
	// never overwritten: repeated publishes yield distinct locators.
	PublishOutput(ctx context.Context, localPath, userID string) (string, error)
}

// CleanupInput removes the temporary directory created by ResolveInput for
// the given local path. Safe to call with an empty path.
func CleanupInput(localPath string) {
	if localPath != "" {
		os.RemoveAll(filepath.Dir(localPath))
	}
}

type fileTransfer struct {
	store  storage.Storage
	bucket string
}

// NewTransfer creates a Transfer backed by the given object storage and bucket.
func NewTransfer(store storage.Storage, bucket string) Transfer {
	return &fileTransfer{store: store, bucket: bucket}
}

func (t *fileTransfer) ResolveInput(ctx context.Context, locator string) (string, error) {
	bucket, key, err := storage.ParseLocator(locator)
	if err != nil {
		return "", err
	}
	if bucket != t.bucket {
		return "", fmt.Errorf("%w: bucket %q is not served by this deployment", storage.ErrLocatorFormat, bucket)
	}

	rc, _, err := t.store.Get(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrLocatorNotFound, locator)
		}
		return "", fmt.Errorf("fetch %s: %w", locator, err)
	}
	defer rc.Close()

	// Keep the object's base name so downstream naming (report files) stays
	// tied to the original audio filename.
	dir, err := os.MkdirTemp("", "resolve-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	localPath := filepath.Join(dir, filepath.Base(key))
	f, err := os.Create(localPath)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		os.RemoveAll(dir)
		return "", fmt.Errorf("download %s: %w", locator, err)
	}
	if err := f.Close(); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("flush temp file: %w", err)
	}

	return localPath, nil
}

func (t *fileTransfer) PublishOutput(ctx context.Context, localPath, userID string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat report file: %w", err)
	}

	base := filepath.Base(localPath)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	contentType := "application/octet-stream"
	if ext == ".docx" {
		contentType = docxContentType
	}

	// Identity scoping prevents cross-user collisions; the uuid suffix
	// prevents a second publish of the same file from overwriting the first.
	key := fmt.Sprintf("reports/%s/%s-%s%s", userID, stem, uuid.NewString(), ext)

	_, err = t.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        info.Size(),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": base,
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	return storage.FormatLocator(t.bucket, key), nil
}
