package storage

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

// BlobStore is the opaque image store consumed by the post layer. Upload
// returns a public URL; DeleteByURL reports whether the object was removed
// and is used only for best-effort cleanup of replaced assets.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
	DeleteByURL(ctx context.Context, url string) (bool, error)
}

// FirebaseBlobStore implements BlobStore on a Firebase Storage bucket.
type FirebaseBlobStore struct {
	app    *firebase.App
	bucket string
}

// NewFirebaseBlobStore creates a new FirebaseBlobStore
func NewFirebaseBlobStore(app *firebase.App, bucket string) *FirebaseBlobStore {
	return &FirebaseBlobStore{app: app, bucket: bucket}
}

func (s *FirebaseBlobStore) publicURL(object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
}

// Upload writes the blob under folder/ with a random object name and
// returns its public URL.
func (s *FirebaseBlobStore) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	client, err := s.app.Storage(ctx)
	if err != nil {
		return "", err
	}
	bkt, err := client.Bucket(s.bucket)
	if err != nil {
		return "", err
	}

	object := fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), uuid.NewString())
	w := bkt.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return s.publicURL(object), nil
}

// DeleteByURL removes the object a previously returned URL points at.
// URLs outside this bucket are ignored.
func (s *FirebaseBlobStore) DeleteByURL(ctx context.Context, url string) (bool, error) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	object, ok := strings.CutPrefix(url, prefix)
	if !ok || object == "" {
		return false, nil
	}

	client, err := s.app.Storage(ctx)
	if err != nil {
		return false, err
	}
	bkt, err := client.Bucket(s.bucket)
	if err != nil {
		return false, err
	}

	if err := bkt.Object(object).Delete(ctx); err != nil {
		return false, err
	}
	return true, nil
}
