package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"catalog/core/storage"
	"catalog/feature/items/models"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps the collection as a single JSON object in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	object string
	mu     sync.Mutex
	now    func() time.Time
}

// NewObjectStore creates a store backed by bucket/object.
func NewObjectStore(client storage.Client, bucket, object string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, object: object, now: time.Now}
}

// List downloads and decodes the object.
func (s *ObjectStore) List(ctx context.Context) ([]models.Item, error) {
	rc, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", s.bucket, s.object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", s.bucket, s.object, err)
	}
	return decodeItems(data)
}

// ModTime returns the object's LastModified.
func (s *ObjectStore) ModTime(ctx context.Context) (time.Time, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.object, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to stat %s/%s: %w", s.bucket, s.object, err)
	}
	return info.LastModified, nil
}

// Append rewrites the object with item added, creating the bucket when missing.
func (s *ObjectStore) Append(ctx context.Context, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return models.Item{}, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	items, err := s.List(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Item{}, err
	}

	item.ID = nextID(s.now(), maxItemID(items))
	items = append(items, item)

	data, err := encodeItems(items)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to put %s/%s: %w", s.bucket, s.object, err)
	}
	return item, nil
}
