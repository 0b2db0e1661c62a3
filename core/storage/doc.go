// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface, which the object
// item store backend uses to keep the item collection as a single JSON object.
// This supports both AWS S3 and self-hosted MinIO instances.
//
// # Operations
//
//   - BucketExists / MakeBucket: ensure the target bucket before the first write.
//   - PutObject / GetObject: write and read the collection.
//   - StatObject: read LastModified cheaply, used for change polling.
//
// The interface makes storage easy to mock in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := client.StatObject(ctx, "catalog", "items.json", minio.StatObjectOptions{})
package storage
