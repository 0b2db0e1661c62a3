// Package store provides the item collection backends.
//
// Every backend implements Store: List returns the whole collection, ModTime
// its last modification time (used by the stats change detector) and Append
// persists a new item with a creation-time id.
//
// # Backends
//
//   - file: a JSON array on local disk, replaced atomically on write.
//   - object: a JSON array object in an S3/MinIO bucket (core/storage).
//   - sql: the items table through GORM (core/database).
//
// # Errors
//
// A collection that does not exist yet reports ErrNotFound; callers treat it
// as empty. Unparseable content reports ErrCorrupted.
package store
