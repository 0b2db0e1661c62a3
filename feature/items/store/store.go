package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog/feature/items/models"
)

var (
	// ErrNotFound is returned when the backing collection does not exist yet.
	ErrNotFound = errors.New("item store not found")
	// ErrCorrupted is returned when the stored collection cannot be parsed.
	ErrCorrupted = errors.New("data file is corrupted")
)

// Store is the read/append contract of the item collection.
type Store interface {
	// List returns the full current collection.
	List(ctx context.Context) ([]models.Item, error)
	// ModTime returns the last modification time of the collection.
	ModTime(ctx context.Context) (time.Time, error)
	// Append assigns an id to item, persists it and returns the stored copy.
	Append(ctx context.Context, item models.Item) (models.Item, error)
}

func decodeItems(data []byte) ([]models.Item, error) {
	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return items, nil
}

func encodeItems(items []models.Item) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}

// nextID derives a creation-time id in milliseconds, bumped past maxID to stay unique.
func nextID(now time.Time, maxID int64) int64 {
	id := now.UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

func maxItemID(items []models.Item) int64 {
	var hi int64
	for _, item := range items {
		if item.ID > hi {
			hi = item.ID
		}
	}
	return hi
}
