package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog/core/database"
	"catalog/core/utils"
	"catalog/feature/items/models"

	"gorm.io/gorm"
)

// SQLStore keeps the collection in the items table.
type SQLStore struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLStore creates a store on db. With autoMigrate the table is created or
// updated; otherwise the existing table must carry every expected column.
func NewSQLStore(db *gorm.DB, autoMigrate bool) (*SQLStore, error) {
	if autoMigrate {
		if err := db.AutoMigrate(&models.ItemRow{}); err != nil {
			return nil, fmt.Errorf("failed to migrate items table: %w", err)
		}
	} else {
		missing, err := database.MissingColumns(db, models.ItemRow{}.TableName(), models.ItemColumns)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("items table is missing columns %v", missing)
		}
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

// List returns every row ordered by id. An empty table is an empty collection.
func (s *SQLStore) List(ctx context.Context) ([]models.Item, error) {
	var rows []models.ItemRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]models.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToItem())
	}
	return items, nil
}

// ModTime returns the most recent updated_at. An empty table reports ErrNotFound.
func (s *SQLStore) ModTime(ctx context.Context) (time.Time, error) {
	var rows []models.ItemRow
	err := s.db.WithContext(ctx).Select("id", "updated_at").Order("updated_at desc").Limit(1).Find(&rows).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read items modification time: %w", err)
	}
	if len(rows) == 0 {
		return time.Time{}, ErrNotFound
	}
	return rows[0].UpdatedAt, nil
}

// Append inserts item with a fresh id.
func (s *SQLStore) Append(ctx context.Context, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	if err := s.db.WithContext(ctx).Model(&models.ItemRow{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return models.Item{}, fmt.Errorf("failed to read max item id: %w", err)
	}

	row := models.ItemRow{
		ID:       nextID(s.now(), maxID),
		Name:     item.Name,
		Category: item.Category,
	}
	if price, ok := utils.ToFloat(item.Price); ok {
		row.Price = &price
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return row.ToItem(), nil
}
