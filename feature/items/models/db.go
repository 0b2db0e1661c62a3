package models

import "time"

// ItemRow is the GORM model of the items table.
// Non-numeric prices cannot be represented and are stored as NULL.
type ItemRow struct {
	ID        int64    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name      string   `gorm:"column:name;size:100;not null"`
	Category  string   `gorm:"column:category;size:50"`
	Price     *float64 `gorm:"column:price"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name.
func (ItemRow) TableName() string {
	return "items"
}

// ItemColumns lists the columns the sql store relies on.
var ItemColumns = []string{"id", "name", "category", "price", "updated_at"}

// ToItem converts the row to the store-agnostic Item.
func (r ItemRow) ToItem() Item {
	item := Item{ID: r.ID, Name: r.Name, Category: r.Category}
	if r.Price != nil {
		item.Price = *r.Price
	}
	return item
}
