package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistEntry is a product-field snapshot saved by a user. Its
// lifecycle is independent of the live product row.
type WishlistEntry struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	ItemID      uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Title       string    `gorm:"column:title;not null"`
	Author      string    `gorm:"column:author;not null"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;not null"`
	Stock       string    `gorm:"column:stock;type:text;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (w *WishlistEntry) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
