package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the immutable checkout record. Totals are never stored;
// they are recomputed from the item snapshots.
type Order struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index"`
	UserEmail string      `gorm:"column:user_email;not null"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a full product snapshot frozen at checkout time. It has
// no foreign key back to products so later edits or deletions of the
// live listing cannot reach it.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	Quantity    int       `gorm:"column:quantity;not null"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Title       string    `gorm:"column:title;not null"`
	Author      string    `gorm:"column:author;not null"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;not null"`
	Stock       string    `gorm:"column:stock;type:text;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatorID   uuid.UUID `gorm:"column:creator_id;type:uuid;not null"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
