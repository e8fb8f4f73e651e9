package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a marketplace listing. Stock is text on purpose:
// the upstream data carries free-form quantities ("12", "plenty") and
// the numeric interpretation happens at the service layer.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Author      string    `gorm:"column:author;not null"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;not null"`
	Stock       string    `gorm:"column:stock;type:text;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatorID   uuid.UUID `gorm:"column:creator_id;type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
