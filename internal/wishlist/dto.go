package wishlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/pkg/db/models"
)

// EntryDTO is one saved wishlist snapshot.
type EntryDTO struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       string    `json:"stock"`
	PriceCents  int       `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(entry *models.WishlistEntry) EntryDTO {
	return EntryDTO{
		ID:          entry.ID,
		ItemID:      entry.ItemID,
		Title:       entry.Title,
		Author:      entry.Author,
		Description: entry.Description,
		Category:    entry.Category,
		Stock:       entry.Stock,
		PriceCents:  entry.PriceCents,
		ImageURL:    entry.ImageURL,
		CreatedAt:   entry.CreatedAt,
	}
}
