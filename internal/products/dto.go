package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/pkg/db/models"
)

// ProductDTO is the public listing shape.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       string    `json:"stock"`
	PriceCents  int       `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDTO(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProductInput carries the fields for a new listing.
type CreateProductInput struct {
	Title       string
	Author      string
	Description string
	Category    string
	Stock       string
	PriceCents  int
	ImageURL    string
}

// UpdateProductInput carries optional listing mutations.
type UpdateProductInput struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	Stock       *string
	PriceCents  *int
	ImageURL    *string
}

// CommentDTO is one product review entry.
type CommentDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	UserImageURL string    `json:"user_image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func commentToDTO(c *models.Comment) CommentDTO {
	return CommentDTO{
		ID:           c.ID,
		ProductID:    c.ProductID,
		Title:        c.Title,
		Description:  c.Description,
		UserImageURL: c.UserImageURL,
		CreatedAt:    c.CreatedAt,
	}
}

// CreateCommentInput carries a new review.
type CreateCommentInput struct {
	ProductID    uuid.UUID
	Title        string
	Description  string
	UserImageURL string
}
