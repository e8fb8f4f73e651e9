package cart

import (
	"github.com/google/uuid"
)

// LineDTO is one cart line joined with its live product.
type LineDTO struct {
	ProductID         uuid.UUID `json:"product_id"`
	Title             string    `json:"title"`
	PriceCents        int       `json:"price_cents"`
	ImageURL          string    `json:"image_url,omitempty"`
	Quantity          int       `json:"quantity"`
	LineSubtotalCents int       `json:"line_subtotal_cents"`
}

// CartDTO is the full cart with its computed total. The total is
// derived on read and never stored.
type CartDTO struct {
	Items      []LineDTO `json:"items"`
	TotalCents int       `json:"total_cents"`
}
