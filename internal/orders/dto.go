package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/pkg/db/models"
)

// ItemDTO is one frozen order line.
type ItemDTO struct {
	ProductID         uuid.UUID `json:"product_id"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Stock             string    `json:"stock"`
	PriceCents        int       `json:"price_cents"`
	ImageURL          string    `json:"image_url,omitempty"`
	Quantity          int       `json:"quantity"`
	LineSubtotalCents int       `json:"line_subtotal_cents"`
}

// OrderDTO is one immutable order with its derived total.
type OrderDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Items      []ItemDTO `json:"items"`
	TotalCents int       `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderListDTO bundles a user's orders with the grand total across
// all of them.
type OrderListDTO struct {
	Orders     []OrderDTO `json:"orders"`
	TotalCents int        `json:"total_cents"`
}

func toDTO(order *models.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	total := 0
	for _, item := range order.Items {
		subtotal := item.Quantity * item.PriceCents
		total += subtotal
		items = append(items, ItemDTO{
			ProductID:         item.ProductID,
			Title:             item.Title,
			Author:            item.Author,
			Description:       item.Description,
			Category:          item.Category,
			Stock:             item.Stock,
			PriceCents:        item.PriceCents,
			ImageURL:          item.ImageURL,
			Quantity:          item.Quantity,
			LineSubtotalCents: subtotal,
		})
	}
	return OrderDTO{
		ID:         order.ID,
		UserID:     order.UserID,
		UserEmail:  order.UserEmail,
		Items:      items,
		TotalCents: total,
		CreatedAt:  order.CreatedAt,
	}
}
