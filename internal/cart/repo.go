package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jkmondal/shopline-backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindLineForUpdate loads one cart line, locking the row on engines
// that support it so same-user mutations serialize.
func (r *Repository) FindLineForUpdate(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var line models.CartItem
	if err := query.First(&line, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateLine inserts a new cart line.
func (r *Repository) CreateLine(ctx context.Context, line *models.CartItem) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// UpdateQuantity sets the quantity on an existing line.
func (r *Repository) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

// DeleteLine removes one line by id.
func (r *Repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", lineID).Error
}

// DeleteByProduct removes the line matching a product, if present.
func (r *Repository) DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteAllForUser empties a user's cart.
func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// FullLine couples a cart quantity with the complete live product
// record. Checkout uses it to build deep snapshots.
type FullLine struct {
	Product  models.Product
	Quantity int
}

// ListFullLines returns a user's cart with complete product records,
// oldest line first.
func (r *Repository) ListFullLines(ctx context.Context, userID uuid.UUID) ([]FullLine, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]FullLine, 0, len(items))
	for _, item := range items {
		var product models.Product
		if err := r.db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product deleted after it was carted; the line is
				// unorderable, skip it.
				continue
			}
			return nil, err
		}
		lines = append(lines, FullLine{Product: product, Quantity: item.Quantity})
	}
	return lines, nil
}

// lineRecord is one cart row joined with its product.
type lineRecord struct {
	ProductID  uuid.UUID `gorm:"column:product_id"`
	Title      string    `gorm:"column:title"`
	PriceCents int       `gorm:"column:price_cents"`
	ImageURL   string    `gorm:"column:image_url"`
	Quantity   int       `gorm:"column:quantity"`
}

// ListLines returns a user's cart joined with live product data,
// oldest line first.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]LineDTO, error) {
	var records []lineRecord
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.title, p.price_cents, p.image_url, ci.quantity").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.created_at ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	lines := make([]LineDTO, 0, len(records))
	for _, record := range records {
		lines = append(lines, LineDTO{
			ProductID:         record.ProductID,
			Title:             record.Title,
			PriceCents:        record.PriceCents,
			ImageURL:          record.ImageURL,
			Quantity:          record.Quantity,
			LineSubtotalCents: record.Quantity * record.PriceCents,
		})
	}
	return lines, nil
}
