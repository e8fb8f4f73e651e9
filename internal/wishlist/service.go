package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
}

// Service exposes wishlist rules. Entries are snapshots: they keep the
// product fields as they were when saved and outlive the live listing.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) (EntryDTO, error)
	RemoveItem(ctx context.Context, userID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID) ([]EntryDTO, error)
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
	}, nil
}

// AddItem snapshots the live product into a new wishlist entry.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (EntryDTO, error) {
	if userID == uuid.Nil {
		return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	entry := &models.WishlistEntry{
		UserID:      userID,
		ItemID:      product.ID,
		Title:       product.Title,
		Author:      product.Author,
		Description: product.Description,
		Category:    product.Category,
		Stock:       product.Stock,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
	}
	if err := s.wishlistRepo.Create(ctx, entry); err != nil {
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wishlist entry")
	}
	return toDTO(entry), nil
}

// RemoveItem deletes the entry after verifying it belongs to the caller.
func (s *service) RemoveItem(ctx context.Context, userID, entryID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if entryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}

	entry, err := s.wishlistRepo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist entry")
	}
	if entry.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "wishlist entry belongs to another user")
	}

	if err := s.wishlistRepo.Delete(ctx, entryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist entry")
	}
	return nil
}

// ListEntries returns the caller's saved snapshots.
func (s *service) ListEntries(ctx context.Context, userID uuid.UUID) ([]EntryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist entries")
	}
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
