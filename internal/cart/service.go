package cart

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	ProductRepo *products.Repository
	DB          *db.Client
	// EnforceStock turns on availability checks against the product's
	// text-typed stock column. Non-numeric stock means unlimited.
	EnforceStock bool
}

// Service exposes the cart state machine: absent -> qty 1 on add,
// qty n -> n+1 on add/increase, n -> n-1 on decrease with removal at
// zero. Present lines never carry qty < 1.
type Service interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	IncreaseQuantity(ctx context.Context, userID, productID uuid.UUID) error
	DecreaseQuantity(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
}

type service struct {
	cartRepo     *Repository
	productRepo  *products.Repository
	client       *db.Client
	enforceStock bool
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		cartRepo:     params.CartRepo,
		productRepo:  params.ProductRepo,
		client:       params.DB,
		enforceStock: params.EnforceStock,
	}, nil
}

// AddItem bumps an existing line by one or inserts a fresh line at
// quantity one.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.bumpQuantity(ctx, userID, productID)
}

// IncreaseQuantity matches AddItem: +1 on a present line, insert at
// one otherwise.
func (s *service) IncreaseQuantity(ctx context.Context, userID, productID uuid.UUID) error {
	return s.bumpQuantity(ctx, userID, productID)
}

func (s *service) bumpQuantity(ctx context.Context, userID, productID uuid.UUID) error {
	if err := requireIDs(userID, productID); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)

		line, err := repo.FindLineForUpdate(ctx, userID, productID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
			}
			if err := s.checkStock(product.Stock, 1); err != nil {
				return err
			}
			return repo.CreateLine(ctx, &models.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  1,
			})
		}

		next := line.Quantity + 1
		if err := s.checkStock(product.Stock, next); err != nil {
			return err
		}
		return repo.UpdateQuantity(ctx, line.ID, next)
	})
}

// DecreaseQuantity drops a present line by one, removing it at zero.
// A decrease against an absent line succeeds silently.
func (s *service) DecreaseQuantity(ctx context.Context, userID, productID uuid.UUID) error {
	if err := requireIDs(userID, productID); err != nil {
		return err
	}

	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)

		line, err := repo.FindLineForUpdate(ctx, userID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		if line.Quantity <= 1 {
			return repo.DeleteLine(ctx, line.ID)
		}
		return repo.UpdateQuantity(ctx, line.ID, line.Quantity-1)
	})
}

// RemoveItem deletes the line regardless of quantity. No-op if absent.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if err := requireIDs(userID, productID); err != nil {
		return err
	}
	if err := s.cartRepo.DeleteByProduct(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}
	return nil
}

// GetCart returns the joined cart with its computed total.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}

	total := 0
	for _, line := range lines {
		total += line.LineSubtotalCents
	}
	return CartDTO{Items: lines, TotalCents: total}, nil
}

func (s *service) checkStock(stock string, wanted int) error {
	if !s.enforceStock {
		return nil
	}
	available, err := strconv.Atoi(strings.TrimSpace(stock))
	if err != nil {
		// Non-numeric stock text means unlimited.
		return nil
	}
	if wanted > available {
		return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock")
	}
	return nil
}

func requireIDs(userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
