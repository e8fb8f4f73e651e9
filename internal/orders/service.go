package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/cart"
	"github.com/jkmondal/shopline-backend/internal/users"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	OrderRepo *Repository
	CartRepo  *cart.Repository
	UserRepo  *users.Repository
	DB        *db.Client
	Logger    *logger.Logger
}

// Service owns the checkout workflow and the immutable order records
// it produces.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID) (OrderListDTO, error)
	CancelOrder(ctx context.Context, callerID, orderID uuid.UUID) error
	Invoice(ctx context.Context, userID, orderID uuid.UUID) ([]byte, string, error)
}

type service struct {
	orderRepo *Repository
	cartRepo  *cart.Repository
	userRepo  *users.Repository
	client    *db.Client
	logg      *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		userRepo:  params.UserRepo,
		client:    params.DB,
		logg:      params.Logger,
	}, nil
}

// Checkout snapshots the cart into an immutable order and clears the
// cart. The order insert and the cart clear commit together; prices
// are frozen as copied.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	var order models.Order
	txErr := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		lines, err := cartRepo.ListFullLines(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			p := line.Product
			items = append(items, models.OrderItem{
				Quantity:    line.Quantity,
				ProductID:   p.ID,
				Title:       p.Title,
				Author:      p.Author,
				Description: p.Description,
				Category:    p.Category,
				Stock:       p.Stock,
				PriceCents:  p.PriceCents,
				ImageURL:    p.ImageURL,
				CreatorID:   p.CreatorID,
			})
		}

		order = models.Order{
			UserID:    user.ID,
			UserEmail: user.Email,
			Items:     items,
		}

		// Order save strictly precedes the cart clear.
		if err := orderRepo.Create(ctx, &order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		if err := cartRepo.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if txErr != nil {
		return OrderDTO{}, txErr
	}

	return toDTO(&order), nil
}

// ListOrders returns a user's orders with per-order and grand totals,
// all derived from the stored snapshots.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) (OrderListDTO, error) {
	if userID == uuid.Nil {
		return OrderListDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return OrderListDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	orders := make([]OrderDTO, 0, len(rows))
	grandTotal := 0
	for i := range rows {
		dto := toDTO(&rows[i])
		grandTotal += dto.TotalCents
		orders = append(orders, dto)
	}
	return OrderListDTO{Orders: orders, TotalCents: grandTotal}, nil
}

// CancelOrder deletes the order by id. Ownership is not checked; the
// caller is logged so the gap stays visible in operations.
func (s *service) CancelOrder(ctx context.Context, callerID, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.UserID != callerID {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"order_id": orderID.String(),
			"owner_id": order.UserID.String(),
			"caller":   callerID.String(),
		}), "order cancelled by non-owner")
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// Invoice renders the order's PDF after verifying the order belongs to
// the requesting user.
func (s *service) Invoice(ctx context.Context, userID, orderID uuid.UUID) ([]byte, string, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}

	pdfBytes, err := RenderInvoice(toDTO(order))
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%s.pdf", orderID)
	return pdfBytes, filename, nil
}
