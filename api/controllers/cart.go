package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/api/responses"
	"github.com/jkmondal/shopline-backend/api/validators"
	"github.com/jkmondal/shopline-backend/internal/cart"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

type cartLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}

// cartMutation handles the shared shape of the add/increase/decrease
// endpoints: decode the product id, resolve the caller, run the op.
func cartMutation(logg *logger.Logger, resultKey string, op func(ctx context.Context, userID, productID uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if op == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var req cartLineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := op(ctx, userID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{resultKey: true})
	}
}

// CartAddItem puts one unit of the product in the caller's cart, or
// bumps the line if it already exists.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return cartMutation(logg, "added", nil)
	}
	return cartMutation(logg, "added", svc.AddItem)
}

// CartIncreaseQuantity bumps a line by one, creating it when absent.
func CartIncreaseQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return cartMutation(logg, "increased", nil)
	}
	return cartMutation(logg, "increased", svc.IncreaseQuantity)
}

// CartDecreaseQuantity drops a line by one, removing it at zero.
func CartDecreaseQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return cartMutation(logg, "decreased", nil)
	}
	return cartMutation(logg, "decreased", svc.DecreaseQuantity)
}

// CartRemoveItem deletes the line outright regardless of quantity.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := parseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		productID, err := parseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if caller != userID {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot modify another user's cart"))
			return
		}

		if err := svc.RemoveItem(ctx, userID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}

// GetCart returns the cart lines with the computed total.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := parseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetCart(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
