package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jkmondal/shopline-backend/api/responses"
	"github.com/jkmondal/shopline-backend/api/validators"
	"github.com/jkmondal/shopline-backend/internal/media"
	"github.com/jkmondal/shopline-backend/internal/products"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

type productForm struct {
	Title       string `validate:"required,min=1,max=200"`
	Author      string `validate:"omitempty,max=200"`
	Description string `validate:"required,min=1"`
	Category    string `validate:"required,min=1,max=100"`
	Stock       string `validate:"omitempty,max=50"`
	Price       string `validate:"required"`
}

// parsePriceCents accepts a whole-cent integer string.
func parsePriceCents(raw string) (int, error) {
	cents, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be an integer number of cents")
	}
	if cents < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return cents, nil
}

// AdminCreateProduct creates a listing from a multipart form with an
// optional image. The creator is the authenticated admin.
func AdminCreateProduct(svc products.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		form := productForm{
			Title:       r.FormValue("title"),
			Author:      r.FormValue("author"),
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
			Stock:       r.FormValue("stock"),
			Price:       r.FormValue("price"),
		}
		if err := validators.ValidateStruct(&form); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		priceCents, err := parsePriceCents(form.Price)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var imageURL string
		upload, present, err := readImageUpload(r, "image")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if present {
			if mediaSvc == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
				return
			}
			imageURL, err = mediaSvc.Store(ctx, upload)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		product, err := svc.CreateProduct(ctx, actor, products.CreateProductInput{
			Title:       form.Title,
			Author:      form.Author,
			Description: form.Description,
			Category:    form.Category,
			Stock:       form.Stock,
			PriceCents:  priceCents,
			ImageURL:    imageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct patches a listing from a multipart form. Only
// fields that were sent are touched.
func AdminUpdateProduct(svc products.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		var input products.UpdateProductInput
		if r.Form.Has("title") {
			v := r.FormValue("title")
			input.Title = &v
		}
		if r.Form.Has("author") {
			v := r.FormValue("author")
			input.Author = &v
		}
		if r.Form.Has("description") {
			v := r.FormValue("description")
			input.Description = &v
		}
		if r.Form.Has("category") {
			v := r.FormValue("category")
			input.Category = &v
		}
		if r.Form.Has("stock") {
			v := r.FormValue("stock")
			input.Stock = &v
		}
		if r.Form.Has("price") {
			cents, err := parsePriceCents(r.FormValue("price"))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			input.PriceCents = &cents
		}

		upload, present, err := readImageUpload(r, "image")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if present {
			if mediaSvc == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
				return
			}
			url, err := mediaSvc.Store(ctx, upload)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			input.ImageURL = &url
		}

		product, err := svc.UpdateProduct(ctx, actor, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a listing the caller created.
func AdminDeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteProduct(ctx, actor, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
