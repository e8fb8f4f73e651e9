package controllers

import (
	"net/http"

	"github.com/jkmondal/shopline-backend/api/responses"
	"github.com/jkmondal/shopline-backend/api/validators"
	"github.com/jkmondal/shopline-backend/internal/auth"
	"github.com/jkmondal/shopline-backend/internal/media"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

type signupForm struct {
	Name     string `validate:"required,min=1,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=128"`
	Role     string `validate:"omitempty,oneof=shopper admin"`
}

// Signup accepts a multipart form with the account fields and an
// optional avatar image, creates the account, and returns a token.
func Signup(authSvc auth.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if authSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		form := signupForm{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}
		if err := validators.ValidateStruct(&form); err != nil {
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

		result, err := authSvc.Signup(ctx, auth.SignupInput{
			Name:     form.Name,
			Email:    form.Email,
			Password: form.Password,
			Role:     enums.UserRole(form.Role),
			ImageURL: imageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns the profile plus a token.
func Login(authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if authSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := authSvc.Login(ctx, req.Email, req.Password)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
