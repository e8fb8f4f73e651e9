package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/api/middleware"
	"github.com/jkmondal/shopline-backend/internal/media"
	"github.com/jkmondal/shopline-backend/internal/products"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

const maxMultipartMemory = 2 << 20

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid caller identity")
	}
	return id, nil
}

func actorFromRequest(r *http.Request) (products.Actor, error) {
	id, err := callerID(r)
	if err != nil {
		return products.Actor{}, err
	}
	return products.Actor{
		UserID: id,
		Role:   enums.UserRole(middleware.RoleFromContext(r.Context())),
	}, nil
}

// readImageUpload pulls the optional image file out of a multipart
// form. The bool reports whether a file was present.
func readImageUpload(r *http.Request, field string) (media.Upload, bool, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return media.Upload{}, false, nil
		}
		return media.Upload{}, false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return media.Upload{}, false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image upload")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return media.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, true, nil
}
