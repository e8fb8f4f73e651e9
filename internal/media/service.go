package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/pkg/config"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/storage/gcs"
)

var extensionByMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// Upload carries one validated image payload.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service stores uploaded images and returns the URL the rest of the
// system persists. The backend only ever sees that URL string.
type Service interface {
	Store(ctx context.Context, upload Upload) (string, error)
}

// NewService picks the backend from configuration: local disk in dev,
// object storage in prod.
func NewService(cfg config.MediaConfig, gcsClient *gcs.Client) (Service, error) {
	maxBytes := cfg.MaxUploadKB * 1024
	if maxBytes <= 0 {
		maxBytes = 500 * 1024
	}

	switch strings.ToLower(cfg.Backend) {
	case "", "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "uploads/images"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create upload directory")
		}
		return &localStore{dir: dir, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"), maxBytes: maxBytes}, nil
	case "gcs":
		if gcsClient == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "gcs client is required for the gcs media backend")
		}
		return &gcsStore{client: gcsClient, maxBytes: maxBytes}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown media backend %q", cfg.Backend))
	}
}

func validate(upload Upload, maxBytes int) (string, error) {
	if len(upload.Data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "empty upload")
	}
	if len(upload.Data) > maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds %d KB", maxBytes/1024))
	}
	ext, ok := extensionByMIME[strings.ToLower(upload.ContentType)]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type, use png or jpeg")
	}
	return ext, nil
}

func objectName(ext string) string {
	return uuid.NewString() + "." + ext
}

type localStore struct {
	dir      string
	baseURL  string
	maxBytes int
}

func (s *localStore) Store(_ context.Context, upload Upload) (string, error) {
	ext, err := validate(upload, s.maxBytes)
	if err != nil {
		return "", err
	}

	name := objectName(ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write image to disk")
	}
	return s.baseURL + "/" + name, nil
}

type gcsStore struct {
	client   *gcs.Client
	maxBytes int
}

func (s *gcsStore) Store(ctx context.Context, upload Upload) (string, error) {
	ext, err := validate(upload, s.maxBytes)
	if err != nil {
		return "", err
	}

	url, err := s.client.Upload(ctx, "images/"+objectName(ext), upload.ContentType, upload.Data)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image to object storage")
	}
	return url, nil
}
