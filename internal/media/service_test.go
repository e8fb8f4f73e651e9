package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkmondal/shopline-backend/pkg/config"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

func localService(t *testing.T, maxKB int) (Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(config.MediaConfig{
		Backend:       "local",
		LocalDir:      dir,
		PublicBaseURL: "/uploads/images",
		MaxUploadKB:   maxKB,
	}, nil)
	require.NoError(t, err)
	return svc, dir
}

func TestLocalStoreWritesFileAndReturnsURL(t *testing.T) {
	svc, dir := localService(t, 500)

	url, err := svc.Store(context.Background(), Upload{
		Filename:    "avatar.png",
		ContentType: "image/png",
		Data:        []byte("fake png bytes"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/images/"), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/uploads/images/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestStoreRejectsOversizeUpload(t *testing.T) {
	svc, _ := localService(t, 1)

	_, err := svc.Store(context.Background(), Upload{
		ContentType: "image/jpeg",
		Data:        make([]byte, 2048),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestStoreRejectsUnsupportedType(t *testing.T) {
	svc, _ := localService(t, 500)

	_, err := svc.Store(context.Background(), Upload{
		ContentType: "image/gif",
		Data:        []byte("gif"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestStoreRejectsEmptyUpload(t *testing.T) {
	svc, _ := localService(t, 500)

	_, err := svc.Store(context.Background(), Upload{ContentType: "image/png"})
	require.Error(t, err)
}

func TestGCSBackendRequiresClient(t *testing.T) {
	_, err := NewService(config.MediaConfig{Backend: "gcs"}, nil)
	require.Error(t, err)
}

func TestUnknownBackendRejected(t *testing.T) {
	_, err := NewService(config.MediaConfig{Backend: "s3"}, nil)
	require.Error(t, err)
}
