package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/jkmondal/shopline-backend/pkg/auth"
	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

var authTestJWT = config.JWTConfig{
	Secret:            "middleware-test-secret",
	Issuer:            "shopline",
	ExpirationMinutes: 60,
}

func authProtected(t *testing.T) (http.Handler, *string, *string) {
	t.Helper()
	var seenUserID, seenRole string
	handler := Auth(authTestJWT, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		seenRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenUserID, &seenRole
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(authTestJWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "ada@example.com",
		Role:   enums.UserRoleAdmin,
	})
	require.NoError(t, err)

	handler, seenUserID, seenRole := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), *seenUserID)
	assert.Equal(t, "admin", *seenRole)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler, _, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	otherCfg := authTestJWT
	otherCfg.Secret = "different-secret"
	token, err := pkgauth.MintAccessToken(otherCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "eve@example.com",
		Role:   enums.UserRoleShopper,
	})
	require.NoError(t, err)

	handler, _, _ := authProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleBlocksMismatch(t *testing.T) {
	handler := RequireRole("admin", logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), "shopper"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), "admin"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
