package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shopline-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
		Role:   enums.UserRoleShopper,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, enums.UserRoleShopper, claims.Role)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestMintAccessToken_Invalid(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	_, err := MintAccessToken(config.JWTConfig{Issuer: "x"}, now, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleShopper})
	require.Error(t, err)

	_, err = MintAccessToken(cfg, now, AccessTokenPayload{Role: enums.UserRoleShopper})
	require.Error(t, err)

	_, err = MintAccessToken(cfg, now, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRole("superuser")})
	require.Error(t, err)
}

func TestParseAccessToken_RejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "old@example.com",
		Role:   enums.UserRoleAdmin,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	require.Error(t, err)
}

func TestParseAccessToken_RejectsWrongIssuer(t *testing.T) {
	minted, err := MintAccessToken(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 60,
	}, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleShopper,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWTConfig(), minted)
	require.Error(t, err)
}
