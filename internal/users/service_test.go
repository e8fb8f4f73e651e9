package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/security"
)

var fastPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func setupUserTest(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	svc, err := NewService(ServiceParams{
		UserRepo:    NewRepository(conn),
		PasswordCfg: fastPasswordCfg,
	})
	require.NoError(t, err)
	return svc, conn
}

func seedAccount(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Shopper",
		Email:        email,
		PasswordHash: "x",
		Role:         "shopper",
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestGetUserStripsCredentials(t *testing.T) {
	svc, conn := setupUserTest(t)
	seeded := seedAccount(t, conn, "a@example.com")

	dto, err := svc.GetUser(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, dto.Email)
	assert.Equal(t, seeded.Name, dto.Name)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := setupUserTest(t)

	_, err := svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfileFields(t *testing.T) {
	svc, conn := setupUserTest(t)
	seeded := seedAccount(t, conn, "b@example.com")

	name := "Renamed"
	password := "new password 42"
	dto, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{
		Name:     &name,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", dto.Name)

	var stored models.User
	require.NoError(t, conn.First(&stored, "id = ?", seeded.ID).Error)
	ok, err := security.VerifyPassword(password, stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateProfileEmptyNameRejected(t *testing.T) {
	svc, conn := setupUserTest(t)
	seeded := seedAccount(t, conn, "c@example.com")

	empty := "   "
	_, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{Name: &empty})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc, conn := setupUserTest(t)
	seedAccount(t, conn, "taken@example.com")
	second := seedAccount(t, conn, "free@example.com")

	taken := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), second.ID, UpdateProfileInput{Email: &taken})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestListUsers(t *testing.T) {
	svc, conn := setupUserTest(t)
	seedAccount(t, conn, "one@example.com")
	seedAccount(t, conn, "two@example.com")

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
