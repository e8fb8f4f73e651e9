package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/users"
	pkgauth "github.com/jkmondal/shopline-backend/pkg/auth"
	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
)

// fast argon parameters keep the hashing step cheap in tests
var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "shopline",
	ExpirationMinutes: 60,
}

type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	names []string
}

func (m *recordingMailer) SendWelcome(_ context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	m.names = append(m.names, name)
	return nil
}

func setupAuthTest(t *testing.T) (Service, *recordingMailer) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	mail := &recordingMailer{}
	svc, err := NewService(ServiceParams{
		UserRepo:    users.NewRepository(conn),
		JWTCfg:      testJWTCfg,
		PasswordCfg: testPasswordCfg,
		Mailer:      mail,
		Logger:      logger.Nop(),
	})
	require.NoError(t, err)
	return svc, mail
}

func TestSignupAndLoginRoundTrip(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	signedUp, err := svc.Signup(ctx, SignupInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", signedUp.User.Email)
	assert.Equal(t, enums.UserRoleShopper, signedUp.User.Role)
	assert.NotEmpty(t, signedUp.Token)

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, signedUp.Token)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, claims.UserID)

	loggedIn, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Name: "Ada", Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Name: "Eve", Email: "dup@example.com", Password: "password456"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestSignupAdminRole(t *testing.T) {
	svc, _ := setupAuthTest(t)

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "password123",
		Role:     enums.UserRoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, result.User.Role)
}

func TestSignupInvalidRole(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Odd",
		Email:    "odd@example.com",
		Password: "password123",
		Role:     enums.UserRole("superuser"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
