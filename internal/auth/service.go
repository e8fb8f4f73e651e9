package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/internal/mailer"
	"github.com/jkmondal/shopline-backend/internal/users"
	pkgauth "github.com/jkmondal/shopline-backend/pkg/auth"
	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db"
	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/enums"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/logger"
	"github.com/jkmondal/shopline-backend/pkg/security"
)

// SignupInput carries the fields for account creation.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     enums.UserRole
	ImageURL string
}

// AuthResultDTO bundles the profile with a freshly minted token.
type AuthResultDTO struct {
	User  users.UserDTO `json:"user"`
	Token string        `json:"token"`
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo    *users.Repository
	JWTCfg      config.JWTConfig
	PasswordCfg config.PasswordConfig
	Mailer      mailer.Mailer
	Logger      *logger.Logger
}

// Service exposes signup and login.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (AuthResultDTO, error)
	Login(ctx context.Context, email, password string) (AuthResultDTO, error)
}

type service struct {
	userRepo    *users.Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	mailer      mailer.Mailer
	logg        *logger.Logger
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mailer is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		userRepo:    params.UserRepo,
		jwtCfg:      params.JWTCfg,
		passwordCfg: params.PasswordCfg,
		mailer:      params.Mailer,
		logg:        params.Logger,
	}, nil
}

// Signup creates the account, mints a token, and kicks off the welcome
// mail without blocking the response.
func (s *service) Signup(ctx context.Context, input SignupInput) (AuthResultDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}

	role := input.Role
	if role == "" {
		role = enums.UserRoleShopper
	}
	if !role.IsValid() {
		return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing user")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ImageURL:     input.ImageURL,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	token, err := s.mintToken(user)
	if err != nil {
		return AuthResultDTO{}, err
	}

	go s.sendWelcome(user.Email, user.Name)

	return AuthResultDTO{User: users.ToDTO(user), Token: token}, nil
}

// Login verifies credentials and mints a fresh token.
func (s *service) Login(ctx context.Context, email, password string) (AuthResultDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return AuthResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return AuthResultDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.mintToken(user)
	if err != nil {
		return AuthResultDTO{}, err
	}

	return AuthResultDTO{User: users.ToDTO(user), Token: token}, nil
}

func (s *service) mintToken(user *models.User) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return token, nil
}

func (s *service) sendWelcome(email, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.mailer.SendWelcome(ctx, email, name); err != nil {
		s.logg.Warn(ctx, "welcome mail delivery failed")
	}
}
