package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkmondal/shopline-backend/pkg/config"
	"github.com/jkmondal/shopline-backend/pkg/db"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
	"github.com/jkmondal/shopline-backend/pkg/security"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	UserRepo    *Repository
	PasswordCfg config.PasswordConfig
}

// Service exposes profile management rules.
type Service interface {
	GetUser(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
}

type service struct {
	userRepo    *Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		userRepo:    params.UserRepo,
		passwordCfg: params.PasswordCfg,
	}, nil
}

// GetUser returns a single profile without credentials.
func (s *service) GetUser(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return ToDTO(user), nil
}

// UpdateProfile applies the provided mutations. Role is never touched.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		user.Email = email
	}
	if input.Password != nil {
		hash, hashErr := security.HashPassword(*input.Password, s.passwordCfg)
		if hashErr != nil {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, hashErr, "invalid password")
		}
		user.PasswordHash = hash
	}
	if input.ImageURL != nil {
		user.ImageURL = *input.ImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	return ToDTO(user), nil
}

// ListUsers returns every account without credential fields.
func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out, nil
}
