package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jkmondal/shopline-backend/pkg/db/models"
	"github.com/jkmondal/shopline-backend/pkg/enums"
)

// UserDTO is the credential-free representation returned to clients.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	ImageURL  string         `json:"image_url,omitempty"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToDTO strips credentials from the persisted row.
func ToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ImageURL:  user.ImageURL,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateProfileInput carries the optional profile mutations.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	ImageURL *string
}
