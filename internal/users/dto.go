package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/pkg/db/models"
)

// CreateUserInput holds the payload to register a user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput holds optional mutation values for a user. Nil fields are
// left unchanged; PersonalInfo merges field by field.
type UpdateUserInput struct {
	Username     *string
	Email        *string
	Password     *string
	PersonalInfo *PersonalInfoInput
}

// PersonalInfoInput carries the optional profile fields.
type PersonalInfoInput struct {
	FirstName   *string
	LastName    *string
	Address     *string
	PhoneNumber *string
}

// UserDTO is the user payload returned to clients. The password hash never
// leaves the service.
type UserDTO struct {
	ID           uuid.UUID           `json:"id"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	PersonalInfo models.PersonalInfo `json:"personal_info"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewUserDTO builds a DTO from the persisted model.
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PersonalInfo: user.PersonalInfo,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
