package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/config"
	"github.com/evermart/evermart-backend/pkg/db"
	"github.com/evermart/evermart-backend/pkg/db/models"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/security"
)

// Service exposes the user account operations.
type Service interface {
	ListUsers(ctx context.Context) ([]UserDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserStore is the persistence surface the service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        UserStore
	passwordCfg config.PasswordConfig
}

// NewService constructs a user service instance.
func NewService(repo UserStore, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// ListUsers returns every account. Zero users is NotFound.
func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no users found")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewUserDTO(&rows[i]))
	}
	return out, nil
}

// GetUser loads one account by ID.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

// CreateUser registers a new account. Email uniqueness is checked
// case-insensitively before the insert.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.Username) == "" {
		details["username"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "required"
	}
	if input.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "all fields are required").WithDetails(details)
	}

	if err := s.ensureEmailFree(ctx, input.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate email or username")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	dto := NewUserDTO(created)
	return &dto, nil
}

// UpdateUser applies the provided fields. Updates keeping the user's own
// email pass the duplicate check.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Username != nil && strings.TrimSpace(*input.Username) != "" {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.PersonalInfo != nil {
		applyPersonalInfo(&user.PersonalInfo, input.PersonalInfo)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate email or username")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	dto := NewUserDTO(updated)
	return &dto, nil
}

// DeleteUser removes the account.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	return nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check duplicate email")
	}
	if existing.ID != selfID {
		return pkgerrors.New(pkgerrors.CodeConflict, "duplicate email")
	}
	return nil
}

func applyPersonalInfo(target *models.PersonalInfo, input *PersonalInfoInput) {
	if input.FirstName != nil {
		target.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		target.LastName = *input.LastName
	}
	if input.Address != nil {
		target.Address = *input.Address
	}
	if input.PhoneNumber != nil {
		target.PhoneNumber = *input.PhoneNumber
	}
}
