package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/repository"
)

// UserService implements user CRUD with unique-email enforcement.
type UserService struct {
	userRepo repository.UserRepository
}

// CreateUserInput carries a signup request.
type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput carries a partial user update; nil fields are left as is.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// AddUser registers a user; the email must be syntactically plausible and unused.
func (s *UserService) AddUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User with email " + in.Email + " already exists")
	}

	user := &models.User{Name: in.Name, Email: in.Email}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "new user added", slog.Uint64("user_id", uint64(user.ID)))
	return user, nil
}

// UpdateUser applies a partial update. A changed email must not belong to
// another user.
func (s *UserService) UpdateUser(ctx context.Context, userID uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		existing, err := s.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, models.NewConflictError("User with email " + *in.Email + " already exists")
		}
		user.Email = *in.Email
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID returns one user.
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetAllUsers returns every user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes a user after confirming it exists.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return models.NewValidationError("Email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return models.NewValidationError("Email is not valid")
	}
	return nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
