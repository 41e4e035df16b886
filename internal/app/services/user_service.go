package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/repositories"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
	"github.com/sekolahku/siswa-api/internal/pkg/auth"
	"github.com/sekolahku/siswa-api/internal/pkg/validation"
)

const userPasswordMinLength = 6

// UserService handles user management operations
type UserService interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// validateUser runs the shared name/email checks. All field rules run
// before any persistence so a failing request reports every violation.
func (s *userService) validateUser(ctx context.Context, v *validation.Errors, name, email string, excludeID int64) error {
	v.Required("name", name)

	if v.Required("email", email) {
		v.Email("email", email)
		exists, err := s.userRepo.EmailExists(ctx, email, excludeID)
		if err != nil {
			return fmt.Errorf("error checking email uniqueness: %w", err)
		}
		if exists {
			v.Taken("email")
		}
	}

	return nil
}

// CreateUser validates and persists a new user with a hashed password
func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	v := validation.NewErrors()

	if err := s.validateUser(ctx, v, req.Name, req.Email, 0); err != nil {
		return nil, err
	}

	if v.Required("password", req.Password) {
		v.MinLen("password", req.Password, userPasswordMinLength)
	}

	if v.Has() {
		return nil, apperrors.NewValidationError(v.Fields())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent create can win the email; report it the same
		// way the pre-check would have
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			v.Taken("email")
			return nil, apperrors.NewValidationError(v.Fields())
		}
		return nil, err
	}

	return user, nil
}

// UpdateUser validates and overwrites a user's name and email. The
// password is re-hashed and overwritten only when supplied.
func (s *userService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.NewErrors()

	if err := s.validateUser(ctx, v, req.Name, req.Email, id); err != nil {
		return nil, err
	}

	if req.Password != nil {
		if v.Required("password", *req.Password) {
			v.MinLen("password", *req.Password, userPasswordMinLength)
		}
	}

	if v.Has() {
		return nil, apperrors.NewValidationError(v.Fields())
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			v.Taken("email")
			return nil, apperrors.NewValidationError(v.Fields())
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes a user by ID
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
