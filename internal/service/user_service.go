package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

const bcryptCost = 12

// CreateUserInput is the DTO for creating a user.
type CreateUserInput struct {
	Email          string          `json:"email" binding:"required,email"`
	Password       string          `json:"password" binding:"required,min=8"`
	FullName       string          `json:"full_name" binding:"required"`
	Phone          string          `json:"phone"`
	EmployeeNumber string          `json:"employee_number"`
	Role           domain.UserRole `json:"role" binding:"required"`
	JobID          *uuid.UUID      `json:"job_id"`
}

// UpdateUserInput is the DTO for updating a user. Role, JobID and IsActive
// are admin-only.
type UpdateUserInput struct {
	Email          *string          `json:"email"`
	FullName       *string          `json:"full_name"`
	Phone          *string          `json:"phone"`
	EmployeeNumber *string          `json:"employee_number"`
	Password       *string          `json:"password" binding:"omitempty,min=8"`
	Role           *domain.UserRole `json:"role"`
	JobID          *uuid.UUID       `json:"job_id"`
	ClearJob       bool             `json:"clear_job"`
	IsActive       *bool            `json:"is_active"`
}

func (in *UpdateUserInput) touchesAdminFields() bool {
	return in.Role != nil || in.JobID != nil || in.ClearJob || in.IsActive != nil
}

// UserService defines the user management contract.
type UserService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, tenantID, callerID uuid.UUID, callerRole domain.UserRole, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.UserFilter, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, tenantID, callerID uuid.UUID, callerRole domain.UserRole, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
}

type userService struct {
	repo    port.UserRepository
	jobRepo port.JobRepository
	cache   port.PermissionCache
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository, jobRepo port.JobRepository, cache port.PermissionCache) UserService {
	return &userService{repo: repo, jobRepo: jobRepo, cache: cache}
}

func canAccessUser(callerID uuid.UUID, callerRole domain.UserRole, userID uuid.UUID) bool {
	return callerRole == domain.RoleAdmin || callerID == userID
}

func (s *userService) Create(ctx context.Context, tenantID uuid.UUID, input CreateUserInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, fmt.Errorf("role %q: %w", input.Role, domain.ErrValidation)
	}
	if input.JobID != nil {
		if _, err := s.jobRepo.GetByID(ctx, tenantID, *input.JobID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		TenantID:         tenantID,
		JobID:            input.JobID,
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:     string(hash),
		FullName:         input.FullName,
		Phone:            input.Phone,
		EmployeeNumber:   input.EmployeeNumber,
		Role:             input.Role,
		IsActive:         true,
		FavoriteServices: []string{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, tenantID, callerID uuid.UUID, callerRole domain.UserRole, userID uuid.UUID) (*domain.User, error) {
	if !canAccessUser(callerID, callerRole, userID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, tenantID, userID)
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, filter port.UserFilter, offset, limit int) ([]domain.User, int, error) {
	if filter.Role != nil && !domain.ValidUserRoles[*filter.Role] {
		return nil, 0, fmt.Errorf("role filter %q: %w", *filter.Role, domain.ErrValidation)
	}
	if filter.JobID != nil {
		if _, err := s.jobRepo.GetByID(ctx, tenantID, *filter.JobID); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, tenantID, filter, offset, limit)
}

func (s *userService) Update(ctx context.Context, tenantID, callerID uuid.UUID, callerRole domain.UserRole, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if !canAccessUser(callerID, callerRole, userID) {
		return nil, domain.ErrForbidden
	}
	if input.touchesAdminFields() && callerRole != domain.RoleAdmin {
		return nil, domain.ErrInsufficientRole
	}

	user, err := s.repo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.EmployeeNumber != nil {
		user.EmployeeNumber = *input.EmployeeNumber
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.Role != nil {
		if !domain.ValidUserRoles[*input.Role] {
			return nil, fmt.Errorf("role %q: %w", *input.Role, domain.ErrValidation)
		}
		user.Role = *input.Role
	}
	jobChanged := false
	switch {
	case input.ClearJob:
		jobChanged = user.JobID != nil
		user.JobID = nil
	case input.JobID != nil:
		if _, err := s.jobRepo.GetByID(ctx, tenantID, *input.JobID); err != nil {
			return nil, err
		}
		jobChanged = user.JobID == nil || *user.JobID != *input.JobID
		user.JobID = input.JobID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if jobChanged || input.Role != nil {
		if err := s.cache.InvalidateUser(ctx, tenantID, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("userService.Update: permission cache invalidation failed")
		}
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, userID); err != nil {
		return err
	}
	if err := s.cache.InvalidateUser(ctx, tenantID, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("userService.Delete: permission cache invalidation failed")
	}
	return nil
}
