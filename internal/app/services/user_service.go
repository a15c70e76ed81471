package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

// UserService defines the interface for admin user management
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ToggleActive(ctx context.Context, admin models.Principal, userID int64) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, tokenRepo repositories.ITokenRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// ListUsers returns every account, newest first
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ToggleActive flips the active flag of an account. Admins cannot deactivate
// themselves. Deactivation revokes every refresh token of the user.
func (s *userServiceImpl) ToggleActive(ctx context.Context, admin models.Principal, userID int64) (*models.User, error) {
	if admin.UserID == userID {
		return nil, apperrors.NewInvalidStateError("you cannot change the status of your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.SetActive(ctx, userID, user.IsActive); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			return nil, fmt.Errorf("revoke tokens of deactivated user: %w", err)
		}
	}

	s.logger.Info().Int64("userID", userID).Int64("adminID", admin.UserID).Bool("isActive", user.IsActive).Msg("User status changed")
	return user, nil
}
