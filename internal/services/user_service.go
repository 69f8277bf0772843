package services

import (
	"context"
	"fmt"
	"log/slog"

	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
)

type userService struct {
	userRepo  repositories.UserRepositoryInterface
	authAdmin AuthAdminInterface
	logger    *slog.Logger
}

// NewUserService creates a new UserServiceInterface instance
func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	authAdmin AuthAdminInterface,
	logger *slog.Logger,
) UserServiceInterface {
	return &userService{
		userRepo:  userRepo,
		authAdmin: authAdmin,
		logger:    logger,
	}
}

// GetAllUsers returns every user
func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID returns a single user
func (s *userService) GetUserByID(id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// DeleteUser removes the user from the auth provider first, then from the
// application store. If the provider call fails the local row is left intact
// so the account stays consistent with the provider's view.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.authAdmin.DeleteAuthUser(ctx, id); err != nil {
		s.logger.Error("auth provider user deletion failed",
			"user_id", id,
			"error", err)
		return fmt.Errorf("failed to delete auth user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
