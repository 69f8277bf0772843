package services

import (
	"errors"
	"log/slog"
	"strings"

	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateCategory validates and persists a new category for the user. The
// (user, name) pair must be unique.
func (s *categoryService) CreateCategory(userID uuid.UUID, name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrUserNotFound
	}

	duplicate, err := s.categoryRepo.ExistsByUserAndName(userID, name)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrCategoryAlreadyExists
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", userID,
		"name", name)
	return category, nil
}

// GetUserCategories returns all categories owned by the user
func (s *categoryService) GetUserCategories(userID uuid.UUID) ([]models.Category, error) {
	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrUserNotFound
	}

	return s.categoryRepo.GetByUserID(userID)
}

// DeleteCategory removes a category by ID
func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	return s.categoryRepo.Delete(id)
}
