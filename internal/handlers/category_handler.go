package handlers

import (
	"net/http"

	"billbox/internal/dto"
	"billbox/internal/errors"
	"billbox/internal/models"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetUserCategories lists a user's categories
// @Summary List user categories
// @Tags Categories
// @Produce json
// @Param userId path string true "User UUID"
// @Success 200 {array} models.Category "Categories ordered by name"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/categories/{userId} [get]
func (h *CategoryHandler) GetUserCategories(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category for a user
// @Summary Create category
// @Description Creates a category; the (user, name) pair must be unique
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.Category "Created category"
// @Failure 400 {object} errors.ErrorResponse "CATEGORY_002 - Category already exists, CATEGORY_003 - Invalid color"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, req.Color)
	if err != nil {
		switch err {
		case repositories.ErrUserNotFound:
			return SendError(c, errors.UserNotFound)
		case services.ErrCategoryAlreadyExists:
			return SendError(c, errors.CategoryAlreadyExists)
		case models.ErrInvalidHexColor:
			return SendError(c, errors.CategoryInvalidColor)
		case models.ErrCategoryNameRequired:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Category name is required"))
		case models.ErrCategoryNameTooLong:
			return SendError(c, errors.CategoryNameTooLong)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path string true "Category UUID"
// @Success 200 {object} SuccessResponse "Category deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid category ID"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid category ID"))
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if err == repositories.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Category deleted"})
}
