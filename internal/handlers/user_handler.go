package handlers

import (
	"net/http"

	"billbox/internal/errors"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetAllUsers lists every user
// @Summary List users
// @Description Returns all users with their current balances
// @Tags Users
// @Produce json
// @Success 200 {array} models.User "Users"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user and their hosted auth provider account
// @Summary Delete user (admin)
// @Description Deletes the user's auth provider account, then the application row
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User UUID"
// @Success 200 {object} SuccessResponse "User deleted"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "USER_003 - Provider or database deletion failed"
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendError(c, errors.UserDeleteFailed)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}
