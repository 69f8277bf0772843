package handlers

import (
	"net/http"

	"billbox/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	seeder services.SeederServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(seeder services.SeederServiceInterface) *DevHandler {
	return &DevHandler{seeder: seeder}
}

// SeedDemoData populates the database with generated demo data
//
// Method: POST /dev/seed
// Environment: Development only
//
// Query parameters:
//   - users: Number of demo users to create (default: 3, max: 20)
//
// Success Response: 201 Created with per-entity counts
func (h *DevHandler) SeedDemoData(c echo.Context) error {
	userCount := getIntParam(c, "users", 3)
	if userCount < 1 {
		userCount = 1
	}
	if userCount > 20 {
		userCount = 20
	}

	result, err := h.seeder.Seed(userCount)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    result,
		Message: "Demo data generated",
	})
}
