package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxCategoryNameLength = 50

// hexColorRegex accepts #RGB and #RRGGBB display colors
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

var (
	ErrCategoryNameRequired = errors.New("category name must not be empty")
	ErrCategoryNameTooLong  = errors.New("category name must be at most 50 characters")
	ErrInvalidHexColor      = errors.New("color must be a valid hex color (#RGB or #RRGGBB)")
)

// Category is a user-defined transaction grouping. The (user_id, name) pair is
// unique per user; transactions and budgets reference but do not own it.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"category_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_user_name" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null" json:"color"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidHexColor reports whether s is a #RGB or #RRGGBB color
func IsValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// Validate checks the category name and color constraints
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	if !IsValidHexColor(c.Color) {
		return ErrInvalidHexColor
	}
	return nil
}
