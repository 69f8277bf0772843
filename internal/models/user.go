package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrInvalidEmail = errors.New("invalid email address")
)

// User mirrors a user at the hosted auth provider. Rows are created when a
// provider identity first touches the API; the provider owns credentials and
// sessions, this table owns the running balance.
type User struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"user_id"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName string          `gorm:"type:varchar(100)" json:"display_name,omitempty"`
	Money       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"money"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	Categories     []Category      `gorm:"foreignKey:UserID" json:"-"`
	Transactions   []Transaction   `gorm:"foreignKey:UserID" json:"-"`
	RecurringRules []RecurringRule `gorm:"foreignKey:UserID" json:"-"`
	Budgets        []Budget        `gorm:"foreignKey:UserID" json:"-"`
	Receipts       []Receipt       `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for User
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

// Validate checks user invariants before persistence
func (u *User) Validate() error {
	if u.Email != "" && !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}
