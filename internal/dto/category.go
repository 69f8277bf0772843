package dto

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
}
