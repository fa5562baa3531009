package models

import "time"

// Category represents a board category. Default categories are seeded and
// cannot be removed by users; user-created ones carry their creator.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest defines the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
	Slug string `json:"slug" validate:"required,min=2,max=50,lowercase"`
}
