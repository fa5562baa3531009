package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a board post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint               `json:"author_id" bson:"author_id"`
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content" bson:"content"` // serialized rich-text document
	CategorySlug  string             `json:"category_slug,omitempty" bson:"category_slug,omitempty"`
	ThumbnailURL  string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	UpsCount      int64              `json:"ups_count" bson:"ups_count"`
	CommentsCount int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Content      string   `json:"content" validate:"required"`
	CategorySlug string   `json:"category_slug,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	ImageURLs    []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title        string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content      string   `json:"content,omitempty"`
	CategorySlug string   `json:"category_slug,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	ImageURLs    []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
