package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/repositories"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryRepository repositories.CategoryRepository
	userRepository     repositories.UserRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepository: categoryRepo,
		userRepository:     userRepo,
	}
}

// RegisterCategoryRoutes registers category routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.GET("/categories", h.GetCategories)
	g.POST("/categories", h.CreateCategory)
}

// GetCategories lists all categories, defaults first
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryRepository.GetCategories()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a user-defined category
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}

	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	creator := user.ID
	category := &models.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedBy: &creator,
	}
	if err := h.categoryRepository.CreateCategory(category); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "Category already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, category)
}
