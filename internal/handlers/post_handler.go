package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	commentRepository    repositories.CommentRepository
	engagementRepository repositories.EngagementRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	engagementRepo repositories.EngagementRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:       postRepo,
		userRepository:       userRepo,
		commentRepository:    commentRepo,
		engagementRepository: engagementRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// EnrichedPost includes the author's compact profile and, when the caller is
// authenticated, whether they have upped the post.
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	UserHasUpped bool               `json:"user_has_upped"`
}

func (h *PostHandler) enrichPost(post *models.Post, viewerID uint) EnrichedPost {
	enriched := EnrichedPost{Post: *post}
	if author, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
		enriched.Author = author.ToCompact()
	}
	if viewerID != 0 {
		if hasUpped, err := h.engagementRepository.HasUserUppedPost(post.ID.Hex(), viewerID); err == nil {
			enriched.UserHasUpped = hasUpped
		}
	}
	return enriched
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:     user.ID,
		Title:        req.Title,
		Content:      req.Content,
		CategorySlug: req.CategorySlug,
		ThumbnailURL: req.ThumbnailURL,
		ImageURLs:    req.ImageURLs,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts retrieves posts with pagination, optionally filtered to a category
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), c.QueryParam("category"), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]EnrichedPost, len(posts))
	for i := range posts {
		enriched[i] = h.enrichPost(&posts[i], 0)
	}
	return c.JSON(http.StatusOK, enriched)
}

// GetPost retrieves a single post, enriched with the viewer's up state
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	var viewerID uint
	if user, herr := currentUser(c, h.userRepository); herr == nil {
		viewerID = user.ID
	}
	return c.JSON(http.StatusOK, h.enrichPost(post, viewerID))
}

// UpdatePost updates an existing post (owner only)
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.CategorySlug != "" {
		post.CategorySlug = req.CategorySlug
	}
	if req.ThumbnailURL != "" {
		post.ThumbnailURL = req.ThumbnailURL
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post (owner only) and cascades its comments and
// engagement edges.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The post is gone; remaining cleanup is best-effort.
	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		log.Printf("failed to list comments for deleted post %s: %v", postID, err)
	}
	for i := range comments {
		if err := h.engagementRepository.DeleteEdgesForComment(comments[i].ID); err != nil {
			log.Printf("failed to delete like edges for comment %d: %v", comments[i].ID, err)
		}
	}
	if err := h.commentRepository.DeleteCommentsByPostID(postID); err != nil {
		log.Printf("failed to delete comments for post %s: %v", postID, err)
	}
	if err := h.engagementRepository.DeleteEdgesForPost(postID); err != nil {
		log.Printf("failed to delete up edges for post %s: %v", postID, err)
	}

	return c.NoContent(http.StatusNoContent)
}
