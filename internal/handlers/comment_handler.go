package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/notify"
	"github.com/upboard/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository    repositories.CommentRepository
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	engagementRepository repositories.EngagementRepository
	emitter              *notify.Emitter
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	engagementRepo repositories.EngagementRepository,
	emitter *notify.Emitter,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:    commentRepo,
		postRepository:       postRepo,
		userRepository:       userRepo,
		engagementRepository: engagementRepo,
		emitter:              emitter,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// EnrichedComment includes the author's compact profile and the viewer's
// like state.
type EnrichedComment struct {
	models.Comment
	Author       models.UserCompact `json:"author"`
	UserHasLiked bool               `json:"user_has_liked"`
}

// CreateComment creates a new comment on a post and notifies the post author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		PostID:  postID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.postRepository.ApplyCommentsDelta(c.Request().Context(), postID, 1); err != nil {
		log.Printf("failed to bump comments count for post %s: %v", postID, err)
	}

	// Notify after the comment committed, never before.
	cid := comment.ID
	if _, err := h.emitter.EmitIfApplicable(user.ID, post.AuthorID, models.NotificationTypeComment, postID, &cid); err != nil {
		log.Printf("failed to emit comment notification for post %s: %v", postID, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments for a specific post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedByViewer := make(map[uint]bool)
	if user, herr := currentUser(c, h.userRepository); herr == nil {
		ids := make([]uint, len(comments))
		for i := range comments {
			ids[i] = comments[i].ID
		}
		if liked, err := h.engagementRepository.UserLikedCommentIDs(user.ID, ids); err == nil {
			for _, id := range liked {
				likedByViewer[id] = true
			}
		}
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedComment, len(comments))
	for i, comment := range comments {
		enriched[i] = EnrichedComment{Comment: comment, UserHasLiked: likedByViewer[comment.ID]}
		if author, ok := userCache[comment.UserID]; ok {
			enriched[i].Author = author
		} else if u, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
			compact := u.ToCompact()
			userCache[comment.UserID] = compact
			enriched[i].Author = compact
		}
	}
	return c.JSON(http.StatusOK, enriched)
}

// UpdateComment updates an existing comment (owner only)
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment (owner only) and cascades its like edges
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.engagementRepository.DeleteEdgesForComment(uint(commentID)); err != nil {
		log.Printf("failed to delete like edges for comment %d: %v", commentID, err)
	}
	if _, err := h.postRepository.ApplyCommentsDelta(c.Request().Context(), comment.PostID, -1); err != nil {
		log.Printf("failed to drop comments count for post %s: %v", comment.PostID, err)
	}

	return c.NoContent(http.StatusNoContent)
}
