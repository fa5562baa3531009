package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/notify"
	"github.com/upboard/backend/internal/repositories"
)

// EngagementHandler handles post UP and comment like toggles. A toggle is
// one logical operation: the edge and the cached counter move together, and
// a failed counter write is compensated so the caller never observes a
// half-applied toggle.
type EngagementHandler struct {
	engagementRepository repositories.EngagementRepository
	postRepository       repositories.PostRepository
	commentRepository    repositories.CommentRepository
	userRepository       repositories.UserRepository
	emitter              *notify.Emitter
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(
	engagementRepo repositories.EngagementRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	emitter *notify.Emitter,
) *EngagementHandler {
	return &EngagementHandler{
		engagementRepository: engagementRepo,
		postRepository:       postRepo,
		commentRepository:    commentRepo,
		userRepository:       userRepo,
		emitter:              emitter,
	}
}

// RegisterEngagementRoutes registers engagement-related routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/up", h.TogglePostUp)
	g.GET("/posts/:post_id/up/status", h.GetPostUpStatus)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
}

// TogglePostUp flips the authenticated user's UP on a post and returns the
// new state and count. Toggling on notifies the post author; toggling off
// leaves any earlier notification in place.
func (h *EngagementHandler) TogglePostUp(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	active, err := h.engagementRepository.TogglePostUp(postID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Engagement write failed")
	}

	delta := int64(-1)
	if active {
		delta = 1
	}
	newCount, err := h.postRepository.ApplyUpsDelta(c.Request().Context(), postID, delta)
	if err != nil {
		// Counter write failed after the edge flipped: flip the edge back so
		// membership and counter stay consistent, then report the failure.
		if _, cerr := h.engagementRepository.TogglePostUp(postID, user.ID); cerr != nil {
			log.Printf("failed to compensate up toggle for post %s user %d: %v", postID, user.ID, cerr)
		}
		return echo.NewHTTPError(http.StatusBadGateway, "Engagement write failed")
	}

	if active {
		if _, err := h.emitter.EmitIfApplicable(user.ID, post.AuthorID, models.NotificationTypeUp, postID, nil); err != nil {
			log.Printf("failed to emit up notification for post %s: %v", postID, err)
		}
	}

	return c.JSON(http.StatusOK, models.ToggleResult{Active: active, NewCount: newCount})
}

// GetPostUpStatus reports whether the authenticated user has upped a post,
// along with the cached count.
func (h *EngagementHandler) GetPostUpStatus(c echo.Context) error {
	user, herr := currentUser(c, h.userRepository)
	if herr != nil {
		return herr
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	hasUpped, err := h.engagementRepository.HasUserUppedPost(postID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":   postID,
		"has_upped": hasUpped,
		"ups_count": post.UpsCount,
	})
}

// ToggleCommentLike flips the authenticated user's like on a comment. Edge
// and cached count commit in one transaction in the repository.
func (h *EngagementHandler) ToggleCommentLike(c echo.Context) error {
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

	active, newCount, err := h.engagementRepository.ToggleCommentLike(uint(commentID), user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "Engagement write failed")
	}

	if active {
		cid := comment.ID
		if _, err := h.emitter.EmitIfApplicable(user.ID, comment.UserID, models.NotificationTypeLike, comment.PostID, &cid); err != nil {
			log.Printf("failed to emit like notification for comment %d: %v", comment.ID, err)
		}
	}

	return c.JSON(http.StatusOK, models.ToggleResult{Active: active, NewCount: newCount})
}
