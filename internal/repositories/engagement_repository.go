package repositories

import (
	"errors"

	"github.com/upboard/backend/internal/models"
	"gorm.io/gorm"
)

// EngagementRepository flips engagement edges (post ups, comment likes).
// Each toggle is a single transaction: the edge mutation and, for comment
// likes, the cached like_count both commit or neither does.
type EngagementRepository interface {
	TogglePostUp(postID string, userID uint) (active bool, err error)
	HasUserUppedPost(postID string, userID uint) (bool, error)
	CountPostUps(postID string) (int64, error)
	ToggleCommentLike(commentID, userID uint) (active bool, newCount int64, err error)
	CountCommentLikes(commentID uint) (int64, error)
	UserLikedCommentIDs(userID uint, commentIDs []uint) ([]uint, error)
	DeleteEdgesForPost(postID string) error
	DeleteEdgesForComment(commentID uint) error
}

type postgresEngagementRepository struct {
	db *gorm.DB
}

// NewPostgresEngagementRepository creates a new EngagementRepository backed by PostgreSQL
func NewPostgresEngagementRepository(db *gorm.DB) EngagementRepository {
	return &postgresEngagementRepository{db: db}
}

// TogglePostUp flips the (post, user) up edge. Delete-first keeps the toggle
// race-safe together with the composite unique index: two concurrent
// toggle-ons cannot both insert.
func (r *postgresEngagementRepository) TogglePostUp(postID string, userID uint) (active bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostUp{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			active = false
			return nil
		}
		if err := tx.Create(&models.PostUp{PostID: postID, UserID: userID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return err
		}
		active = true
		return nil
	})
	return active, err
}

// HasUserUppedPost checks if a user currently has an up on a post
func (r *postgresEngagementRepository) HasUserUppedPost(postID string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostUp{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// CountPostUps counts the up edges targeting a post
func (r *postgresEngagementRepository) CountPostUps(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostUp{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// ToggleCommentLike flips the (comment, user) like edge and adjusts the
// comment's cached like_count in the same transaction. The count update is a
// server-side expression, floored at zero on the way down.
func (r *postgresEngagementRepository) ToggleCommentLike(commentID, userID uint) (active bool, newCount int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id").First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			active = false
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadyExists
				}
				return err
			}
			active = true
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
		}

		if err := tx.Select("like_count").First(&comment, commentID).Error; err != nil {
			return err
		}
		newCount = comment.LikeCount
		return nil
	})
	return active, newCount, err
}

// CountCommentLikes counts the like edges targeting a comment
func (r *postgresEngagementRepository) CountCommentLikes(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// UserLikedCommentIDs filters the given comment ids down to those the user
// has liked, one query for a whole comment list.
func (r *postgresEngagementRepository) UserLikedCommentIDs(userID uint, commentIDs []uint) ([]uint, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var liked []uint
	err := r.db.Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &liked).Error
	return liked, err
}

// DeleteEdgesForPost removes all up edges for a post (cascade on post deletion)
func (r *postgresEngagementRepository) DeleteEdgesForPost(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.PostUp{}).Error
}

// DeleteEdgesForComment removes all like edges for a comment (cascade on comment deletion)
func (r *postgresEngagementRepository) DeleteEdgesForComment(commentID uint) error {
	return r.db.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error
}
