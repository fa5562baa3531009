package handlers

import (
	"context"
	"sort"

	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/repositories"
)

// In-memory repository fakes shared by the handler tests.

type fakeUserRepository struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepository) add(user models.User) *models.User {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.ID] = &user
	return &user
}

func (f *fakeUserRepository) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepository) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) SearchUsers(query string) ([]models.User, error) {
	return nil, nil
}

type fakePostRepository struct {
	posts       map[string]*models.Post
	upsDeltaErr error
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: make(map[string]*models.Post)}
}

func (f *fakePostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepository) GetAllPosts(ctx context.Context, categorySlug string, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	return nil
}

func (f *fakePostRepository) DeletePost(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepository) ApplyUpsDelta(ctx context.Context, postID string, delta int64) (int64, error) {
	if f.upsDeltaErr != nil {
		return 0, f.upsDeltaErr
	}
	post, ok := f.posts[postID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	post.UpsCount += delta
	if post.UpsCount < 0 {
		post.UpsCount = 0
	}
	return post.UpsCount, nil
}

func (f *fakePostRepository) ApplyCommentsDelta(ctx context.Context, postID string, delta int64) (int64, error) {
	post, ok := f.posts[postID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	post.CommentsCount += delta
	if post.CommentsCount < 0 {
		post.CommentsCount = 0
	}
	return post.CommentsCount, nil
}

type fakeCommentRepository struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: make(map[uint]*models.Comment)}
}

func (f *fakeCommentRepository) CreateComment(comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCommentRepository) UpdateComment(comment *models.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepository) DeleteComment(id uint) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepository) DeleteCommentsByPostID(postID string) error {
	for id, c := range f.comments {
		if c.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

// fakeEngagementRepository mirrors the transactional repository: a comment
// like toggle moves the edge and the cached like_count together.
type fakeEngagementRepository struct {
	postUps      map[string]map[uint]bool
	commentLikes map[uint]map[uint]bool
	comments     map[uint]*models.Comment
	toggleErr    error
}

func newFakeEngagementRepository(comments *fakeCommentRepository) *fakeEngagementRepository {
	return &fakeEngagementRepository{
		postUps:      make(map[string]map[uint]bool),
		commentLikes: make(map[uint]map[uint]bool),
		comments:     comments.comments,
	}
}

func (f *fakeEngagementRepository) TogglePostUp(postID string, userID uint) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	if f.postUps[postID] == nil {
		f.postUps[postID] = make(map[uint]bool)
	}
	if f.postUps[postID][userID] {
		delete(f.postUps[postID], userID)
		return false, nil
	}
	f.postUps[postID][userID] = true
	return true, nil
}

func (f *fakeEngagementRepository) HasUserUppedPost(postID string, userID uint) (bool, error) {
	return f.postUps[postID][userID], nil
}

func (f *fakeEngagementRepository) CountPostUps(postID string) (int64, error) {
	return int64(len(f.postUps[postID])), nil
}

func (f *fakeEngagementRepository) ToggleCommentLike(commentID, userID uint) (bool, int64, error) {
	comment, ok := f.comments[commentID]
	if !ok {
		return false, 0, repositories.ErrNotFound
	}
	if f.commentLikes[commentID] == nil {
		f.commentLikes[commentID] = make(map[uint]bool)
	}
	if f.commentLikes[commentID][userID] {
		delete(f.commentLikes[commentID], userID)
		if comment.LikeCount > 0 {
			comment.LikeCount--
		}
		return false, comment.LikeCount, nil
	}
	f.commentLikes[commentID][userID] = true
	comment.LikeCount++
	return true, comment.LikeCount, nil
}

func (f *fakeEngagementRepository) CountCommentLikes(commentID uint) (int64, error) {
	return int64(len(f.commentLikes[commentID])), nil
}

func (f *fakeEngagementRepository) UserLikedCommentIDs(userID uint, commentIDs []uint) ([]uint, error) {
	var liked []uint
	for _, id := range commentIDs {
		if f.commentLikes[id][userID] {
			liked = append(liked, id)
		}
	}
	return liked, nil
}

func (f *fakeEngagementRepository) DeleteEdgesForPost(postID string) error {
	delete(f.postUps, postID)
	return nil
}

func (f *fakeEngagementRepository) DeleteEdgesForComment(commentID uint) error {
	delete(f.commentLikes, commentID)
	return nil
}

type fakeNotificationRepository struct {
	rows   []models.Notification
	nextID uint
}

func newFakeNotificationRepository() *fakeNotificationRepository {
	return &fakeNotificationRepository{}
}

func (f *fakeNotificationRepository) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepository) forRecipient(recipientID uint) []models.Notification {
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].RecipientID == recipientID {
			out = append(out, f.rows[i])
		}
	}
	return out
}

func (f *fakeNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	all := f.forRecipient(recipientID)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	for i := range f.rows {
		if f.rows[i].ID == notificationID && f.rows[i].RecipientID == recipientID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepository) MarkAllAsRead(recipientID uint) error {
	for i := range f.rows {
		if f.rows[i].RecipientID == recipientID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepository) DeleteRead(recipientID uint) (int64, error) {
	var kept []models.Notification
	var deleted int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && n.IsRead {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeNotificationRepository) DeleteByIDs(recipientID uint, ids []uint) (int64, int64, error) {
	selected := make(map[uint]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	var kept []models.Notification
	var deleted, deletedUnread int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && selected[n.ID] {
			deleted++
			if !n.IsRead {
				deletedUnread++
			}
			continue
		}
		kept = append(kept, n)
	}
	f.rows = kept
	return deleted, deletedUnread, nil
}
