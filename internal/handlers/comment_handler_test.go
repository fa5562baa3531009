package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/notify"
	"github.com/upboard/backend/pkg/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentTestEnv struct {
	e          *echo.Echo
	handler    *CommentHandler
	users      *fakeUserRepository
	posts      *fakePostRepository
	comments   *fakeCommentRepository
	engagement *fakeEngagementRepository
	notifs     *fakeNotificationRepository

	alice *models.User
	bob   *models.User
}

func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepository()
	posts := newFakePostRepository()
	comments := newFakeCommentRepository()
	engagement := newFakeEngagementRepository(comments)
	notifs := newFakeNotificationRepository()
	emitter := notify.NewEmitter(notifs, users, notify.NewHub())

	env := &commentTestEnv{
		e:          e,
		handler:    NewCommentHandler(comments, posts, users, engagement, emitter),
		users:      users,
		posts:      posts,
		comments:   comments,
		engagement: engagement,
		notifs:     notifs,
	}
	env.alice = users.add(models.User{Username: "alice", Nickname: "Alice", FirebaseUID: "uid-alice"})
	env.bob = users.add(models.User{Username: "bob", Nickname: "Bob", FirebaseUID: "uid-bob"})
	return env
}

func (env *commentTestEnv) addPost(author *models.User) *models.Post {
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: author.ID, Title: "hello"}
	env.posts.posts[post.ID.Hex()] = post
	return post
}

func (env *commentTestEnv) createComment(postID, firebaseUID, content string) (*httptest.ResponseRecorder, error) {
	payload, _ := json.Marshal(models.CreateCommentRequest{Content: content})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(payload)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	if firebaseUID != "" {
		c.Set("firebaseUID", firebaseUID)
	}
	return rec, env.handler.CreateComment(c)
}

func TestCreateComment_NotifiesPostAuthor(t *testing.T) {
	env := newCommentTestEnv(t)
	post := env.addPost(env.bob)

	rec, err := env.createComment(post.ID.Hex(), "uid-alice", "great post")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, env.alice.ID, created.UserID)
	assert.Equal(t, "great post", created.Content)
	assert.Equal(t, int64(1), post.CommentsCount)

	require.Len(t, env.notifs.rows, 1)
	n := env.notifs.rows[0]
	assert.Equal(t, models.NotificationTypeComment, n.Type)
	assert.Equal(t, env.alice.ID, n.ActorID)
	assert.Equal(t, env.bob.ID, n.RecipientID)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, created.ID, *n.CommentID)
	assert.Equal(t, "Alice commented on your post", n.Message)
}

func TestCreateComment_OwnPostNoNotification(t *testing.T) {
	env := newCommentTestEnv(t)
	post := env.addPost(env.alice)

	rec, err := env.createComment(post.ID.Hex(), "uid-alice", "my own post")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, env.notifs.rows)
}

func TestCreateComment_EmptyContentRejected(t *testing.T) {
	env := newCommentTestEnv(t)
	post := env.addPost(env.bob)

	_, err := env.createComment(post.ID.Hex(), "uid-alice", "")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Empty(t, env.notifs.rows)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	env := newCommentTestEnv(t)

	_, err := env.createComment(primitive.NewObjectID().Hex(), "uid-alice", "hello")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetCommentsByPostID_EnrichesAuthorAndLikeState(t *testing.T) {
	env := newCommentTestEnv(t)
	post := env.addPost(env.bob)
	postID := post.ID.Hex()

	comment := &models.Comment{PostID: postID, UserID: env.bob.ID, Content: "first"}
	require.NoError(t, env.comments.CreateComment(comment))
	_, _, err := env.engagement.ToggleCommentLike(comment.ID, env.alice.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	c.Set("firebaseUID", "uid-alice")
	require.NoError(t, env.handler.GetCommentsByPostID(c))

	var enriched []EnrichedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enriched))
	require.Len(t, enriched, 1)
	assert.Equal(t, "bob", enriched[0].Author.Username)
	assert.True(t, enriched[0].UserHasLiked)
	assert.Equal(t, int64(1), enriched[0].LikeCount)
}

func TestDeleteComment_OwnerOnlyAndCascades(t *testing.T) {
	env := newCommentTestEnv(t)
	post := env.addPost(env.bob)
	postID := post.ID.Hex()
	post.CommentsCount = 1

	comment := &models.Comment{PostID: postID, UserID: env.alice.ID, Content: "mine"}
	require.NoError(t, env.comments.CreateComment(comment))
	_, _, err := env.engagement.ToggleCommentLike(comment.ID, env.bob.ID)
	require.NoError(t, err)

	// Bob cannot delete Alice's comment.
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(comment.ID), 10))
	c.Set("firebaseUID", "uid-bob")
	derr := env.handler.DeleteComment(c)
	var he *echo.HTTPError
	require.ErrorAs(t, derr, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	// Alice can, and the like edges and comments count go with it.
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(comment.ID), 10))
	c.Set("firebaseUID", "uid-alice")
	require.NoError(t, env.handler.DeleteComment(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = env.comments.GetCommentByID(comment.ID)
	assert.Error(t, err)
	likes, _ := env.engagement.CountCommentLikes(comment.ID)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(0), post.CommentsCount)
}
