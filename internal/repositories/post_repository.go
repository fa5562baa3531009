package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/upboard/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations.
// The cached ups_count and comments_count fields are maintained with
// server-side $inc updates, never read-modify-write from the caller.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context, categorySlug string, skip, limit int64) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	ApplyUpsDelta(ctx context.Context, postID string, delta int64) (int64, error)
	ApplyCommentsDelta(ctx context.Context, postID string, delta int64) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthorID retrieves posts by a specific author from MongoDB
func (r *MongoPostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves posts from MongoDB with pagination, optionally
// filtered to a category.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, categorySlug string, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	filter := bson.M{}
	if categorySlug != "" {
		filter["category_slug"] = categorySlug
	}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post in MongoDB
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":         post.Title,
			"content":       post.Content,
			"category_slug": post.CategorySlug,
			"thumbnail_url": post.ThumbnailURL,
			"image_urls":    post.ImageURLs,
			"updated_at":    post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyUpsDelta adjusts the cached ups count of a post with an atomic $inc
// and returns the new value. Decrements are floored at zero: an $inc below
// zero is skipped and the stored value reported instead.
func (r *MongoPostRepository) ApplyUpsDelta(ctx context.Context, postID string, delta int64) (int64, error) {
	return r.applyCounterDelta(ctx, postID, "ups_count", delta)
}

// ApplyCommentsDelta adjusts the cached comments count of a post, floored at zero.
func (r *MongoPostRepository) ApplyCommentsDelta(ctx context.Context, postID string, delta int64) (int64, error) {
	return r.applyCounterDelta(ctx, postID, "comments_count", delta)
}

func (r *MongoPostRepository) applyCounterDelta(ctx context.Context, postID, field string, delta int64) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return 0, fmt.Errorf("invalid post ID format: %w", err)
	}

	filter := bson.M{"_id": objID}
	if delta < 0 {
		filter[field] = bson.M{"$gt": int64(0)}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{field: delta}}, opts).Decode(&post)
	if err == nil {
		return counterValue(&post, field), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	// Either the post is gone, or a decrement hit an already-zero counter.
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return counterValue(&post, field), nil
}

func counterValue(post *models.Post, field string) int64 {
	if field == "ups_count" {
		return post.UpsCount
	}
	return post.CommentsCount
}
