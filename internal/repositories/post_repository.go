package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeResult describes the outcome of a like toggle.
type LikeResult struct {
	Likes []string
	// Liked is true when the toggle added the viewer to the set.
	Liked bool
	Post  *models.Post
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID, viewerID string) (*LikeResult, error)
	AddComment(ctx context.Context, postID string, comment *models.Comment) error
}

// MongoPostRepository implements PostRepository for MongoDB.
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the unique id index for posts.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreatePost creates a new post, assigning id, timestamp and empty
// like/comment collections server-side.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.Likes = []string{}
	post.Comments = []models.Comment{}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by id.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts, newest first.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates the mutable fields of a post and returns the updated
// document.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	update := bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"content":     req.Content,
			"thumbnail":   req.Thumbnail,
			"language":    req.Language,
			"genre":       req.Genre,
			"updated_at":  time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by id. Deleting a missing post is not an error.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// ToggleLike flips the viewer's membership in the post's liker set. This is
// a read-modify-write with last-writer-wins semantics: two concurrent
// toggles on the same post can race, which is an accepted consistency gap
// for this domain.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, viewerID string) (*LikeResult, error) {
	post, err := r.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, liked := models.ToggleMembership(post.Likes, viewerID)
	post.Likes = likes

	_, err = r.collection.UpdateOne(ctx, bson.M{"id": postID},
		bson.M{"$set": bson.M{"likes": post.Likes}})
	if err != nil {
		return nil, err
	}

	return &LikeResult{Likes: post.Likes, Liked: liked, Post: post}, nil
}

// AddComment appends a comment to the post's embedded list in arrival
// order.
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment *models.Comment) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": postID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
