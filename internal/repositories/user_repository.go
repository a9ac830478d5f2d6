package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowResult describes the outcome of a follow toggle.
type FollowResult struct {
	IsFollowing    bool
	FollowersCount int
	Follower       *models.User
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, normalized string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	ToggleFollow(ctx context.Context, targetID, followerID string) (*FollowResult, error)
}

// MongoUserRepository implements UserRepository for MongoDB.
type MongoUserRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository. The client is
// retained for multi-document transactions.
func NewMongoUserRepository(client *mongo.Client, db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{client: client, collection: db.Collection("users")}
}

// EnsureIndexes creates the uniqueness indexes backing id and normalized
// email/username lookups.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// CreateUser inserts a new user. It checks the normalized email and
// username first so callers get a specific conflict error; the unique
// indexes still back this up against races.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.collection.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email_lower": user.EmailLower},
		{"username_lower": user.UsernameLower},
	}}).Decode(&existing)
	if err == nil {
		if existing.EmailLower == user.EmailLower {
			return ErrEmailTaken
		}
		return ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	user.CreatedAt = time.Now()
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	_, err = r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

// GetUserByID retrieves a user by its stable id.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByIdentifier resolves a normalized email or username to a user.
func (r *MongoUserRepository) GetUserByIdentifier(ctx context.Context, normalized string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email_lower": normalized},
		{"username_lower": normalized},
	}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers retrieves all users, newest first.
func (r *MongoUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePasswordHash replaces a user's password hash.
func (r *MongoUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFollow flips followerID's membership in the target's follower set
// and symmetrically flips targetID in the follower's following set. Both
// writes run in one transaction so a crash mid-operation can never leave
// the graph half-updated.
func (r *MongoUserRepository) ToggleFollow(ctx context.Context, targetID, followerID string) (*FollowResult, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var target, follower models.User
		if err := r.collection.FindOne(sc, bson.M{"id": targetID}).Decode(&target); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if err := r.collection.FindOne(sc, bson.M{"id": followerID}).Decode(&follower); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		following := contains(target.Followers, followerID)
		targetOp, followerOp := "$addToSet", "$addToSet"
		if following {
			targetOp, followerOp = "$pull", "$pull"
		}

		if _, err := r.collection.UpdateOne(sc, bson.M{"id": targetID},
			bson.M{targetOp: bson.M{"followers": followerID}}); err != nil {
			return nil, err
		}
		if _, err := r.collection.UpdateOne(sc, bson.M{"id": followerID},
			bson.M{followerOp: bson.M{"following": targetID}}); err != nil {
			return nil, err
		}

		var updatedTarget, updatedFollower models.User
		if err := r.collection.FindOne(sc, bson.M{"id": targetID}).Decode(&updatedTarget); err != nil {
			return nil, err
		}
		if err := r.collection.FindOne(sc, bson.M{"id": followerID}).Decode(&updatedFollower); err != nil {
			return nil, err
		}

		return &FollowResult{
			IsFollowing:    !following,
			FollowersCount: len(updatedTarget.Followers),
			Follower:       &updatedFollower,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*FollowResult), nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
