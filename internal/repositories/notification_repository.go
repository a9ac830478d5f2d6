package repositories

import (
	"context"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) error
	DeleteExpired(ctx context.Context) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB.
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository.
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// EnsureIndexes creates the TTL index that removes notifications once
// expires_at passes. Mongo's TTL sweep runs on a coarse interval, so reads
// additionally filter on expires_at to make the cutoff exact.
func (r *MongoNotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}

// Create persists a notification, assigning id, creation time and the
// 12-hour expiry.
func (r *MongoNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.ExpiresAt = n.CreatedAt.Add(models.NotificationTTL)
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// GetByRecipient retrieves unexpired notifications for a recipient, newest
// first.
func (r *MongoNotificationRepository) GetByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	filter := bson.M{
		"recipient_id": recipientID,
		"expires_at":   bson.M{"$gt": time.Now()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead marks every unread notification for a recipient as read.
func (r *MongoNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

// DeleteExpired removes notifications the TTL sweeper has not collected
// yet.
func (r *MongoNotificationRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	return err
}
