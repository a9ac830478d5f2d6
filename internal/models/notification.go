package models

import "time"

// Notification types.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// NotificationTTL is how long a notification stays readable after creation.
const NotificationTTL = 12 * time.Hour

// Notification is a short-lived record stored in MongoDB. ExpiresAt drives
// both the TTL index and the query-side cutoff, so a record is gone exactly
// 12 hours after creation regardless of read state.
type Notification struct {
	ID          string    `json:"id" bson:"id"`
	RecipientID string    `json:"recipientId" bson:"recipient_id"`
	Type        string    `json:"type" bson:"type"`
	ActorID     string    `json:"actorId" bson:"actor_id"`
	ActorName   string    `json:"actorUsername" bson:"actor_username"`
	PostID      string    `json:"postId,omitempty" bson:"post_id,omitempty"`
	PostTitle   string    `json:"postTitle,omitempty" bson:"post_title,omitempty"`
	CommentText string    `json:"commentText,omitempty" bson:"comment_text,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	ExpiresAt   time.Time `json:"-" bson:"expires_at"`
	Read        bool      `json:"read" bson:"read"`
}

// Expired reports whether the notification should no longer be visible at
// the given time.
func (n *Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.After(now)
}

// MarkReadRequest is the body of POST /api/notifications/mark-read.
type MarkReadRequest struct {
	UserID string `json:"userId" validate:"required"`
}
