package models

import "time"

// SeenPost records that a user has opened a post's detail view, stored in
// PostgreSQL. The feed ranker treats seen posts as no longer "new".
type SeenPost struct {
	ID     uint      `json:"-" gorm:"primaryKey"`
	UserID string    `json:"userId" gorm:"size:64;uniqueIndex:idx_seen_user_post;index"`
	PostID string    `json:"postId" gorm:"size:64;uniqueIndex:idx_seen_user_post"`
	SeenAt time.Time `json:"seenAt"`
}

// UserSetting is one key/value pair of a user's settings, stored in
// PostgreSQL. Replaces the browser-storage settings of earlier clients so
// preferences follow the account across devices.
type UserSetting struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"size:64;uniqueIndex:idx_setting_user_key;index"`
	Key       string    `json:"key" gorm:"size:100;uniqueIndex:idx_setting_user_key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarkSeenRequest is the body of POST /api/users/:id/seen.
type MarkSeenRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// UpdateSettingsRequest is the body of PUT /api/users/:id/settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}
