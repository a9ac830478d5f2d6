package repositories

import (
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository is the user-scoped key-value store behind the feed's
// seen-posts set and the per-user settings. It replaces browser storage so
// state follows the account across devices.
type PreferenceRepository interface {
	MarkPostSeen(userID, postID string) error
	GetSeenPostIDs(userID string) ([]string, error)
	GetSettings(userID string) (map[string]string, error)
	PutSetting(userID, key, value string) error
}

type postgresPreferenceRepository struct {
	db *gorm.DB
}

// NewPostgresPreferenceRepository creates a PreferenceRepository backed by
// PostgreSQL.
func NewPostgresPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &postgresPreferenceRepository{db: db}
}

// MarkPostSeen records that the user opened the post's detail view.
// Repeated marks are no-ops.
func (r *postgresPreferenceRepository) MarkPostSeen(userID, postID string) error {
	seen := models.SeenPost{UserID: userID, PostID: postID, SeenAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&seen).Error
}

// GetSeenPostIDs returns every post id the user has seen.
func (r *postgresPreferenceRepository) GetSeenPostIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.SeenPost{}).
		Where("user_id = ?", userID).
		Order("seen_at ASC").
		Pluck("post_id", &ids).Error
	return ids, err
}

// GetSettings returns all settings for a user as a key/value map.
func (r *postgresPreferenceRepository) GetSettings(userID string) (map[string]string, error) {
	var rows []models.UserSetting
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(rows))
	for _, s := range rows {
		settings[s.Key] = s.Value
	}
	return settings, nil
}

// PutSetting upserts one setting for a user.
func (r *postgresPreferenceRepository) PutSetting(userID, key, value string) error {
	setting := models.UserSetting{UserID: userID, Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
