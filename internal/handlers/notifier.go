package handlers

import (
	"context"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/monitoring"
	"github.com/sirupsen/logrus"
)

// Notifier emits best-effort notifications for like, comment and follow
// actions. Emission failures are logged and swallowed: notification
// delivery never fails the action that triggered it.
type Notifier struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotifier creates a Notifier.
func NewNotifier(notifRepo repositories.NotificationRepository) *Notifier {
	return &Notifier{notificationRepository: notifRepo}
}

// Emit persists a notification record. Errors are counted and logged, never
// returned.
func (n *Notifier) Emit(ctx context.Context, notification *models.Notification) {
	if n == nil || n.notificationRepository == nil {
		return
	}
	if err := n.notificationRepository.Create(ctx, notification); err != nil {
		monitoring.NotificationFailures.Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":      notification.Type,
			"recipient": notification.RecipientID,
			"actor":     notification.ActorID,
		}).Error("Failed to create notification")
		return
	}
	monitoring.NotificationsEmitted.WithLabelValues(notification.Type).Inc()
}
