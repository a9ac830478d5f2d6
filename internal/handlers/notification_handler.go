package handlers

import (
	"net/http"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NotificationHandler serves the polled notification list.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification-related routes.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.POST("/notifications/mark-read", h.MarkRead)
}

// GetNotifications returns the recipient's unexpired notifications, newest
// first. The TTL index removes records 12 hours after creation; the
// repository filter makes the cutoff exact between sweeps.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	notifications, err := h.notificationRepository.GetByRecipient(c.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch notifications")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead marks all of a user's unread notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	if err := h.notificationRepository.MarkAllRead(c.Request().Context(), req.UserID); err != nil {
		logrus.WithError(err).Error("Failed to mark notifications as read")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notifications as read")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
