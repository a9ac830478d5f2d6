package handlers

import (
	"errors"
	"net/http"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserHandler handles user listing, lookup and the follow toggle.
type UserHandler struct {
	userRepository repositories.UserRepository
	notifier       *Notifier
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, notifier *Notifier) *UserHandler {
	return &UserHandler{userRepository: userRepo, notifier: notifier}
}

// RegisterUserRoutes registers user-related routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// GetUsers lists all users with credentials stripped. Debug endpoint.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetAllUsers(c.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch users")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	sanitized := make([]*models.User, len(users))
	for i := range users {
		sanitized[i] = users[i].Sanitized()
	}
	return c.JSON(http.StatusOK, sanitized)
}

// GetUser returns a single user by id, credentials stripped.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logrus.WithError(err).Error("Failed to fetch user")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user.Sanitized())
}

// ToggleFollow flips the follow relationship between the follower and the
// target. Both sides of the graph change together or not at all. Only the
// not-following -> following transition notifies the target.
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	targetID := c.Param("id")

	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.FollowerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "followerId is required")
	}
	if req.FollowerID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	result, err := h.userRepository.ToggleFollow(c.Request().Context(), targetID, req.FollowerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logrus.WithError(err).Error("Failed to toggle follow")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle follow")
	}

	if result.IsFollowing {
		h.notifier.Emit(c.Request().Context(), &models.Notification{
			RecipientID: targetID,
			Type:        models.NotificationTypeFollow,
			ActorID:     req.FollowerID,
			ActorName:   result.Follower.DisplayName(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"isFollowing":    result.IsFollowing,
		"followersCount": result.FollowersCount,
		"follower":       result.Follower.Sanitized(),
	})
}
