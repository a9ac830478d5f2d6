package handlers

import (
	"errors"
	"net/http"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PreferenceHandler exposes the user-scoped seen-posts set and settings
// key-value store that earlier clients kept in browser storage.
type PreferenceHandler struct {
	preferenceRepository repositories.PreferenceRepository
	userRepository       repositories.UserRepository
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(prefRepo repositories.PreferenceRepository, userRepo repositories.UserRepository) *PreferenceHandler {
	return &PreferenceHandler{preferenceRepository: prefRepo, userRepository: userRepo}
}

// RegisterPreferenceRoutes registers preference-related routes.
func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.POST("/users/:id/seen", h.MarkSeen)
	g.GET("/users/:id/seen", h.GetSeen)
	g.GET("/users/:id/settings", h.GetSettings)
	g.PUT("/users/:id/settings", h.UpdateSettings)
}

func (h *PreferenceHandler) resolveUser(c echo.Context) (string, error) {
	userID := c.Param("id")
	if _, err := h.userRepository.GetUserByID(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logrus.WithError(err).Error("Failed to resolve user")
		return "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve user")
	}
	return userID, nil
}

// MarkSeen records the first open of a post's detail view. Idempotent.
func (h *PreferenceHandler) MarkSeen(c echo.Context) error {
	userID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req models.MarkSeenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.PostID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postId is required")
	}

	if err := h.preferenceRepository.MarkPostSeen(userID, req.PostID); err != nil {
		logrus.WithError(err).Error("Failed to mark post seen")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark post seen")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetSeen returns the ids of every post the user has opened.
func (h *PreferenceHandler) GetSeen(c echo.Context) error {
	userID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	ids, err := h.preferenceRepository.GetSeenPostIDs(userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch seen posts")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch seen posts")
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"postIds": ids})
}

// GetSettings returns the user's settings map.
func (h *PreferenceHandler) GetSettings(c echo.Context) error {
	userID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	settings, err := h.preferenceRepository.GetSettings(userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch settings")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch settings")
	}
	if settings == nil {
		settings = map[string]string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": settings})
}

// UpdateSettings upserts the supplied key/value pairs.
func (h *PreferenceHandler) UpdateSettings(c echo.Context) error {
	userID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if len(req.Settings) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "settings are required")
	}

	for key, value := range req.Settings {
		if err := h.preferenceRepository.PutSetting(userID, key, value); err != nil {
			logrus.WithError(err).Error("Failed to update setting")
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update settings")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
