package handlers

import (
	"errors"
	"net/http"

	"github.com/Vivek-the-creator/AuroraVoices/internal/feed"
	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// FeedHandler serves the ranked feed: search matches first, then unseen
// posts from followed authors promoted to the top.
type FeedHandler struct {
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	preferenceRepository repositories.PreferenceRepository
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, prefRepo repositories.PreferenceRepository) *FeedHandler {
	return &FeedHandler{
		postRepository:       postRepo,
		userRepository:       userRepo,
		preferenceRepository: prefRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the post list ordered for the viewer. Without a viewerId
// only the search pass applies.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID := c.QueryParam("viewerId")
	query := c.QueryParam("q")

	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch posts for feed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feed")
	}

	var viewer *feed.Viewer
	if viewerID != "" {
		user, err := h.userRepository.GetUserByID(c.Request().Context(), viewerID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				logrus.WithError(err).Error("Failed to fetch viewer for feed")
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feed")
			}
			// unknown viewer falls back to the anonymous ordering
		} else {
			seen, err := h.preferenceRepository.GetSeenPostIDs(viewerID)
			if err != nil {
				logrus.WithError(err).Warn("Failed to fetch seen posts, treating all as unseen")
			}
			viewer = &feed.Viewer{FollowingIDs: user.Following, SeenPostIDs: seen}
		}
	}

	ordered, matchCount := feed.Rank(posts, query, viewer)
	if ordered == nil {
		ordered = []models.Post{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts":      ordered,
		"matchCount": matchCount,
	})
}
