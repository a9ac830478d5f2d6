package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/monitoring"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PostHandler handles HTTP requests related to posts, including the like
// toggle and embedded comments.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *Notifier
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *Notifier) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterPostRoutes registers post-related routes.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comments", h.AddComment)
}

// GetPosts returns all posts, newest first.
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch posts")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post. The id and timestamps are assigned
// server-side.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		Thumbnail:      req.Thumbnail,
		Language:       req.Language,
		Genre:          req.Genre,
		Author:         req.Author,
		AuthorID:       req.AuthorID,
		AuthorUsername: req.AuthorUsername,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		logrus.WithError(err).Error("Failed to create post")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	monitoring.PostsCreated.Inc()
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		logrus.WithError(err).Error("Failed to update post")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Deleting a missing post still returns 204.
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		logrus.WithError(err).Error("Failed to delete post")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the viewer's membership in the post's liker set. Adding
// a like by someone other than the author notifies the author; removing a
// like (or liking your own post) never does.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.ViewerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "viewerId is required")
	}

	result, err := h.postRepository.ToggleLike(c.Request().Context(), c.Param("id"), req.ViewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		logrus.WithError(err).Error("Failed to toggle like")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}

	post := result.Post
	if result.Liked && post.AuthorID != "" && req.ViewerID != post.AuthorID {
		actorName := "Someone"
		if actor, err := h.userRepository.GetUserByID(c.Request().Context(), req.ViewerID); err == nil {
			actorName = actor.DisplayName()
		}
		title := post.Title
		if title == "" {
			title = "your post"
		}
		h.notifier.Emit(c.Request().Context(), &models.Notification{
			RecipientID: post.AuthorID,
			Type:        models.NotificationTypeLike,
			ActorID:     req.ViewerID,
			ActorName:   actorName,
			PostID:      post.ID,
			PostTitle:   title,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": result.Likes})
}

// AddComment appends a comment to a post in arrival order. A comment by
// someone other than the author notifies the author with the comment text.
func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Comment.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment with text is required")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		logrus.WithError(err).Error("Failed to fetch post for comment")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment")
	}

	comment := models.Comment{
		ID:             req.Comment.ID,
		Author:         req.Comment.Author,
		AuthorID:       req.Comment.AuthorID,
		AuthorUsername: req.Comment.AuthorUsername,
		Text:           req.Comment.Text,
		CreatedAt:      time.Now(),
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if req.Comment.CreatedAt != nil {
		comment.CreatedAt = *req.Comment.CreatedAt
	}

	if err := h.postRepository.AddComment(c.Request().Context(), post.ID, &comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		logrus.WithError(err).Error("Failed to add comment")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment")
	}

	if post.AuthorID != "" && comment.AuthorID != "" && comment.AuthorID != post.AuthorID {
		actorName := comment.AuthorUsername
		if actorName == "" {
			actorName = comment.Author
		}
		if actorName == "" {
			actorName = "Someone"
		}
		title := post.Title
		if title == "" {
			title = "your post"
		}
		h.notifier.Emit(c.Request().Context(), &models.Notification{
			RecipientID: post.AuthorID,
			Type:        models.NotificationTypeComment,
			ActorID:     comment.AuthorID,
			ActorName:   actorName,
			PostID:      post.ID,
			PostTitle:   title,
			CommentText: comment.Text,
		})
	}

	return c.JSON(http.StatusCreated, comment)
}
