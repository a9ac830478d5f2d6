package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/Vivek-the-creator/AuroraVoices/validators"
	"github.com/labstack/echo/v4"
)

var errTestStore = errors.New("store unavailable")

// In-memory repository implementations for handler tests.

type mockUserRepository struct {
	users map[string]*models.User
	err   error
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: map[string]*models.User{}}
	for _, u := range users {
		if u.Followers == nil {
			u.Followers = []string{}
		}
		if u.Following == nil {
			u.Following = []string{}
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) CreateUser(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.EmailLower == user.EmailLower {
			return repositories.ErrEmailTaken
		}
		if existing.UsernameLower == user.UsernameLower {
			return repositories.ErrUsernameTaken
		}
	}
	user.CreatedAt = time.Now()
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetUserByIdentifier(_ context.Context, normalized string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.EmailLower == normalized || u.UsernameLower == normalized {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetAllUsers(_ context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockUserRepository) ToggleFollow(_ context.Context, targetID, followerID string) (*repositories.FollowResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	target, ok := m.users[targetID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	follower, ok := m.users[followerID]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	followers, added := models.ToggleMembership(target.Followers, followerID)
	target.Followers = followers
	following, _ := models.ToggleMembership(follower.Following, targetID)
	follower.Following = following

	return &repositories.FollowResult{
		IsFollowing:    added,
		FollowersCount: len(target.Followers),
		Follower:       follower,
	}, nil
}

type mockPostRepository struct {
	posts  map[string]*models.Post
	nextID int
	err    error
}

func newMockPostRepository(posts ...*models.Post) *mockPostRepository {
	m := &mockPostRepository{posts: map[string]*models.Post{}}
	for _, p := range posts {
		if p.Likes == nil {
			p.Likes = []string{}
		}
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	post.ID = fmt.Sprintf("post-%d", m.nextID)
	post.CreatedAt = time.Now()
	post.Likes = []string{}
	post.Comments = []models.Comment{}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.posts[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockPostRepository) GetAllPosts(_ context.Context) ([]models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPostRepository) UpdatePost(_ context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Title = req.Title
	p.Description = req.Description
	p.Content = req.Content
	p.UpdatedAt = time.Now()
	return p, nil
}

func (m *mockPostRepository) DeletePost(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepository) ToggleLike(_ context.Context, postID, viewerID string) (*repositories.LikeResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	likes, liked := models.ToggleMembership(p.Likes, viewerID)
	p.Likes = likes
	return &repositories.LikeResult{Likes: likes, Liked: liked, Post: p}, nil
}

func (m *mockPostRepository) AddComment(_ context.Context, postID string, comment *models.Comment) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Comments = append(p.Comments, *comment)
	return nil
}

type mockNotificationRepository struct {
	notifications []*models.Notification
	createErr     error
}

func (m *mockNotificationRepository) Create(_ context.Context, n *models.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.ExpiresAt = n.CreatedAt.Add(models.NotificationTTL)
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepository) GetByRecipient(_ context.Context, recipientID string) ([]models.Notification, error) {
	now := time.Now()
	var out []models.Notification
	// newest first
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		if n.RecipientID == recipientID && !n.Expired(now) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkAllRead(_ context.Context, recipientID string) error {
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) DeleteExpired(_ context.Context) error {
	return nil
}

func (m *mockNotificationRepository) forRecipient(recipientID string) []*models.Notification {
	var out []*models.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type mockPreferenceRepository struct {
	seen     map[string][]string
	settings map[string]map[string]string
}

func newMockPreferenceRepository() *mockPreferenceRepository {
	return &mockPreferenceRepository{
		seen:     map[string][]string{},
		settings: map[string]map[string]string{},
	}
}

func (m *mockPreferenceRepository) MarkPostSeen(userID, postID string) error {
	for _, id := range m.seen[userID] {
		if id == postID {
			return nil
		}
	}
	m.seen[userID] = append(m.seen[userID], postID)
	return nil
}

func (m *mockPreferenceRepository) GetSeenPostIDs(userID string) ([]string, error) {
	return m.seen[userID], nil
}

func (m *mockPreferenceRepository) GetSettings(userID string) (map[string]string, error) {
	return m.settings[userID], nil
}

func (m *mockPreferenceRepository) PutSetting(userID, key, value string) error {
	if m.settings[userID] == nil {
		m.settings[userID] = map[string]string{}
	}
	m.settings[userID][key] = value
	return nil
}

// newTestContext builds an echo context with the request validator wired,
// mirroring the server setup.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(err error) int {
	if err == nil {
		return 0
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

func httpMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return ""
}
