package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/monitoring"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const passwordPolicyMessage = "Password must be at least 6 characters and include uppercase, lowercase, and a number"

// AuthHandler handles registration, login and the security-question
// password-reset path. Identity is the plain user id the client sends on
// subsequent requests; there are no sessions or tokens.
type AuthHandler struct {
	userRepository repositories.UserRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	return &AuthHandler{userRepository: userRepo}
}

// RegisterAuthRoutes registers authentication-related routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/security-question", h.SecurityQuestion)
	g.POST("/security-verify", h.SecurityVerify)
	g.POST("/change-password", h.ChangePassword)
}

// Register creates a new account. Email and username uniqueness is
// case-insensitive via the normalized shadow fields.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Username) == "" || req.Password == "" ||
		req.SecurityQuestion == "" || strings.TrimSpace(req.SecurityAnswer) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if !models.ValidPassword(req.Password) {
		return echo.NewHTTPError(http.StatusBadRequest, passwordPolicyMessage)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(models.NormalizeIdentifier(req.SecurityAnswer)), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash security answer")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	user := &models.User{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		EmailLower:         models.NormalizeIdentifier(req.Email),
		Username:           strings.TrimSpace(req.Username),
		UsernameLower:      models.NormalizeIdentifier(req.Username),
		PasswordHash:       string(passwordHash),
		SecurityQuestion:   req.SecurityQuestion,
		SecurityAnswerHash: string(answerHash),
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "Email already exists")
		case errors.Is(err, repositories.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		}
		logrus.WithError(err).Error("Failed to register user")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	monitoring.RegisterSuccess.Inc()
	return c.JSON(http.StatusCreated, user.Sanitized())
}

// Login verifies credentials against the normalized identifier. Unknown
// identifier and wrong password produce the same generic failure so the
// response never reveals whether an account exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username/email and password are required")
	}

	user, err := h.userRepository.GetUserByIdentifier(c.Request().Context(), models.NormalizeIdentifier(req.Identifier))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			monitoring.LoginFailure.WithLabelValues("unknown_identifier").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		logrus.WithError(err).Error("Failed to login user")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to login user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	monitoring.LoginSuccess.Inc()
	return c.JSON(http.StatusOK, user.Sanitized())
}

// SecurityQuestion returns the stored security question for an identifier.
func (h *AuthHandler) SecurityQuestion(c echo.Context) error {
	var req models.SecurityQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Identifier) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username or email is required")
	}

	user, err := h.userRepository.GetUserByIdentifier(c.Request().Context(), models.NormalizeIdentifier(req.Identifier))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		logrus.WithError(err).Error("Failed to fetch security question")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch security question")
	}

	return c.JSON(http.StatusOK, echo.Map{"question": user.SecurityQuestion})
}

// SecurityVerify compares a normalized answer against the stored hash.
func (h *AuthHandler) SecurityVerify(c echo.Context) error {
	var req models.SecurityVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Identifier) == "" || strings.TrimSpace(req.Answer) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Identifier and answer are required")
	}

	user, err := h.userRepository.GetUserByIdentifier(c.Request().Context(), models.NormalizeIdentifier(req.Identifier))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		logrus.WithError(err).Error("Failed to verify security answer")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify security answer")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecurityAnswerHash), []byte(models.NormalizeIdentifier(req.Answer))); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect answer")
	}

	return c.JSON(http.StatusOK, user.Sanitized())
}

// ChangePassword re-hashes and stores a new password for the user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.UserID == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId and newPassword are required")
	}
	if !models.ValidPassword(req.NewPassword) {
		return echo.NewHTTPError(http.StatusBadRequest, passwordPolicyMessage)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash new password")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}

	if err := h.userRepository.UpdatePasswordHash(c.Request().Context(), req.UserID, string(hash)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logrus.WithError(err).Error("Failed to change password")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
