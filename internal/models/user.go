package models

import (
	"strings"
	"time"
	"unicode"
)

// User represents a registered account stored in MongoDB.
// EmailLower and UsernameLower are normalized shadow fields used only for
// case-insensitive uniqueness and lookup; the display forms keep their casing.
type User struct {
	ID                 string    `json:"id" bson:"id"`
	Name               string    `json:"name" bson:"name"`
	Email              string    `json:"email" bson:"email"`
	EmailLower         string    `json:"-" bson:"email_lower"`
	Username           string    `json:"username" bson:"username"`
	UsernameLower      string    `json:"-" bson:"username_lower"`
	PasswordHash       string    `json:"-" bson:"password_hash"`
	SecurityQuestion   string    `json:"securityQuestion" bson:"security_question"`
	SecurityAnswerHash string    `json:"-" bson:"security_answer_hash"`
	Followers          []string  `json:"followers" bson:"followers"`
	Following          []string  `json:"following" bson:"following"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
}

// Sanitized returns a copy safe for JSON responses. Hashes and shadow fields
// are already excluded by tags; this additionally guarantees the follower
// slices are non-nil so clients always see arrays.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	out := *u
	if out.Followers == nil {
		out.Followers = []string{}
	}
	if out.Following == nil {
		out.Following = []string{}
	}
	return &out
}

// DisplayName picks the name shown in notifications.
func (u *User) DisplayName() string {
	if u == nil {
		return "Someone"
	}
	if u.Username != "" {
		return u.Username
	}
	if u.Name != "" {
		return u.Name
	}
	return "Someone"
}

// NormalizeIdentifier lowercases and trims an email or username for
// uniqueness comparison and lookup.
func NormalizeIdentifier(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ToggleMembership flips id's membership in the set, returning the new set
// and whether the flip was an addition. Order of the remaining elements is
// preserved.
func ToggleMembership(set []string, id string) ([]string, bool) {
	for i, v := range set {
		if v == id {
			next := make([]string, 0, len(set)-1)
			next = append(next, set[:i]...)
			next = append(next, set[i+1:]...)
			return next, false
		}
	}
	return append(append([]string{}, set...), id), true
}

// ValidPassword reports whether a password satisfies the shared policy:
// at least 6 characters with an upper-case letter, a lower-case letter and
// a digit. The client enforces the same rule before submitting.
func ValidPassword(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Username         string `json:"username" validate:"required"`
	Password         string `json:"password" validate:"required"`
	SecurityQuestion string `json:"securityQuestion" validate:"required"`
	SecurityAnswer   string `json:"securityAnswer" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login. Identifier is an email
// or a username.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// SecurityQuestionRequest is the body of POST /api/auth/security-question.
type SecurityQuestionRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// SecurityVerifyRequest is the body of POST /api/auth/security-verify.
type SecurityVerifyRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// FollowRequest is the body of POST /api/users/:id/follow.
type FollowRequest struct {
	FollowerID string `json:"followerId" validate:"required"`
}
