package repositories

import "errors"

// Sentinel errors returned by repositories so handlers can map storage
// outcomes to HTTP statuses without string matching.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")
)
