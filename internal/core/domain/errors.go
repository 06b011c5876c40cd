package domain

import "errors"

var (
	// ErrInvalidInput covers malformed ids and missing/invalid fields (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated means the session token is missing or invalid (401).
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials means a presented password did not match (401).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means the actor is authenticated but not permitted (403).
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found")

	// ErrEmailTaken signals the unique-email invariant was violated (409).
	ErrEmailTaken = errors.New("email already in use")
)
