// Package common defines shared constants and sentinel errors used across
// TaskHub components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors.
	ErrUnknownCollection = errors.New("unknown table")

	// Business-rule errors. Their messages are shown to end users as is.
	ErrProtectedAccount   = errors.New("Cannot delete Master Account")
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTaskNotFound       = errors.New("task not found")

	// Validation errors.
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidUsername = errors.New("invalid username")
	ErrEmptyTitle      = errors.New("task title is required")

	// Storage errors.
	ErrStorage = errors.New("storage error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
