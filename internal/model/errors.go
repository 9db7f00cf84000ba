package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrNegativeXPDelta = errors.New("xp delta must not be negative")
)
