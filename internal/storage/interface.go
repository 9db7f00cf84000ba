package storage

import (
	"context"
	"time"

	"github.com/pixelquest/accounts/internal/model"
)

// Storage defines the interface for user persistence.
// Lookups for absent records return model.ErrUserNotFound.
type Storage interface {
	// SaveUser inserts or replaces a full user record
	SaveUser(ctx context.Context, user *model.User) error

	// GetUser fetches a user by internal id
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// GetUserByExternalID fetches a user by identity-provider uid
	GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// ListUsers returns all user records
	ListUsers(ctx context.Context) ([]*model.User, error)

	// UpdateExperience persists only the level and xp fields
	UpdateExperience(ctx context.Context, id model.UserID, level, xp int) error

	// UpdateLoginTime persists only the login timestamp
	UpdateLoginTime(ctx context.Context, id model.UserID, t time.Time) error
}
