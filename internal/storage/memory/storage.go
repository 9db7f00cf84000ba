package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pixelquest/accounts/internal/model"
	"github.com/pixelquest/accounts/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on save and on read so callers never alias stored state.
type Storage struct {
	mu sync.RWMutex

	users           map[model.UserID]*model.User
	externalIDIndex map[string]model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:           make(map[model.UserID]*model.User),
		externalIDIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[u.ID] = &u
	s.externalIDIndex[u.ExternalID] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *Storage) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.externalIDIndex[externalID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.getLocked(id)
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	return users, nil
}

func (s *Storage) UpdateExperience(ctx context.Context, id model.UserID, level, xp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Level = level
	user.XP = xp
	return nil
}

func (s *Storage) UpdateLoginTime(ctx context.Context, id model.UserID, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.LoginTime = t
	return nil
}

func (s *Storage) getLocked(id model.UserID) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}
