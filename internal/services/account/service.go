package account

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelquest/accounts/internal/dependencies/clock"
	"github.com/pixelquest/accounts/internal/identity"
	"github.com/pixelquest/accounts/internal/model"
	"github.com/pixelquest/accounts/internal/services/nickname"
	"github.com/pixelquest/accounts/internal/storage"
)

// DefaultUsername is used when a verified claim carries no name
const DefaultUsername = "DefaultUsername"

// XP capacity per level is Level * xpPerLevel
const xpPerLevel = 100

// Service implements the account operations over the injected collaborators
type Service struct {
	storage   storage.Storage
	verifier  identity.Verifier
	nicknames nickname.Generator
	clock     clock.Clock
	logger    *slog.Logger

	// userLocks serializes read-modify-write cycles per user id
	mu        sync.Mutex
	userLocks map[model.UserID]*sync.Mutex
}

// New creates a new account service
func New(store storage.Storage, verifier identity.Verifier, nicknames nickname.Generator, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:   store,
		verifier:  verifier,
		nicknames: nicknames,
		clock:     clk,
		logger:    logger,
		userLocks: make(map[model.UserID]*sync.Mutex),
	}
}

// List returns all user records
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		s.logger.Error("listing users failed", slog.String("error", err.Error()))
		return nil, err
	}
	return users, nil
}

// GrantExperience adds delta XP to the user and converts overflow into levels.
// The loop terminates because each pass strictly decreases XP while the
// per-level capacity never drops below 100.
func (s *Service) GrantExperience(ctx context.Context, id model.UserID, delta int) (*model.User, error) {
	if delta < 0 {
		return nil, model.ErrNegativeXPDelta
	}

	unlock := s.lockUser(id)
	defer unlock()

	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.XP += delta
	for user.XP >= user.Level*xpPerLevel {
		user.XP -= user.Level * xpPerLevel
		user.Level++
	}

	if err := s.storage.UpdateExperience(ctx, id, user.Level, user.XP); err != nil {
		s.logger.Error("persisting experience failed",
			slog.String("user_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return user, nil
}

// VerifyAndCreate verifies a token and returns the matching user, creating
// one on first sight of the external id. The second return value reports
// whether a record was created.
func (s *Service) VerifyAndCreate(ctx context.Context, token string) (*model.User, bool, error) {
	claim, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Warn("token verification failed", slog.String("error", err.Error()))
		return nil, false, err
	}

	user, err := s.storage.GetUserByExternalID(ctx, claim.UID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, false, err
	}

	username := claim.Name
	if username == "" {
		username = DefaultUsername
	}

	user = model.NewUser(claim.UID, username, claim.Email, s.clock.Now())
	user.ID = newUserID()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		s.logger.Error("creating user failed",
			slog.String("external_id", claim.UID),
			slog.String("error", err.Error()),
		)
		return nil, false, err
	}

	s.logger.Info("user created",
		slog.String("user_id", string(user.ID)),
		slog.String("external_id", user.ExternalID),
	)
	return user, true, nil
}

// GetByExternalID returns the user for an already-verified external id
func (s *Service) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return s.storage.GetUserByExternalID(ctx, externalID)
}

// LoginOrCreate verifies a token and either creates a full default account
// or touches the existing account's login timestamp. The returned record is
// re-fetched after the touch so it always reflects the just-written time.
func (s *Service) LoginOrCreate(ctx context.Context, token string) (*model.User, bool, error) {
	claim, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Warn("token verification failed", slog.String("error", err.Error()))
		return nil, false, err
	}

	user, err := s.storage.GetUserByExternalID(ctx, claim.UID)
	if errors.Is(err, model.ErrUserNotFound) {
		user = model.NewUser(claim.UID, s.nicknames.Generate(claim.Email), claim.Email, s.clock.Now())
		user.ID = newUserID()

		if err := s.storage.SaveUser(ctx, user); err != nil {
			s.logger.Error("creating user failed",
				slog.String("external_id", claim.UID),
				slog.String("error", err.Error()),
			)
			return nil, false, err
		}

		s.logger.Info("user created and logged in",
			slog.String("user_id", string(user.ID)),
			slog.String("external_id", user.ExternalID),
		)
		return user, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.storage.UpdateLoginTime(ctx, user.ID, s.clock.Now()); err != nil {
		s.logger.Error("updating login time failed",
			slog.String("user_id", string(user.ID)),
			slog.String("error", err.Error()),
		)
		return nil, false, err
	}

	user, err = s.storage.GetUserByExternalID(ctx, claim.UID)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// lockUser acquires the per-user mutex, creating it on first use
func (s *Service) lockUser(id model.UserID) func() {
	s.mu.Lock()
	lock, ok := s.userLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func newUserID() model.UserID {
	return model.UserID(uuid.NewString())
}
