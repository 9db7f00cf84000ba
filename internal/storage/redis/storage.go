package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pixelquest/accounts/internal/model"
	"github.com/pixelquest/accounts/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// User records never expire; accounts are not deleted by this service.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	key := userKey(user.ID)

	// Pipeline keeps the record, the external-id index, and the list index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, externalIDIndexKey(user.ExternalID), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, externalIDIndexKey(externalID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	userKeys, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(userKeys) == 0 {
		return []*model.User{}, nil
	}

	values, err := s.client.MGet(ctx, userKeys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
			continue // Skip invalid data
		}
		users = append(users, &user)
	}

	return users, nil
}

func (s *Storage) UpdateExperience(ctx context.Context, id model.UserID, level, xp int) error {
	return s.mutateUser(ctx, id, func(user *model.User) {
		user.Level = level
		user.XP = xp
	})
}

func (s *Storage) UpdateLoginTime(ctx context.Context, id model.UserID, t time.Time) error {
	return s.mutateUser(ctx, id, func(user *model.User) {
		user.LoginTime = t
	})
}

// mutateUser rewrites a stored record with the given fields changed.
// The read-modify-write cycle is not transactional; callers serialize
// writes per user id.
func (s *Storage) mutateUser(ctx context.Context, id model.UserID, mutate func(*model.User)) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	mutate(user)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(id), data, 0).Err()
}
