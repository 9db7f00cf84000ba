package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pixelquest/accounts/internal/model"
	"github.com/pixelquest/accounts/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// New opens a Postgres connection and migrates the users table
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&userEntity{}); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing gorm handle (for testing)
func NewWithDB(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Save(toEntity(user)).Error
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var e userEntity
	err := s.db.WithContext(ctx).First(&e, "id = ?", string(id)).Error
	if err != nil {
		return nil, mapError(err)
	}
	return e.toModel(), nil
}

func (s *Storage) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var e userEntity
	err := s.db.WithContext(ctx).First(&e, "external_id = ?", externalID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return e.toModel(), nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	var entities []userEntity
	if err := s.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}

	users := make([]*model.User, len(entities))
	for i := range entities {
		users[i] = entities[i].toModel()
	}
	return users, nil
}

func (s *Storage) UpdateExperience(ctx context.Context, id model.UserID, level, xp int) error {
	return s.updateColumns(ctx, id, map[string]any{"level": level, "xp": xp})
}

func (s *Storage) UpdateLoginTime(ctx context.Context, id model.UserID, t time.Time) error {
	return s.updateColumns(ctx, id, map[string]any{"login_time": t})
}

func (s *Storage) updateColumns(ctx context.Context, id model.UserID, values map[string]any) error {
	res := s.db.WithContext(ctx).Model(&userEntity{}).Where("id = ?", string(id)).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrUserNotFound
	}
	return err
}
