package postgres

import (
	"time"

	"github.com/pixelquest/accounts/internal/model"
)

// userEntity is the gorm mapping for a user record
type userEntity struct {
	ID         string `gorm:"primaryKey;size:64"`
	ExternalID string `gorm:"uniqueIndex;size:128;not null"`
	Username   string `gorm:"size:100;not null"`
	Email      string `gorm:"size:255"`

	Level int `gorm:"not null;default:1"`
	XP    int `gorm:"column:xp;not null;default:0"`

	Energy int `gorm:"not null;default:0"`
	Coin   int `gorm:"not null;default:0"`
	Health int `gorm:"not null;default:0"`

	HatID        int `gorm:"not null;default:0"`
	CostumeID    int `gorm:"not null;default:0"`
	FacialID     int `gorm:"not null;default:0"`
	WeaponID     int `gorm:"not null;default:0"`
	BackgroundID int `gorm:"not null;default:0"`
	PetID        int `gorm:"not null;default:0"`
	CapeID       int `gorm:"not null;default:0"`
	ChipID       int `gorm:"not null;default:0"`

	LoginTime time.Time
	CreatedAt time.Time
}

func (userEntity) TableName() string {
	return "users"
}

func toEntity(u *model.User) *userEntity {
	return &userEntity{
		ID:           string(u.ID),
		ExternalID:   u.ExternalID,
		Username:     u.Username,
		Email:        u.Email,
		Level:        u.Level,
		XP:           u.XP,
		Energy:       u.Energy,
		Coin:         u.Coin,
		Health:       u.Health,
		HatID:        u.HatID,
		CostumeID:    u.CostumeID,
		FacialID:     u.FacialID,
		WeaponID:     u.WeaponID,
		BackgroundID: u.BackgroundID,
		PetID:        u.PetID,
		CapeID:       u.CapeID,
		ChipID:       u.ChipID,
		LoginTime:    u.LoginTime,
		CreatedAt:    u.CreatedAt,
	}
}

func (e *userEntity) toModel() *model.User {
	return &model.User{
		ID:           model.UserID(e.ID),
		ExternalID:   e.ExternalID,
		Username:     e.Username,
		Email:        e.Email,
		Level:        e.Level,
		XP:           e.XP,
		Energy:       e.Energy,
		Coin:         e.Coin,
		Health:       e.Health,
		HatID:        e.HatID,
		CostumeID:    e.CostumeID,
		FacialID:     e.FacialID,
		WeaponID:     e.WeaponID,
		BackgroundID: e.BackgroundID,
		PetID:        e.PetID,
		CapeID:       e.CapeID,
		ChipID:       e.ChipID,
		LoginTime:    e.LoginTime,
		CreatedAt:    e.CreatedAt,
	}
}
