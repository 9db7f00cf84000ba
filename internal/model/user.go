package model

import "time"

// UserID uniquely identifies a user within this service
type UserID string

// User is the persisted account record.
// Gameplay and cosmetic counters are pass-through state owned by the game
// client; this service never interprets them.
type User struct {
	ID         UserID `json:"id"`
	ExternalID string `json:"external_id"` // identity-provider uid, join key for lookups
	Username   string `json:"username"`
	Email      string `json:"email"`

	Level int `json:"level"` // >= 1
	XP    int `json:"xp"`    // invariant: 0 <= XP < Level*100 after any grant

	Energy int `json:"energy"`
	Coin   int `json:"coin"`
	Health int `json:"health"`

	HatID        int `json:"hat_id"`
	CostumeID    int `json:"costume_id"`
	FacialID     int `json:"facial_id"`
	WeaponID     int `json:"weapon_id"`
	BackgroundID int `json:"background_id"`
	PetID        int `json:"pet_id"`
	CapeID       int `json:"cape_id"`
	ChipID       int `json:"chip_id"`

	LoginTime time.Time `json:"login_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Default resource values for freshly created users
const (
	DefaultEnergy = 100
	DefaultHealth = 100
)

// NewUser builds a user record with the fixed default gameplay state:
// level 1, no XP, full energy and health, no coins, no cosmetics equipped.
func NewUser(externalID, username, email string, now time.Time) *User {
	return &User{
		ExternalID: externalID,
		Username:   username,
		Email:      email,
		Level:      1,
		XP:         0,
		Energy:     DefaultEnergy,
		Coin:       0,
		Health:     DefaultHealth,
		LoginTime:  now,
		CreatedAt:  now,
	}
}

// MaxXP returns the XP capacity of the user's current level.
func (u *User) MaxXP() int {
	return u.Level * 100
}
