package response

import (
	"time"

	"github.com/pixelquest/accounts/internal/model"
)

// User represents a user record in API responses
type User struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`

	Level int `json:"level"`
	XP    int `json:"xp"`

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

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
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

// UsersFromModel converts a slice of model users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}

// LoginResponse is the response for login-or-create
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
