package request

// GrantExperienceRequest is the request body for granting XP to a user.
// AddXP is a pointer so a missing field can be told apart from zero.
type GrantExperienceRequest struct {
	AddXP *int `json:"add_xp"`
}

// VerifyRequest is the request body for token verification endpoints
type VerifyRequest struct {
	Token string `json:"token"`
}

// LoginRequest is the request body for login-or-create
type LoginRequest struct {
	Token string `json:"token"`
}
