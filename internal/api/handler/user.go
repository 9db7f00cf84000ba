package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixelquest/accounts/internal/api/middleware"
	"github.com/pixelquest/accounts/internal/api/request"
	"github.com/pixelquest/accounts/internal/api/response"
	"github.com/pixelquest/accounts/internal/model"
	"github.com/pixelquest/accounts/internal/services/account"
)

// Login-or-create response messages, kept stable for API clients
const (
	msgUserCreated  = "User created and logged in"
	msgLoginSuccess = "Login successful"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	accounts *account.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(accounts *account.Service) *UserHandler {
	return &UserHandler{
		accounts: accounts,
	}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// GrantExperience handles POST /api/v1/users/{user_id}/experience
func (h *UserHandler) GrantExperience(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var req request.GrantExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.AddXP == nil {
		WriteError(w, NewInvalidRequestError("add_xp is required"))
		return
	}

	user, err := h.accounts.GrantExperience(r.Context(), model.UserID(userID), *req.AddXP)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// VerifyAndCreate handles POST /api/v1/auth/verify
func (h *UserHandler) VerifyAndCreate(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user, created, err := h.accounts.VerifyAndCreate(r.Context(), req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.UserFromModel(user))
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claim := middleware.MustGetClaim(r.Context())

	user, err := h.accounts.GetByExternalID(r.Context(), claim.UID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	// Missing tokens are rejected before the verifier is consulted
	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	user, created, err := h.accounts.LoginOrCreate(r.Context(), req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	if created {
		response.JSON(w, http.StatusCreated, response.LoginResponse{
			Message: msgUserCreated,
			User:    response.UserFromModel(user),
		})
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponse{
		Message: msgLoginSuccess,
		User:    response.UserFromModel(user),
	})
}
