package http

import (
	"context"
	"encoding/json"
	"net/http"

	"bloglist/internal/models"
)

// UserService defines the interface for account operations required by
// the HTTP handlers.
type UserService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, name, password string) (*models.User, error)
	// Login verifies credentials and returns a bearer token plus the user.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	// Users returns all users with their owned-blog projection.
	Users(ctx context.Context) ([]models.UserWithBlogs, error)
}

// UsersHandler handles HTTP requests for registration, login, and the
// users listing.
type UsersHandler struct {
	// UserService performs the underlying account operations.
	UserService UserService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned on successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// Register handles POST /users. It validates the payload, creates the
// user, and returns it without any credential material.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request"})
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /login. On success it returns a signed bearer
// token for subsequent authenticated requests.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request"})
		return
	}

	token, user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.Users(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.UserWithBlogs{}
	}
	writeJSON(w, http.StatusOK, users)
}
