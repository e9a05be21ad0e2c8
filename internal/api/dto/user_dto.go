package dto

import (
	"time"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login; Login may be a username or an email.
type UserLoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UserUpdateRequest payload for partial account updates.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserResponse is the public projection of an account. The password hash
// never leaves the service.
type UserResponse struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Roles     []domain.Role `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewUserResponse maps a domain user to its public projection.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}
