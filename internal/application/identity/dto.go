package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login or registration
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to clients.
// Role here is advisory for the UI; admin routes re-check it server side.
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        string
	LastLoginAt *time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo
}
