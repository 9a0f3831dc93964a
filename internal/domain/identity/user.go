package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/pollwise/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the coarse role of a user. It gates admin-only views
// (poll create/edit/delete, "my polls"); it is advisory for the UI and is
// re-checked by the admin route middleware, while row-level rules at the
// database remain the real authorization boundary.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account
type User struct {
	shared.BaseAggregateRoot
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	DisplayName  string     `gorm:"type:varchar(100)"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'user'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with the default role
func NewUser(email, password, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if len(displayName) > 100 {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 100 characters")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		DisplayName:       strings.TrimSpace(displayName),
		Role:              RoleUser,
		Status:            UserStatusActive,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// PromoteToAdmin grants the admin role
func (u *User) PromoteToAdmin() {
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether the user may sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// EffectiveRole normalizes an arbitrary role string; anything that is not
// exactly the admin role degrades to the regular user role, so a missing
// or garbled profile never grants privilege.
func EffectiveRole(role string) Role {
	if Role(role) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
