package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/identity"
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/pollwise/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new account and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the race against a concurrent registration
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		s.logger.Error("Failed to save new user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueTokens(ctx, user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login over a bookkeeping write
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueTokens(ctx, user)
}

// RefreshToken refreshes the access token using a valid refresh token.
// The user's email and role are re-read from storage so a role change
// takes effect on the next refresh.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist lookup failed during refresh", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}

		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			s.logger.Error("Blacklist lookup failed during refresh", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.IsActive() {
		s.logger.Warn("Token refresh for deactivated account", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return &CurrentUserResult{User: toUserInfo(user)}, nil
}

// ChangePassword changes a user's password and invalidates all tokens
// issued before the change
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CheckPassword(input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.ChangePassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	if s.blacklist != nil {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
			s.logger.Error("Failed to invalidate tokens after password change", zap.Error(err))
		}
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

func (s *AuthService) issueTokens(_ context.Context, user *identity.User) (*LoginResult, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(identity.EffectiveRole(string(user.Role))),
		LastLoginAt: user.LastLoginAt,
	}
}

// mapTokenError translates JWT validation errors to domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
