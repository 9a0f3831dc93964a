package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pollwise/backend/internal/infrastructure/auth"
	"github.com/pollwise/backend/internal/infrastructure/logger"
	"github.com/pollwise/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		if revoked := checkBlacklist(c, cfg, claims); revoked {
			return
		}

		setClaims(c, claims)

		// Propagate identity into the request context for logging
		ctx := logger.Enrich(c.Request.Context(), zap.String("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// but never rejects the request. Used on public routes where an
// authenticated user should vote under their user identity.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return OptionalJWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// OptionalJWTAuthMiddlewareWithConfig is OptionalJWTAuthMiddleware with a
// token blacklist: a revoked token is treated as no token at all, so the
// request proceeds anonymously instead of failing.
func OptionalJWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if isRevoked(c, cfg, claims) {
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return "", auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return "", auth.ErrInvalidToken
	}
	return tokenString, nil
}

// checkBlacklist aborts the request when the token has been revoked
func checkBlacklist(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	if isRevoked(c, cfg, claims) {
		handleAuthError(c, cfg, auth.ErrTokenBlacklisted)
		return true
	}
	return false
}

// isRevoked reports whether the token has been revoked, either directly
// by JTI or through a user-wide invalidation. Blacklist lookup failures
// fail open for availability.
func isRevoked(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	if cfg.TokenBlacklist == nil {
		return false
	}

	ctx := c.Request.Context()

	if claims.ID != "" {
		blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			}
		} else if blacklisted {
			return true
		}
	}

	if claims.UserID != "" {
		issuedAt := time.Time{}
		if claims.IssuedAt != nil {
			issuedAt = claims.IssuedAt.Time
		}
		invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, issuedAt)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check user token invalidation",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			}
		} else if invalidated {
			return true
		}
	}

	return false
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, claims.Role)
}

// handleAuthError aborts the request with a 401 and a mapped error code
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}

	errorCode := dto.ErrCodeUnauthorized
	errorMessage := "Authentication required"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		errorCode = dto.ErrCodeTokenExpired
		errorMessage = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		errorCode = dto.ErrCodeTokenInvalid
		errorMessage = "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrTokenNotYetValid):
		errorCode = dto.ErrCodeTokenInvalid
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorCode, errorMessage))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
