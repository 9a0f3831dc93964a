package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pollwise/backend/internal/domain/voting"
	"github.com/pollwise/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Voter identity context keys
const (
	VoterIdentityKey = "voter_identity"

	// VoterSessionHeader carries the anonymous session token. The server
	// echoes it back on every response so the client can persist it.
	VoterSessionHeader = "X-Voter-Session"
)

// VoterSession resolves the voting identity for the request and stores
// it in the context. An authenticated user votes under their user ID; an
// anonymous visitor votes under a session token from the request header.
// When no token is presented one is generated, so a client that discards
// the echoed token simply becomes a new identity.
func VoterSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := resolveIdentity(c)
		c.Set(VoterIdentityKey, identity)

		if !identity.IsUser() {
			c.Writer.Header().Set(VoterSessionHeader, identity.ID)
		}

		ctx := logger.Enrich(c.Request.Context(), zap.String("voter_key", identity.VoterKey()))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveIdentity(c *gin.Context) voting.Identity {
	// Authenticated user takes precedence over any session token
	if userID := GetJWTUserID(c); userID != "" {
		if id, err := uuid.Parse(userID); err == nil {
			return voting.UserIdentity(id)
		}
	}

	if token := c.GetHeader(VoterSessionHeader); token != "" {
		if identity, err := voting.SessionIdentity(token); err == nil {
			return identity
		}
	}

	identity, _ := voting.SessionIdentity(voting.NewSessionToken())
	return identity
}

// GetVoterIdentity retrieves the resolved voting identity from the context
func GetVoterIdentity(c *gin.Context) (voting.Identity, bool) {
	if value, exists := c.Get(VoterIdentityKey); exists {
		if identity, ok := value.(voting.Identity); ok {
			return identity, true
		}
	}
	return voting.Identity{}, false
}
