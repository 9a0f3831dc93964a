package voting

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IdentityKind distinguishes authenticated users from anonymous sessions
type IdentityKind string

const (
	IdentityKindUser    IdentityKind = "user"
	IdentityKindSession IdentityKind = "session"
)

// SessionTokenBytes is the entropy of a generated anonymous session token.
// 16 bytes = 128 bits, hex encoded to 32 characters.
const SessionTokenBytes = 16

// Identity is the voter-distinguishing key for an actor: either a stable
// authenticated user ID or an anonymous client-persisted session token.
// Exactly one of the two underlies any valid Identity.
type Identity struct {
	Kind IdentityKind
	ID   string
}

// UserIdentity creates an identity for an authenticated user
func UserIdentity(userID uuid.UUID) Identity {
	return Identity{Kind: IdentityKindUser, ID: userID.String()}
}

// SessionIdentity creates an identity for an anonymous session token
func SessionIdentity(token string) (Identity, error) {
	if token == "" {
		return Identity{}, shared.NewDomainError("INVALID_IDENTITY", "Session token cannot be empty")
	}
	if len(token) > 64 {
		return Identity{}, shared.NewDomainError("INVALID_IDENTITY", "Session token cannot exceed 64 characters")
	}
	return Identity{Kind: IdentityKindSession, ID: token}, nil
}

// NewSessionToken generates a new collision-resistant anonymous session token
func NewSessionToken() string {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a UUID
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

// IsZero reports whether the identity is unset
func (i Identity) IsZero() bool {
	return i.Kind == "" || i.ID == ""
}

// IsUser reports whether the identity belongs to an authenticated user
func (i Identity) IsUser() bool {
	return i.Kind == IdentityKindUser
}

// VoterKey returns the canonical non-null key used for the storage-level
// uniqueness constraint on (poll, voter). The kind prefix keeps user IDs
// and session tokens from ever colliding.
func (i Identity) VoterKey() string {
	return string(i.Kind) + ":" + i.ID
}

// UserUUID parses the user ID; only valid when IsUser is true
func (i Identity) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(i.ID)
}
