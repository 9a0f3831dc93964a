package voting

import (
	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Vote records a single choice by a single identity on a single poll.
// At most one of UserID and SessionID is set; a new vote always carries
// one, but UserID is nulled when the voting user is deleted. VoterKey is
// the derived non-null column carrying the storage-level uniqueness
// constraint together with PollID. Votes are never mutated or deleted.
type Vote struct {
	shared.BaseEntity
	PollID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_poll_voter,priority:1"`
	OptionID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	SessionID *string    `gorm:"type:varchar(64);index"`
	VoterKey  string     `gorm:"type:varchar(80);not null;uniqueIndex:idx_votes_poll_voter,priority:2"`
}

// TableName returns the table name for GORM
func (Vote) TableName() string {
	return "votes"
}

// NewVote creates a vote stamped with the resolved identity
func NewVote(pollID, optionID uuid.UUID, identity Identity) (*Vote, error) {
	if identity.IsZero() {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Voter identity is required")
	}

	vote := &Vote{
		BaseEntity: shared.NewBaseEntity(),
		PollID:     pollID,
		OptionID:   optionID,
		VoterKey:   identity.VoterKey(),
	}

	switch identity.Kind {
	case IdentityKindUser:
		userID, err := identity.UserUUID()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_IDENTITY", "User identity is not a valid UUID")
		}
		vote.UserID = &userID
	case IdentityKindSession:
		token := identity.ID
		vote.SessionID = &token
	default:
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Unknown identity kind")
	}

	return vote, nil
}

// Identity reconstructs the voter identity stamped on this vote
func (v *Vote) Identity() Identity {
	if v.UserID != nil {
		return UserIdentity(*v.UserID)
	}
	if v.SessionID != nil {
		return Identity{Kind: IdentityKindSession, ID: *v.SessionID}
	}
	return Identity{}
}
