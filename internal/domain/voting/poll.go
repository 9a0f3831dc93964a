package voting

import (
	"strings"
	"time"

	"github.com/pollwise/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxPollOptions is the maximum number of options a poll can carry
const MaxPollOptions = 20

// PollStatus represents the derived status of a poll
type PollStatus string

const (
	PollStatusActive PollStatus = "active"
	PollStatusClosed PollStatus = "inactive"
)

// Voting domain errors
var (
	ErrPollNotFound    = shared.NewDomainError("POLL_NOT_FOUND", "Poll not found")
	ErrPollClosed      = shared.NewDomainError("POLL_CLOSED", "Poll is no longer open for voting")
	ErrOptionNotInPoll = shared.NewDomainError("OPTION_NOT_IN_POLL", "Option does not belong to this poll")
	ErrAlreadyVoted    = shared.NewDomainError("ALREADY_VOTED", "A vote has already been recorded for this poll")
)

// Poll represents a question with a fixed, ordered set of options and a
// closing timestamp. Options are part of the aggregate and are created
// together with the poll.
type Poll struct {
	shared.BaseAggregateRoot
	Title          string       `gorm:"type:varchar(200);not null"`
	Category       string       `gorm:"type:varchar(50);not null;index"`
	Description    string       `gorm:"type:text"`
	EndsAt         time.Time    `gorm:"not null;index"`
	AttachmentURL  string       `gorm:"type:varchar(500)"`
	AttachmentKind string       `gorm:"type:varchar(50)"`
	Options        []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Poll) TableName() string {
	return "polls"
}

// PollOption is a selectable answer, ordered by Position for stable
// result rendering.
type PollOption struct {
	shared.BaseEntity
	PollID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"type:varchar(200);not null"`
	ImageURL string    `gorm:"type:varchar(500)"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PollOption) TableName() string {
	return "poll_options"
}

// NewPoll creates a new poll without options; options are appended with
// AddOption before the poll is saved.
func NewPoll(title, category string, endsAt time.Time) (*Poll, error) {
	if err := validatePollTitle(title); err != nil {
		return nil, err
	}
	if err := validatePollCategory(category); err != nil {
		return nil, err
	}
	if endsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_END_TIME", "Poll end time is required")
	}

	return &Poll{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Category:          strings.TrimSpace(category),
		EndsAt:            endsAt,
	}, nil
}

// AddOption appends an option at the next ordinal position
func (p *Poll) AddOption(text, imageURL string) error {
	if err := validateOptionText(text); err != nil {
		return err
	}
	if len(p.Options) >= MaxPollOptions {
		return shared.NewDomainError("TOO_MANY_OPTIONS", "Poll cannot have more than 20 options")
	}

	p.Options = append(p.Options, PollOption{
		BaseEntity: shared.NewBaseEntity(),
		PollID:     p.ID,
		Text:       strings.TrimSpace(text),
		ImageURL:   imageURL,
		Position:   len(p.Options),
	})
	return nil
}

// SetDescription sets the optional descriptive text
func (p *Poll) SetDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	p.Description = description
	return nil
}

// SetAttachment attaches a file reference (URL plus a MIME-like kind tag)
func (p *Poll) SetAttachment(url, kind string) error {
	if url == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment URL cannot be empty")
	}
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment URL cannot exceed 500 characters")
	}
	if kind == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment kind cannot be empty")
	}
	p.AttachmentURL = url
	p.AttachmentKind = kind
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Update updates the poll's editable fields
func (p *Poll) Update(title, category, description string, endsAt time.Time) error {
	if err := validatePollTitle(title); err != nil {
		return err
	}
	if err := validatePollCategory(category); err != nil {
		return err
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	if endsAt.IsZero() {
		return shared.NewDomainError("INVALID_END_TIME", "Poll end time is required")
	}

	p.Title = strings.TrimSpace(title)
	p.Category = strings.TrimSpace(category)
	p.Description = description
	p.EndsAt = endsAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Status derives the current status from the closing timestamp
func (p *Poll) Status() PollStatus {
	return p.StatusAt(time.Now())
}

// StatusAt derives the status at a given instant
func (p *Poll) StatusAt(t time.Time) PollStatus {
	if t.Before(p.EndsAt) {
		return PollStatusActive
	}
	return PollStatusClosed
}

// IsActive reports whether the poll is currently open for voting
func (p *Poll) IsActive() bool {
	return p.Status() == PollStatusActive
}

// HasOption reports whether the given option belongs to this poll
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return true
		}
	}
	return false
}

// OptionByID returns the option with the given ID, or nil
func (p *Poll) OptionByID(optionID uuid.UUID) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

func validatePollTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Poll title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Poll title cannot exceed 200 characters")
	}
	return nil
}

func validatePollCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Poll category cannot be empty")
	}
	if len(category) > 50 {
		return shared.NewDomainError("INVALID_CATEGORY", "Poll category cannot exceed 50 characters")
	}
	return nil
}

func validateOptionText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_OPTION", "Option text cannot be empty")
	}
	if len(text) > 200 {
		return shared.NewDomainError("INVALID_OPTION", "Option text cannot exceed 200 characters")
	}
	return nil
}
