package domain

import (
	"context"
	"time"
)

// Participant is the join relationship between a user and an event. The
// intended lifecycle is invited -> accepted XOR declined; Attended is only
// meaningful once accepted and stays nil until first toggled.
//
// Accepted and Declined are kept as independent flags on purpose: source
// history is inconsistent about whether decline removes the row, so the
// flag-based form is preserved and decline never deletes.
// swagger:model Participant
type Participant struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Accepted bool      `json:"accepted"`
	Declined bool      `json:"declined"`
	Attended *bool     `json:"attended"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewParticipant returns a new Participant. ID is typically set by the repository on create.
func NewParticipant(eventID, userID string, accepted bool, joinedAt time.Time) *Participant {
	return &Participant{
		EventID:  eventID,
		UserID:   userID,
		Accepted: accepted,
		JoinedAt: joinedAt,
	}
}

// ParticipantWithUser bundles a participant row with the joined user's
// identity and profile, as returned by roster listings.
type ParticipantWithUser struct {
	Participant *Participant `json:"participant"`
	User        *User        `json:"user"`
	Profile     *Profile     `json:"profile"`
}

// ParticipantAttendance partitions an event roster into participants who
// attended and those who have not yet.
type ParticipantAttendance struct {
	Attends       []*ParticipantWithUser `json:"attends"`
	NotYetAttends []*ParticipantWithUser `json:"not_yet_attends"`
}

// ParticipantRepository defines storage operations for event participants.
// A (event_id, user_id) pair is unique at the storage layer.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Participant, error)
	// ListByEventID returns the raw participant rows for fan-out, owner included.
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
	// ListWithUserByEventID returns the roster joined with user and profile,
	// excluding the event owner, ordered by profile first name ascending with
	// ties broken by join order.
	ListWithUserByEventID(ctx context.Context, eventID string) ([]*ParticipantWithUser, error)
	SetAccepted(ctx context.Context, id string) error
	SetDeclined(ctx context.Context, id string) error
	SetAttended(ctx context.Context, id string, attended bool) error
}

// ParticipantService governs the participation state machine.
type ParticipantService interface {
	// Join creates the participant in the invited state, or directly accepted
	// when preAccepted is true (owner auto-join). Unless pre-accepted, the
	// event owner is notified of the pending decision.
	Join(ctx context.Context, eventID, userID string, preAccepted bool) (participantID string, err error)
	// GetParticipantID resolves the participant row for an (event, user) pair.
	GetParticipantID(ctx context.Context, eventID, userID string) (string, error)
	Accept(ctx context.Context, participantID string) error
	Decline(ctx context.Context, participantID string) error
	Attend(ctx context.Context, participantID string) error
	Absence(ctx context.Context, participantID string) error
	ListParticipants(ctx context.Context, eventID string) ([]*ParticipantWithUser, error)
	ListAttendance(ctx context.Context, eventID string) (*ParticipantAttendance, error)
}
