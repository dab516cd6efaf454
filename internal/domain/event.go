package domain

import (
	"context"
	"time"
)

// Event represents an event owned by its creator. MemberCount advances by
// exactly one per accepted participant and is never decremented.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	TargetDate  time.Time `json:"target_date"`
	EventStart  time.Time `json:"event_start"`
	EventEnd    time.Time `json:"event_end"`
	IsCanceled  bool      `json:"is_canceled"`
	IsDone      bool      `json:"is_done"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(ownerID, name, description, location string, targetDate, eventStart, eventEnd time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Location:    location,
		TargetDate:  targetDate,
		EventStart:  eventStart,
		EventEnd:    eventEnd,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	// ListByTargetDateBetween returns events whose target_date lies in
	// [start, end], both ends inclusive.
	ListByTargetDateBetween(ctx context.Context, start, end time.Time) ([]*Event, error)
	// IncrementMemberCount advances member_count by one at the storage layer,
	// avoiding a read-modify-write in application code.
	IncrementMemberCount(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) error
	MarkCanceled(ctx context.Context, id string) error
}

// EventService defines event lifecycle operations exposed to controllers.
type EventService interface {
	// CreateEvent persists the event and pre-joins the owner as an accepted participant.
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListMyEvents(ctx context.Context, ownerID string) ([]*Event, error)
	// CancelEvent marks the event canceled and alerts every participant.
	// Only the owner may cancel.
	CancelEvent(ctx context.Context, eventID, ownerID string) error
}
