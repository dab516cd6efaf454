package domain

import (
	"context"
	"time"
)

// NotificationType classifies a notification record and its live payload.
type NotificationType string

// Notification types.
const (
	NotificationConfirmation NotificationType = "CONFIRMATION"
	NotificationMessage      NotificationType = "MESSAGE"
	NotificationAlert        NotificationType = "ALERT"
	NotificationReminder     NotificationType = "REMINDER"
)

// Notification is an append-only delivery record. It is persisted before any
// live push is attempted so that offline recipients can retrieve it later.
// swagger:model Notification
type Notification struct {
	ID          string           `json:"id"`
	EventID     *string          `json:"event_id"`
	SenderID    *string          `json:"sender_id"`
	RecipientID string           `json:"recipient_id"`
	Content     string           `json:"content"`
	Type        NotificationType `json:"type"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NotificationRepository defines storage operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipientID(ctx context.Context, recipientID string, params PaginationParams) ([]*Notification, int, error)
	// DeletePendingDecision removes CONFIRMATION rows for the (event, recipient)
	// pair. Zero matching rows is not an error.
	DeletePendingDecision(ctx context.Context, eventID, recipientID string) error
}

// PushPayload is the message shape delivered on the live notification channel.
type PushPayload struct {
	Sender  *UserWithProfile `json:"sender,omitempty"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// NotificationPusher delivers a payload to the recipient's current live
// session, if any. Implementations must not block on a stalled client; a
// missing session or transport failure is reported as an error that callers
// log and swallow.
type NotificationPusher interface {
	PushToUser(userID string, payload PushPayload) error
}

// Notifier records a notification durably and attempts live delivery.
// Persistence failure aborts the triggering operation; push failure never does.
type Notifier interface {
	Emit(ctx context.Context, recipientID string, sender *UserWithProfile, eventID *string, content string, typ NotificationType) error
	DeletePending(ctx context.Context, eventID, recipientID string) error
	FindAll(ctx context.Context, recipientID string, params PaginationParams) ([]*Notification, int, error)
}

// EventAnnouncer fans an event-level notification out to every current
// participant of the event, one emission per participant.
type EventAnnouncer interface {
	AnnounceCanceled(ctx context.Context, event *Event) error
	AnnounceUpcoming(ctx context.Context, event *Event) error
}
