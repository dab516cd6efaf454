package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventhub/internal/domain"
)

type eventAnnouncer struct {
	participantRepo domain.ParticipantRepository
	notifier        domain.Notifier
	logger          *slog.Logger
}

// NewEventAnnouncer creates the fan-out used by both owner-initiated
// cancellation and the scheduled reminder sweep.
func NewEventAnnouncer(participantRepo domain.ParticipantRepository, notifier domain.Notifier, logger *slog.Logger) domain.EventAnnouncer {
	return &eventAnnouncer{
		participantRepo: participantRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

func (s *eventAnnouncer) AnnounceCanceled(ctx context.Context, event *domain.Event) error {
	content := fmt.Sprintf("Event %s has been canceled!", event.Name)
	return s.fanOut(ctx, event, content, domain.NotificationAlert)
}

func (s *eventAnnouncer) AnnounceUpcoming(ctx context.Context, event *domain.Event) error {
	content := fmt.Sprintf(
		"Event %s is coming soon!\nStart at %s\nDon't forget to prepare yourself!",
		event.Name,
		event.EventStart.Format("Monday, 2 January 2006"),
	)
	return s.fanOut(ctx, event, content, domain.NotificationReminder)
}

// fanOut emits one notification per participant. A failed emission for one
// participant is logged and does not stop delivery to the rest; the first
// failure is reported after the loop completes.
func (s *eventAnnouncer) fanOut(ctx context.Context, event *domain.Event, content string, typ domain.NotificationType) error {
	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}

	var firstErr error
	for _, p := range participants {
		if err := s.notifier.Emit(ctx, p.UserID, nil, &event.ID, content, typ); err != nil {
			s.logger.Error("announce failed for participant",
				"event_id", event.ID, "user_id", p.UserID, "type", typ, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
