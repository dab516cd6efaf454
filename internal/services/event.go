package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	announcer       domain.EventAnnouncer
	logger          *slog.Logger
	contextTimeout  time.Duration
}

// NewEventService creates an EventService with the given repositories and announcer.
func NewEventService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	announcer domain.EventAnnouncer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		announcer:       announcer,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required: %w", domain.ErrInvalidInput)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// The owner joins their own event pre-accepted, so no pending-decision
	// prompt is raised for it.
	owner := domain.NewParticipant(event.ID, event.OwnerID, true, time.Now())
	if err := s.participantRepo.Create(ctx, owner); err != nil {
		return fmt.Errorf("join owner to event: %w", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "owner_id", event.OwnerID)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOwnerID(ctx, ownerID)
}

func (s *eventService) CancelEvent(ctx context.Context, eventID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}

	if err := s.eventRepo.MarkCanceled(ctx, eventID); err != nil {
		return fmt.Errorf("mark canceled: %w", err)
	}
	event.IsCanceled = true

	if err := s.announcer.AnnounceCanceled(ctx, event); err != nil {
		// The cancellation itself stuck; failed alerts are already logged
		// per participant by the announcer.
		s.logger.Error("cancel alert fan-out incomplete", "event_id", eventID, "err", err)
	}

	s.logger.Info("event canceled", "event_id", eventID)
	return nil
}
