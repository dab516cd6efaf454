package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	notifier        domain.Notifier
	logger          *slog.Logger
	contextTimeout  time.Duration
}

// NewParticipantService creates the service governing the participation state
// machine: invited -> accepted XOR declined, with attended/absent reachable
// only after acceptance.
func NewParticipantService(
	participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

func (s *participantService) Join(ctx context.Context, eventID, userID string, preAccepted bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.Info("adding a participant", "event_id", eventID, "user_id", userID)

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}

	if _, err := s.participantRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return "", fmt.Errorf("user already joined event: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get participant: %w", err)
	}

	p := domain.NewParticipant(eventID, userID, preAccepted, time.Now())
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return "", fmt.Errorf("create participant: %w", err)
	}

	// The owner's pending-decision prompt is skipped when the participant is
	// created pre-accepted (the owner auto-joining their own event).
	if !preAccepted {
		joiner, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("get joining user: %w", err)
		}
		content := fmt.Sprintf("%s akan menghadiri acara %q Anda!", joiner.DisplayName(), event.Name)
		if err := s.notifier.Emit(ctx, event.OwnerID, joiner, &event.ID, content, domain.NotificationConfirmation); err != nil {
			return "", fmt.Errorf("notify event owner: %w", err)
		}
	}

	s.logger.Info("participant added", "participant_id", p.ID)
	return p.ID, nil
}

func (s *participantService) GetParticipantID(ctx context.Context, eventID, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get participant: %w", err)
	}
	return p.ID, nil
}

func (s *participantService) Accept(ctx context.Context, participantID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.Info("accepting a participant", "participant_id", participantID)

	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user is not a participant of the event: %w", domain.ErrConflict)
		}
		return fmt.Errorf("get participant: %w", err)
	}
	if p.Accepted {
		return fmt.Errorf("participant already accepted: %w", domain.ErrConflict)
	}

	if err := s.participantRepo.SetAccepted(ctx, participantID); err != nil {
		return fmt.Errorf("set accepted: %w", err)
	}
	// Exactly one increment per distinct successful accept; declines never
	// decrement it back.
	if err := s.eventRepo.IncrementMemberCount(ctx, p.EventID); err != nil {
		return fmt.Errorf("increment member count: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, p.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.notifier.DeletePending(ctx, event.ID, event.OwnerID); err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("get event owner: %w", err)
	}
	content := fmt.Sprintf("%s menerima Anda dalam acara %q", owner.DisplayName(), event.Name)
	if err := s.notifier.Emit(ctx, p.UserID, owner, &event.ID, content, domain.NotificationMessage); err != nil {
		return fmt.Errorf("notify participant: %w", err)
	}

	s.logger.Info("participant accepted", "participant_id", participantID)
	return nil
}

// Decline flags the participant declined; the row stays so the (event, user)
// pair remains occupied and a declined user cannot re-join.
func (s *participantService) Decline(ctx context.Context, participantID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.logger.Info("declining a participant", "participant_id", participantID)

	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user is not a participant of the event: %w", domain.ErrConflict)
		}
		return fmt.Errorf("get participant: %w", err)
	}

	if err := s.participantRepo.SetDeclined(ctx, participantID); err != nil {
		return fmt.Errorf("set declined: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, p.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.notifier.DeletePending(ctx, event.ID, event.OwnerID); err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		return fmt.Errorf("get event owner: %w", err)
	}
	content := fmt.Sprintf("%s menolak Anda dalam acara %q", owner.DisplayName(), event.Name)
	if err := s.notifier.Emit(ctx, p.UserID, owner, &event.ID, content, domain.NotificationMessage); err != nil {
		return fmt.Errorf("notify participant: %w", err)
	}

	s.logger.Info("participant declined", "participant_id", participantID)
	return nil
}

// Attend marks attendance. Repeated calls simply overwrite the flag.
func (s *participantService) Attend(ctx context.Context, participantID string) error {
	return s.setAttendance(ctx, participantID, true)
}

// Absence clears attendance. Repeated calls simply overwrite the flag.
func (s *participantService) Absence(ctx context.Context, participantID string) error {
	return s.setAttendance(ctx, participantID, false)
}

func (s *participantService) setAttendance(ctx context.Context, participantID string, attended bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.participantRepo.SetAttended(ctx, participantID, attended); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set attended: %w", err)
	}
	return nil
}

func (s *participantService) ListParticipants(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	roster, err := s.participantRepo.ListWithUserByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if roster == nil {
		roster = []*domain.ParticipantWithUser{}
	}
	return roster, nil
}

// ListAttendance partitions the roster (owner excluded) into attends and
// not-yet-attends. The repository ordering by first name carries through
// unchanged into both halves.
func (s *participantService) ListAttendance(ctx context.Context, eventID string) (*domain.ParticipantAttendance, error) {
	roster, err := s.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendance := &domain.ParticipantAttendance{
		Attends:       []*domain.ParticipantWithUser{},
		NotYetAttends: []*domain.ParticipantWithUser{},
	}
	for _, entry := range roster {
		if entry.Participant.Attended != nil && *entry.Participant.Attended {
			attendance.Attends = append(attendance.Attends, entry)
			continue
		}
		attendance.NotYetAttends = append(attendance.NotYetAttends, entry)
	}
	return attendance, nil
}
