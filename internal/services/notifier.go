package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

type notifierService struct {
	notificationRepo domain.NotificationRepository
	pusher           domain.NotificationPusher
	logger           *slog.Logger
}

// NewNotifierService creates the notification emitter. Emission is
// persist-then-push: the record is written durably first, and a failed or
// impossible push never fails the triggering operation.
func NewNotifierService(notificationRepo domain.NotificationRepository, pusher domain.NotificationPusher, logger *slog.Logger) domain.Notifier {
	return &notifierService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
	}
}

func (s *notifierService) Emit(ctx context.Context, recipientID string, sender *domain.UserWithProfile, eventID *string, content string, typ domain.NotificationType) error {
	n := &domain.Notification{
		EventID:     eventID,
		RecipientID: recipientID,
		Content:     content,
		Type:        typ,
		CreatedAt:   time.Now(),
	}
	if sender != nil {
		n.SenderID = &sender.User.ID
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	// The record exists; from here on delivery is best-effort only. An offline
	// recipient retrieves it later through FindAll.
	if err := s.pusher.PushToUser(recipientID, domain.PushPayload{
		Sender:  sender,
		Message: content,
		Type:    typ,
	}); err != nil {
		s.logger.Debug("live push skipped", "recipient_id", recipientID, "type", typ, "err", err)
		return nil
	}
	s.logger.Info("notification pushed", "recipient_id", recipientID, "type", typ)
	return nil
}

func (s *notifierService) DeletePending(ctx context.Context, eventID, recipientID string) error {
	if err := s.notificationRepo.DeletePendingDecision(ctx, eventID, recipientID); err != nil {
		return fmt.Errorf("delete pending notification: %w", err)
	}
	return nil
}

func (s *notifierService) FindAll(ctx context.Context, recipientID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	notifications, total, err := s.notificationRepo.ListByRecipientID(ctx, recipientID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return notifications, total, nil
}
