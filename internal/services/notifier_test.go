package services

import (
	"context"
	"errors"
	"testing"

	"eventhub/internal/domain"
)

func TestNotifierService_Emit(t *testing.T) {
	eventID := "e1"
	sender := &domain.UserWithProfile{
		User:    &domain.User{ID: "u-sender"},
		Profile: &domain.Profile{UserID: "u-sender", Firstname: "Budi"},
	}

	t.Run("persists and pushes when a session is live", func(t *testing.T) {
		repo := &mockNotificationRepository{}
		pusher := &mockPusher{}
		svc := NewNotifierService(repo, pusher, testLogger())

		err := svc.Emit(context.Background(), "u-recipient", sender, &eventID, "halo", domain.NotificationMessage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected one record, got %d", len(repo.created))
		}
		n := repo.created[0]
		if n.RecipientID != "u-recipient" || n.Content != "halo" || n.Type != domain.NotificationMessage {
			t.Fatalf("unexpected record: %+v", n)
		}
		if n.SenderID == nil || *n.SenderID != "u-sender" {
			t.Fatalf("expected sender id set, got %v", n.SenderID)
		}
		if len(pusher.pushed) != 1 {
			t.Fatalf("expected one push, got %d", len(pusher.pushed))
		}
		if pusher.pushed[0].Sender != sender || pusher.pushed[0].Message != "halo" {
			t.Fatalf("unexpected payload: %+v", pusher.pushed[0])
		}
	})

	t.Run("push failure is swallowed after the record is written", func(t *testing.T) {
		repo := &mockNotificationRepository{}
		pusher := &mockPusher{pushErr: errors.New("no session")}
		svc := NewNotifierService(repo, pusher, testLogger())

		err := svc.Emit(context.Background(), "u-offline", nil, nil, "halo", domain.NotificationAlert)
		if err != nil {
			t.Fatalf("offline recipient must not fail emission: %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("expected the record to persist, got %d", len(repo.created))
		}
		if repo.created[0].SenderID != nil {
			t.Fatalf("system notification must have no sender, got %v", repo.created[0].SenderID)
		}
	})

	t.Run("persistence failure aborts the emission", func(t *testing.T) {
		repo := &mockNotificationRepository{createErr: errors.New("db down")}
		pusher := &mockPusher{}
		svc := NewNotifierService(repo, pusher, testLogger())

		err := svc.Emit(context.Background(), "u1", nil, nil, "halo", domain.NotificationMessage)
		if err == nil {
			t.Fatal("expected an error when the record cannot be written")
		}
		if len(pusher.pushed) != 0 {
			t.Fatalf("no push may happen without a record, got %d", len(pusher.pushed))
		}
	})
}

func TestNotifierService_FindAll(t *testing.T) {
	repo := &mockNotificationRepository{list: nil, total: 0}
	svc := NewNotifierService(repo, &mockPusher{}, testLogger())

	got, total, err := svc.FindAll(context.Background(), "u1", domain.PaginationParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
}
