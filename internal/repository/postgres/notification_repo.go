package postgres

import (
	"context"
	"database/sql"

	"eventhub/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO event_notifications (event_id, sender_id, recipient_id, content, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		n.EventID, n.SenderID, n.RecipientID, n.Content, string(n.Type), n.CreatedAt,
	).Scan(&n.ID)
}

func (r *notificationRepository) ListByRecipientID(ctx context.Context, recipientID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM event_notifications WHERE recipient_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, sender_id, recipient_id, content, type, created_at
		FROM event_notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, recipientID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var eventID, senderID sql.NullString
		var typ string
		if err := rows.Scan(&n.ID, &eventID, &senderID, &n.RecipientID, &n.Content, &typ, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if eventID.Valid {
			n.EventID = &eventID.String
		}
		if senderID.Valid {
			n.SenderID = &senderID.String
		}
		n.Type = domain.NotificationType(typ)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// DeletePendingDecision removes the recipient's open decision prompts for the
// event. Deleting zero rows is fine: the prompt may already have been acted on.
func (r *notificationRepository) DeletePendingDecision(ctx context.Context, eventID, recipientID string) error {
	query := `
		DELETE FROM event_notifications
		WHERE event_id = $1 AND recipient_id = $2 AND type = $3
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, recipientID, string(domain.NotificationConfirmation))
	return err
}
