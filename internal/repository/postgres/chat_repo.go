package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type chatRoomRepository struct {
	DB *sql.DB
}

func NewChatRoomRepository(db *sql.DB) domain.ChatRoomRepository {
	return &chatRoomRepository{
		DB: db,
	}
}

func (r *chatRoomRepository) Create(ctx context.Context, room *domain.ChatRoom) error {
	query := `
		INSERT INTO chat_rooms (is_group, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, room.IsGroup, room.CreatedAt).Scan(&room.ID)
}

func (r *chatRoomRepository) GetByID(ctx context.Context, id string) (*domain.ChatRoom, error) {
	query := `
		SELECT id, is_group, created_at
		FROM chat_rooms
		WHERE id = $1
	`
	room := &domain.ChatRoom{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.IsGroup, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *chatRoomRepository) ListByIsGroup(ctx context.Context, isGroup bool) ([]*domain.ChatRoom, error) {
	query := `
		SELECT id, is_group, created_at
		FROM chat_rooms
		WHERE is_group = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, isGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]*domain.ChatRoom, 0)
	for rows.Next() {
		room := &domain.ChatRoom{}
		if err := rows.Scan(&room.ID, &room.IsGroup, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

type messageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{
		DB: db,
	}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (chatroom_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, msg.ChatRoomID, msg.UserID, msg.Content, msg.CreatedAt).Scan(&msg.ID)
}

func (r *messageRepository) ListByChatRoomID(ctx context.Context, chatRoomID string) ([]*domain.Message, error) {
	query := `
		SELECT id, chatroom_id, user_id, content, created_at
		FROM messages
		WHERE chatroom_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, chatRoomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	messages := make([]*domain.Message, 0)
	for rows.Next() {
		msg := &domain.Message{}
		if err := rows.Scan(&msg.ID, &msg.ChatRoomID, &msg.UserID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
