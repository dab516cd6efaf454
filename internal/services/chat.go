package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/domain"
)

const maxMessageLength = 2000

type chatService struct {
	chatRoomRepo   domain.ChatRoomRepository
	messageRepo    domain.MessageRepository
	broadcaster    domain.RoomBroadcaster
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewChatService creates the chat relay: validate, persist, then broadcast.
func NewChatService(
	chatRoomRepo domain.ChatRoomRepository,
	messageRepo domain.MessageRepository,
	broadcaster domain.RoomBroadcaster,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ChatService {
	return &chatService{
		chatRoomRepo:   chatRoomRepo,
		messageRepo:    messageRepo,
		broadcaster:    broadcaster,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *chatService) CreateRoom(ctx context.Context, isGroup bool) (*domain.ChatRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room := &domain.ChatRoom{IsGroup: isGroup, CreatedAt: time.Now()}
	if err := s.chatRoomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create chat room: %w", err)
	}
	s.logger.Info("chat room created", "chatroom_id", room.ID, "is_group", isGroup)
	return room, nil
}

func (s *chatService) ListRooms(ctx context.Context, isGroup bool) ([]*domain.ChatRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rooms, err := s.chatRoomRepo.ListByIsGroup(ctx, isGroup)
	if err != nil {
		return nil, fmt.Errorf("list chat rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.ChatRoom{}
	}
	return rooms, nil
}

func (s *chatService) SendMessage(ctx context.Context, chatRoomID, userID, content string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateMessage(chatRoomID, userID, content); err != nil {
		return nil, err
	}

	if _, err := s.chatRoomRepo.GetByID(ctx, chatRoomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chat room: %w", err)
	}

	msg := &domain.Message{
		ChatRoomID: chatRoomID,
		UserID:     userID,
		Content:    strings.TrimSpace(content),
		CreatedAt:  time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}
	s.logger.Info("message stored", "chatroom_id", chatRoomID, "message_id", msg.ID)

	// Persisted first; relay is best-effort.
	s.broadcaster.BroadcastToRoom(chatRoomID, msg)
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, chatRoomID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := uuid.Parse(chatRoomID); err != nil {
		return nil, fmt.Errorf("invalid chat room id: %w", domain.ErrInvalidInput)
	}
	if _, err := s.chatRoomRepo.GetByID(ctx, chatRoomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chat room: %w", err)
	}
	msgs, err := s.messageRepo.ListByChatRoomID(ctx, chatRoomID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	return msgs, nil
}

func validateMessage(chatRoomID, userID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content is required: %w", domain.ErrInvalidInput)
	}
	if len(content) > maxMessageLength {
		return fmt.Errorf("message content too long: %w", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(chatRoomID); err != nil {
		return fmt.Errorf("invalid chat room id: %w", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid user id: %w", domain.ErrInvalidInput)
	}
	return nil
}
