package domain

import (
	"context"
	"time"
)

// ChatRoom groups messages. Membership is implicit: every connected chat
// session receives the traffic of the rooms it subscribed to at the transport
// layer; there is no join/leave protocol.
// swagger:model ChatRoom
type ChatRoom struct {
	ID        string    `json:"id"`
	IsGroup   bool      `json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a chat message persisted as a child of its room.
// swagger:model Message
type Message struct {
	ID         string    `json:"id"`
	ChatRoomID string    `json:"chatroom_id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatRoomRepository defines storage operations for chat rooms.
type ChatRoomRepository interface {
	Create(ctx context.Context, room *ChatRoom) error
	GetByID(ctx context.Context, id string) (*ChatRoom, error)
	ListByIsGroup(ctx context.Context, isGroup bool) ([]*ChatRoom, error)
}

// MessageRepository defines storage operations for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	ListByChatRoomID(ctx context.Context, chatRoomID string) ([]*Message, error)
}

// RoomBroadcaster fans a persisted message out to every session subscribed to
// the room. Best-effort: slow or gone sessions are skipped.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, msg *Message)
}

// ChatService validates, persists, and relays chat messages.
type ChatService interface {
	CreateRoom(ctx context.Context, isGroup bool) (*ChatRoom, error)
	ListRooms(ctx context.Context, isGroup bool) ([]*ChatRoom, error)
	// SendMessage persists the message and broadcasts it to the room.
	SendMessage(ctx context.Context, chatRoomID, userID, content string) (*Message, error)
	// ListMessages returns the room's history in chronological order.
	ListMessages(ctx context.Context, chatRoomID string) ([]*Message, error)
}
