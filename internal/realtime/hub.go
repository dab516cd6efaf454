package realtime

import (
	"log/slog"
	"sync"

	"eventhub/internal/domain"
)

// Hub tracks the chat sessions of the relay. Room membership is implicit:
// every connected session receives every room's traffic; messages carry their
// room ID so clients filter on their side. The hub also maintains the live
// connection counter broadcast to everyone on each connect and disconnect.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session

	logger *slog.Logger
}

// NewHub returns an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Add registers a chat session and broadcasts the updated connection count.
func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	count := len(h.sessions)
	h.mu.Unlock()
	h.logger.Info("chat client connected", "session_id", s.ID, "total", count)
	h.broadcastCount(count)
}

// Remove drops a chat session and broadcasts the updated connection count.
// No-op if the session was never added.
func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.ID)
	count := len(h.sessions)
	h.mu.Unlock()
	h.logger.Info("chat client disconnected", "session_id", s.ID, "total", count)
	h.broadcastCount(count)
}

// Count returns the number of connected chat sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// BroadcastToRoom implements domain.RoomBroadcaster. Delivery is best-effort:
// slow consumers drop the frame rather than stalling the relay.
func (h *Hub) BroadcastToRoom(roomID string, msg *domain.Message) {
	h.broadcast(Frame{Event: EventMessage, Data: msg})
}

func (h *Hub) broadcastCount(count int) {
	h.broadcast(Frame{Event: EventUsers, Data: map[string]int{"count": count}})
}

func (h *Hub) broadcast(frame Frame) {
	h.mu.Lock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.Unlock()
	for _, s := range targets {
		if err := s.Send(frame); err != nil {
			h.logger.Warn("broadcast dropped", "session_id", s.ID, "event", frame.Event, "err", err)
		}
	}
}
