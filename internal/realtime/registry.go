package realtime

import (
	"fmt"
	"log/slog"
	"sync"

	"eventhub/internal/domain"
)

// Registry maps authenticated user IDs to their currently open notification
// session. Entries are process-local and rebuilt from scratch on restart.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	byUser    map[string]*Session
	bySession map[string]string // session ID -> user ID

	logger *slog.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		byUser:    make(map[string]*Session),
		bySession: make(map[string]string),
		logger:    logger,
	}
}

// Register binds the user to the session, replacing any prior binding. Only
// the most recent session receives pushes; an earlier session for the same
// user is orphaned and no longer targeted even if still open.
func (r *Registry) Register(userID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byUser[userID]; ok && prev.ID != s.ID {
		delete(r.bySession, prev.ID)
	}
	r.byUser[userID] = s
	r.bySession[s.ID] = userID
	r.logger.Info("client registered", "user_id", userID, "session_id", s.ID)
}

// Unregister removes the binding owned by the session. It is a no-op when the
// session never registered, or when the user has since re-registered with a
// newer session (a stale disconnect must not unbind the replacement).
func (r *Registry) Unregister(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.bySession[s.ID]
	if !ok {
		return
	}
	delete(r.bySession, s.ID)
	if current, ok := r.byUser[userID]; ok && current.ID == s.ID {
		delete(r.byUser, userID)
	}
	r.logger.Info("client unregistered", "user_id", userID, "session_id", s.ID)
}

// Lookup returns the user's current session, if any. A hit does not imply a
// later push will succeed; there is no acknowledgment.
func (r *Registry) Lookup(userID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[userID]
	return s, ok
}

// PushToUser implements domain.NotificationPusher: it delivers the payload to
// the user's current session on the notification event. Absence of a session
// is reported as an error for the caller to log and swallow.
func (r *Registry) PushToUser(userID string, payload domain.PushPayload) error {
	s, ok := r.Lookup(userID)
	if !ok {
		return fmt.Errorf("no live session for user %s", userID)
	}
	return s.Send(Frame{
		Event: EventNotification,
		Data:  map[string]any{"message": payload},
	})
}
