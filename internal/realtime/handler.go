package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"eventhub/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Browser clients connect from arbitrary origins, mirroring the open CORS
	// policy of the HTTP API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationHandler upgrades the push channel and registers the session
// under the authenticated user. The bearer credential arrives as the token
// query parameter; a missing or invalid token leaves the session connected at
// the transport layer but unregistered, so it receives nothing.
func NotificationHandler(registry *Registry, verifier domain.TokenVerifier, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}
		s := NewSession(conn, logger)

		registered := false
		if token := r.URL.Query().Get("token"); token != "" {
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Error("failed to decode token", "session_id", s.ID, "err", err)
			} else {
				registry.Register(userID, s)
				registered = true
			}
		}

		s.ReadLoop(nil)
		if registered {
			registry.Unregister(s)
		}
	}
}

// inboundMessage is the data shape of a chat "message" frame.
type inboundMessage struct {
	ChatID  string `json:"chatId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// ChatHandler upgrades a chat session, adds it to the hub, and relays inbound
// message frames through the chat service. Replies mirror the request outcome
// on the message_reply event; relay of the stored message itself happens via
// the hub broadcast inside the service.
func ChatHandler(hub *Hub, chatService domain.ChatService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}
		s := NewSession(conn, logger)
		hub.Add(s)
		defer hub.Remove(s)

		s.ReadLoop(func(frame Frame) {
			if frame.Event != EventMessage {
				return
			}
			raw, err := json.Marshal(frame.Data)
			if err != nil {
				return
			}
			var in inboundMessage
			if err := json.Unmarshal(raw, &in); err != nil {
				replyError(s, "invalid message payload")
				return
			}
			msg, err := chatService.SendMessage(r.Context(), in.ChatID, in.UserID, in.Content)
			if err != nil {
				logger.Warn("chat message rejected", "session_id", s.ID, "err", err)
				replyError(s, err.Error())
				return
			}
			_ = s.Send(Frame{Event: EventMessageReply, Data: map[string]any{
				"status":    "success",
				"data":      msg,
				"timestamp": time.Now(),
			}})
		})
	}
}

func replyError(s *Session, detail string) {
	_ = s.Send(Frame{Event: EventMessageReply, Data: map[string]any{
		"status":  "error",
		"error":   "message rejected",
		"details": detail,
	}})
}
