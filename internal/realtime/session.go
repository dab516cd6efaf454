package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Frame is the wire envelope for every message on a live session.
// swagger:model Frame
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Wire event names.
const (
	EventNotification = "notification"
	EventMessage      = "message"
	EventMessageReply = "message_reply"
	EventUsers        = "users"
)

const (
	sendBufferSize = 32
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
)

// ErrSessionGone is returned when sending to a closed session.
var ErrSessionGone = errors.New("session closed")

// ErrSlowConsumer is returned when the session's outbound buffer is full.
// The frame is dropped; delivery here is fire-and-forget by design.
var ErrSlowConsumer = errors.New("session send buffer full")

// Session wraps a websocket connection with a buffered outbound channel and a
// single writer goroutine, so concurrent emitters never write to the conn
// directly and a stalled client cannot block them.
type Session struct {
	ID string

	conn *websocket.Conn
	send chan Frame

	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession wraps conn and starts its write pump.
func NewSession(conn *websocket.Conn, logger *slog.Logger) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		send:   make(chan Frame, sendBufferSize),
		logger: logger,
		done:   make(chan struct{}),
	}
	go s.writePump()
	return s
}

// Send queues a frame for delivery. It never blocks: when the session is
// closed or the buffer is full the frame is dropped and an error returned.
func (s *Session) Send(frame Frame) error {
	select {
	case <-s.done:
		return ErrSessionGone
	default:
	}
	select {
	case s.send <- frame:
		return nil
	case <-s.done:
		return ErrSessionGone
	default:
		return ErrSlowConsumer
	}
}

// Close shuts down the write pump and the underlying connection. Safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// ReadLoop consumes inbound frames until the connection drops, invoking
// onFrame for each decoded frame when non-nil. It returns after the peer
// disconnects; callers use the return to run their unregister path.
func (s *Session) ReadLoop(onFrame func(Frame)) {
	defer s.Close()
	s.conn.SetReadLimit(64 << 10)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("session read ended", "session_id", s.ID, "err", err)
			}
			return
		}
		if onFrame == nil {
			continue
		}
		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.logger.Warn("discarding malformed frame", "session_id", s.ID, "err", err)
			continue
		}
		onFrame(frame)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()
	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				s.logger.Debug("session write failed", "session_id", s.ID, "err", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
