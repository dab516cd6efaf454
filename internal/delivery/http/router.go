package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// Controllers bundles the HTTP controllers mounted by NewRouter.
type Controllers struct {
	Auth           *controllers.AuthController
	Event          *controllers.EventController
	Participant    *controllers.ParticipantController
	Notification   *controllers.NotificationController
	Chat           *controllers.ChatController
	NotificationWS http.HandlerFunc
	ChatWS         http.HandlerFunc
}

// NewRouter initializes the HTTP router with all application routes.
// Websocket routes carry their token in the query string and are not wrapped
// by the bearer middleware.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/verify", c.Auth.VerifyLogin)

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(c.Event.CancelEvent))

	// Participants
	mux.HandleFunc("POST /events/{eventID}/participants", auth(c.Participant.Join))
	mux.HandleFunc("GET /events/{eventID}/participants", auth(c.Participant.ListParticipants))
	mux.HandleFunc("GET /events/{eventID}/participants/me", auth(c.Participant.GetMyParticipation))
	mux.HandleFunc("GET /events/{eventID}/attendance", auth(c.Participant.ListAttendance))
	mux.HandleFunc("POST /participants/{participantID}/accept", auth(c.Participant.Accept))
	mux.HandleFunc("POST /participants/{participantID}/decline", auth(c.Participant.Decline))
	mux.HandleFunc("POST /participants/{participantID}/attend", auth(c.Participant.Attend))
	mux.HandleFunc("POST /participants/{participantID}/absence", auth(c.Participant.Absence))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(c.Notification.ListNotifications))

	// Chat
	mux.HandleFunc("POST /chatrooms", auth(c.Chat.CreateRoom))
	mux.HandleFunc("GET /chatrooms", auth(c.Chat.ListRooms))
	mux.HandleFunc("GET /chatrooms/{chatRoomID}/messages", auth(c.Chat.ListMessages))

	// Websockets
	mux.HandleFunc("GET /ws/notifications", c.NotificationWS)
	mux.HandleFunc("GET /ws/chat", c.ChatWS)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
