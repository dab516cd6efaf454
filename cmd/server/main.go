// @title EventHub API
// @version 1.0
// @description Event management backend: events, participation, notifications, reminders, and chat.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/email"
	httpdelivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/realtime"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/scheduler"
	"eventhub/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	tokenExpiry     = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
	bcryptCost      = 12
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	loginCodeRepo := postgres.NewLoginCodeRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	chatRoomRepo := postgres.NewChatRoomRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	registry := realtime.NewRegistry(logger)
	hub := realtime.NewHub(logger)

	notifier := services.NewNotifierService(notificationRepo, registry, logger)
	announcer := services.NewEventAnnouncer(participantRepo, notifier, logger)
	authService := services.NewAuthService(userRepo, loginCodeRepo, hasher, tokenIssuer, tokenExpiry, mailer, logger)
	eventService := services.NewEventService(eventRepo, participantRepo, announcer, logger, serviceTimeout)
	participantService := services.NewParticipantService(participantRepo, eventRepo, userRepo, notifier, logger, serviceTimeout)
	chatService := services.NewChatService(chatRoomRepo, messageRepo, hub, logger, serviceTimeout)

	sweeper := services.NewReminderSweeper(eventRepo, announcer, logger)
	sched, err := scheduler.New(cfg.ReminderCron, sweeper, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "err", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:           controllers.NewAuthController(logger, authService),
		Event:          controllers.NewEventController(logger, eventService),
		Participant:    controllers.NewParticipantController(logger, participantService),
		Notification:   controllers.NewNotificationController(logger, notifier),
		Chat:           controllers.NewChatController(logger, chatService),
		NotificationWS: realtime.NotificationHandler(registry, tokenVerifier, logger),
		ChatWS:         realtime.ChatHandler(hub, chatService, logger),
	}, tokenVerifier, logger)

	handler := middleware.LoggingMiddleware(logger, router)
	if len(cfg.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.AllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}
}
