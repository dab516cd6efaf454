package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

type NotificationController struct {
	Logger   *slog.Logger
	Notifier domain.Notifier
}

func NewNotificationController(logger *slog.Logger, notifier domain.Notifier) *NotificationController {
	return &NotificationController{
		Logger:   logger,
		Notifier: notifier,
	}
}

// ListNotificationsResponse is the response body for GET /notifications.
type ListNotificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

// ListNotifications godoc
// @Summary List my notifications
// @Description Returns the authenticated user's notifications, newest first, paginated.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains notifications and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	notifications, total, err := c.Notifier.FindAll(r.Context(), userID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListNotificationsResponse{
		Notifications: notifications,
		Pagination:    helpers.NewPaginationMeta(params, total),
	})
}
