package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// CreateChatRoomRequest is the request body for POST /chatrooms.
type CreateChatRoomRequest struct {
	IsGroup bool `json:"is_group"`
}

type ChatController struct {
	Logger  *slog.Logger
	Service domain.ChatService
}

func NewChatController(logger *slog.Logger, svc domain.ChatService) *ChatController {
	return &ChatController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRoom godoc
// @Summary Create a chat room
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateChatRoomRequest true "Room settings"
// @Success 201 {object} helpers.APIResponse "data contains the created room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /chatrooms [post]
func (c *ChatController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.CreateRoom(r.Context(), req.IsGroup)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// ListRooms godoc
// @Summary List chat rooms
// @Description Lists rooms filtered by the is_group query parameter (default true).
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param is_group query bool false "Filter by group rooms (default true)"
// @Success 200 {object} helpers.APIResponse "data contains the rooms"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /chatrooms [get]
func (c *ChatController) ListRooms(w http.ResponseWriter, r *http.Request) {
	isGroup := r.URL.Query().Get("is_group") != "false"
	rooms, err := c.Service.ListRooms(r.Context(), isGroup)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// ListMessages godoc
// @Summary List a room's message history
// @Description Returns the room's messages in chronological order.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param chatRoomID path string true "Chat room ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the messages"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /chatrooms/{chatRoomID}/messages [get]
func (c *ChatController) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatRoomID := r.PathValue("chatRoomID")
	if chatRoomID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing chatRoomID")
		return
	}
	msgs, err := c.Service.ListMessages(r.Context(), chatRoomID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid chat room id")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "chat room not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msgs)
}
