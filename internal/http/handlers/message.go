package handlers

import (
	"net/http"
	"strconv"
	"time"

	"placenet/internal/app"
	"placenet/internal/common"
	"placenet/internal/http/middleware"
	"placenet/internal/http/response"
)

type MessageHandler struct {
	chat    *app.ChatService
	limiter middleware.Limiter
}

func NewMessageHandler(chat *app.ChatService, limiter middleware.Limiter) *MessageHandler {
	return &MessageHandler{chat: chat, limiter: limiter}
}

type messageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Body       string `json:"body"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	receiverID, err := common.ParseUUID(req.ReceiverID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid message", map[string]string{"receiver_id": "receiver_id must be a valid UUID"}))
		return
	}
	if h.limiter != nil {
		key := "msg:" + userID.String()
		if !h.limiter.Allow(key, 1, 2*time.Second) {
			response.Error(w, common.NewError(common.CodeRateLimited, "messages are sent too frequently", nil))
			return
		}
	}
	created, err := h.chat.Send(r.Context(), userID, receiverID, req.Body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	otherID, err := common.ParseUUID(r.URL.Query().Get("with"))
	if err != nil {
		response.Error(w, common.NewValidationError("with is required", map[string]string{"with": "with must be a valid UUID"}))
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		response.Error(w, common.NewValidationError("limit is required", map[string]string{"limit": "limit must be > 0"}))
		return
	}
	offset := 0
	if value := r.URL.Query().Get("offset"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			response.Error(w, common.NewValidationError("invalid offset", map[string]string{"offset": "offset must be >= 0"}))
			return
		}
		offset = parsed
	}
	items, err := h.chat.ListBetween(r.Context(), userID, otherID, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
