package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Messages shown to visitors when the relay cannot answer.
const (
	chatInvalidMessage     = "invalid message format"
	chatUnavailableMessage = "communication interrupted, please retry later"
)

type chatService interface {
	Reply(ctx context.Context, msgs []domain.ChatMessage) (string, error)
}

// ChatHandler relays visitor conversations.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, chatInvalidMessage)
		return
	}

	msgs := make([]domain.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = domain.ChatMessage{Role: domain.ChatRole(m.Role), Content: m.Content}
	}

	reply, err := h.svc.Reply(r.Context(), msgs)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, chatInvalidMessage)
	case errors.Is(err, domain.ErrUpstream):
		h.log.WarnContext(r.Context(), "chat upstream failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, chatUnavailableMessage)
	default:
		h.log.ErrorContext(r.Context(), "chat failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, chatUnavailableMessage)
	}
}
