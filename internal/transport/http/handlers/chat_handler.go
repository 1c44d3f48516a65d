package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	chatsvc "github.com/dextiii09/pingnewapp/internal/services/chat"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type ChatHandler struct {
	service *chatsvc.Service
}

func NewChatHandler(service *chatsvc.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	matchID := chi.URLParam(r, "id")
	msg, err := h.service.Send(r.Context(), matchID, identity.UserID, req.Text)
	if err != nil {
		writeChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapMessage(msg))
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	matchID := chi.URLParam(r, "id")
	messages, err := h.service.List(r.Context(), matchID, identity.UserID)
	if err != nil {
		writeChatError(w, err)
		return
	}

	payload := dto.MessagesResponse{Messages: make([]dto.MessagePayload, 0, len(messages))}
	for _, msg := range messages {
		payload.Messages = append(payload.Messages, mapMessage(msg))
	}

	httperrors.Write(w, http.StatusOK, payload)
}

func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid message request")
	case errors.Is(err, chatsvc.ErrMatchNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match no longer exists")
	case errors.Is(err, chatsvc.ErrNotMember):
		writeForbidden(w, "NOT_A_MEMBER", "user does not belong to this match")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process message")
	}
}

func mapMessage(msg model.Message) dto.MessagePayload {
	return dto.MessagePayload{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		Kind:       string(msg.Kind),
		Body:       msg.Body,
		ProposalID: msg.ProposalID,
		CreatedAt:  msg.CreatedAt,
	}
}
