package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	matchessvc "github.com/dextiii09/pingnewapp/internal/services/matches"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	entries, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, matchessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list matches")
		return
	}

	payload := dto.MatchesResponse{Matches: make([]dto.MatchEntry, 0, len(entries))}
	for _, entry := range entries {
		payload.Matches = append(payload.Matches, dto.MatchEntry{
			MatchID:          entry.MatchID,
			OtherUserID:      entry.OtherUserID,
			OtherDisplayName: entry.OtherDisplayName,
			OtherLocation:    entry.OtherLocation,
			LastMessage:      entry.LastMessage,
			LastActive:       entry.LastActive,
			CreatedAt:        entry.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, payload)
}

func (h *MatchesHandler) Repair(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	var req dto.RepairMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	match, err := h.service.Repair(r.Context(), identity.UserID, req.OtherUserID)
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "other_user_id is required")
		case errors.Is(err, matchessvc.ErrNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "ledgers do not prove a mutual match")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to repair match")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MatchPayload{
		ID:          match.ID,
		Users:       []string{match.UserA, match.UserB},
		LastMessage: match.LastMessage,
		LastActive:  match.LastActive,
	})
}
