package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	likessvc "github.com/dextiii09/pingnewapp/internal/services/likes"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type LikesHandler struct {
	service *likessvc.Service
}

func NewLikesHandler(service *likessvc.Service) *LikesHandler {
	return &LikesHandler{service: service}
}

func (h *LikesHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid limit")
			return
		}
		limit = parsed
	}

	likes, err := h.service.Incoming(r.Context(), identity.UserID, limit)
	if err != nil {
		if errors.Is(err, likessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list incoming likes")
		return
	}

	payload := dto.IncomingLikesResponse{Likes: make([]dto.IncomingLike, 0, len(likes))}
	for _, like := range likes {
		payload.Likes = append(payload.Likes, dto.IncomingLike{
			FromID:      like.FromID,
			DisplayName: like.DisplayName,
			Location:    like.Location,
			SuperLike:   like.SuperLike,
			Seen:        like.Seen,
			CreatedAt:   like.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, payload)
}

func (h *LikesHandler) UnseenCount(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	count, err := h.service.UnseenCount(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to count unseen likes")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UnseenCountResponse{Count: count})
}

func (h *LikesHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	var req dto.MarkSeenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.MarkSeen(r.Context(), identity.UserID, req.FromID); err != nil {
		switch {
		case errors.Is(err, likessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "from_id is required")
		case errors.Is(err, likessvc.ErrNotFound):
			writeNotFound(w, "LIKE_NOT_FOUND", "received like no longer exists")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to mark like seen")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
