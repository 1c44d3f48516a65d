package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	swipesvc "github.com/dextiii09/pingnewapp/internal/services/swipes"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetID) == "" || strings.TrimSpace(req.Direction) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and direction are required")
		return
	}

	direction := enums.SwipeDirection(strings.ToUpper(strings.TrimSpace(req.Direction)))
	result, err := h.service.Swipe(r.Context(), identity.UserID, req.TargetID, direction)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrSelfSwipe):
			writeBadRequest(w, "SELF_SWIPE", "cannot swipe on yourself")
		case errors.Is(err, swipesvc.ErrInvalidDirection):
			writeBadRequest(w, "INVALID_DIRECTION", "direction must be PASS, LIKE or SUPERLIKE")
		case errors.Is(err, swipesvc.ErrTargetNotFound):
			writeNotFound(w, "TARGET_NOT_FOUND", "target user no longer exists")
		default:
			var tooFast swipesvc.TooFastError
			if errors.As(err, &tooFast) {
				httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
					Code:          "TOO_FAST",
					Message:       "too many swipes, slow down",
					RetryAfterSec: tooFast.RetryAfterSec,
				})
				return
			}
			writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		}
		return
	}

	payload := dto.SwipeResponse{IsMatch: result.IsMatch}
	if result.Match != nil {
		payload.Match = &dto.MatchPayload{
			ID:          result.Match.ID,
			Users:       []string{result.Match.UserA, result.Match.UserB},
			LastMessage: result.Match.LastMessage,
			LastActive:  result.Match.LastActive,
		}
	}
	if result.MatchedWith != nil {
		payload.MatchedWith = &dto.MatchedUserPayload{
			UserID:      result.MatchedWith.ID,
			DisplayName: result.MatchedWith.DisplayName,
			Role:        string(result.MatchedWith.Role),
			Location:    result.MatchedWith.Location,
		}
	}

	httperrors.Write(w, http.StatusOK, payload)
}
