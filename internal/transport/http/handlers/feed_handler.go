package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	feedsvc "github.com/dextiii09/pingnewapp/internal/services/feed"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type FeedHandler struct {
	service *feedsvc.Service
}

func NewFeedHandler(service *feedsvc.Service) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	boostMode := r.URL.Query().Get("boost") == "1"
	candidates, err := h.service.Get(r.Context(), identity.UserID, boostMode)
	if err != nil {
		switch {
		case errors.Is(err, feedsvc.ErrNotAuthenticated):
			writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		case errors.Is(err, feedsvc.ErrViewerInactive):
			writeForbidden(w, "VIEWER_INACTIVE", "account is not active")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to build feed")
		}
		return
	}

	payload := dto.FeedResponse{Candidates: make([]dto.FeedCandidate, 0, len(candidates))}
	for _, c := range candidates {
		payload.Candidates = append(payload.Candidates, dto.FeedCandidate{
			UserID:         c.User.ID,
			DisplayName:    c.User.DisplayName,
			Role:           string(c.User.Role),
			Location:       c.User.Location,
			Tags:           c.User.Tags,
			EffectiveScore: c.EffectiveScore,
			Priority:       c.Priority,
		})
	}

	httperrors.Write(w, http.StatusOK, payload)
}
