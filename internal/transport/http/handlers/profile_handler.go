package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dextiii09/pingnewapp/internal/domain/model"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	profilessvc "github.com/dextiii09/pingnewapp/internal/services/profiles"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilessvc.Service
}

func NewProfileHandler(service *profilessvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(user))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), identity.UserID, profilessvc.UpdateInput{
		DisplayName: req.DisplayName,
		Location:    req.Location,
		Tags:        req.Tags,
		MatchScore:  req.MatchScore,
	})
	if err != nil {
		writeProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(user))
}

func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile request")
	case errors.Is(err, profilessvc.ErrUserNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user no longer exists")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process profile request")
	}
}

func mapProfile(user model.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           user.ID,
		DisplayName:  user.DisplayName,
		Role:         string(user.Role),
		Status:       string(user.Status),
		Verification: string(user.Verification),
		MatchScore:   user.MatchScore,
		Tags:         user.Tags,
		Location:     user.Location,
		CreatedAt:    user.CreatedAt,
	}
}
