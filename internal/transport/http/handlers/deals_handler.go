package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
	authsvc "github.com/dextiii09/pingnewapp/internal/services/auth"
	dealssvc "github.com/dextiii09/pingnewapp/internal/services/deals"
	"github.com/dextiii09/pingnewapp/internal/transport/http/dto"
	httperrors "github.com/dextiii09/pingnewapp/internal/transport/http/errors"
)

type DealsHandler struct {
	service *dealssvc.Service
}

func NewDealsHandler(service *dealssvc.Service) *DealsHandler {
	return &DealsHandler{service: service}
}

func (h *DealsHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	matchID := chi.URLParam(r, "id")
	proposal, err := h.service.CreateProposal(r.Context(), matchID, identity.UserID, req.Title, req.PriceCents, req.Deadline)
	if err != nil {
		writeDealError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, mapProposal(proposal))
}

func (h *DealsHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.RespondProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	decision := enums.ProposalStatus(strings.ToUpper(strings.TrimSpace(req.Decision)))
	matchID := chi.URLParam(r, "id")
	proposalID := chi.URLParam(r, "proposal_id")

	stage, err := h.service.Respond(r.Context(), matchID, proposalID, identity.UserID, decision)
	if err != nil {
		writeDealError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StageResponse{Stage: string(stage)})
}

func (h *DealsHandler) FundEscrow(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.service.FundEscrow)
}

func (h *DealsHandler) SubmitWork(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.service.SubmitWork)
}

func (h *DealsHandler) ReleaseFunds(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.service.ReleaseFunds)
}

func (h *DealsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	matchID := chi.URLParam(r, "id")
	view, err := h.service.Get(r.Context(), matchID, identity.UserID)
	if err != nil {
		writeDealError(w, err)
		return
	}

	payload := dto.DealViewResponse{
		MatchID: view.MatchID,
		Stage:   string(view.Stage),
		History: make([]dto.ProposalPayload, 0, len(view.History)),
	}
	if view.ActiveProposal != nil {
		active := mapProposal(*view.ActiveProposal)
		payload.ActiveProposal = &active
	}
	for _, p := range view.History {
		payload.History = append(payload.History, mapProposal(p))
	}

	httperrors.Write(w, http.StatusOK, payload)
}

type advanceFn func(ctx context.Context, matchID, userID string) (dealssvc.AdvanceResult, error)

func (h *DealsHandler) advance(w http.ResponseWriter, r *http.Request, fn advanceFn) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	matchID := chi.URLParam(r, "id")
	result, err := fn(r.Context(), matchID, identity.UserID)
	if err != nil {
		writeDealError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StageResponse{Stage: string(result.Stage), Noop: result.Noop})
}

func (h *DealsHandler) requireIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	if h.service == nil {
		writeInternal(w, "DEALS_SERVICE_UNAVAILABLE", "deals service is unavailable")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func writeDealError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dealssvc.ErrValidation), errors.Is(err, dealssvc.ErrInvalidDecision):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid deal request")
	case errors.Is(err, dealssvc.ErrMatchNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match no longer exists")
	case errors.Is(err, dealssvc.ErrProposalNotFound):
		writeNotFound(w, "PROPOSAL_NOT_FOUND", "proposal no longer exists")
	case errors.Is(err, dealssvc.ErrNotMember):
		writeForbidden(w, "NOT_A_MEMBER", "user does not belong to this match")
	case errors.Is(err, dealssvc.ErrOwnProposal):
		writeConflict(w, "OWN_PROPOSAL", "cannot respond to your own proposal")
	case errors.Is(err, dealssvc.ErrProposalNotPending):
		writeConflict(w, "PROPOSAL_NOT_PENDING", "proposal has already been settled")
	case errors.Is(err, dealssvc.ErrProposalLocked):
		writeConflict(w, "DEAL_LOCKED", "deal is past negotiation")
	case errors.Is(err, dealssvc.ErrInvalidStageTransition):
		writeConflict(w, "INVALID_STAGE_TRANSITION", "deal stage does not allow this action")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process deal action")
	}
}

func mapProposal(p model.Proposal) dto.ProposalPayload {
	return dto.ProposalPayload{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		PriceCents: p.PriceCents,
		Deadline:   p.Deadline,
		Status:     string(p.Status),
		Superseded: p.Superseded,
		CreatedAt:  p.CreatedAt,
		DecidedAt:  p.DecidedAt,
	}
}
