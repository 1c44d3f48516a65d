package rules

import (
	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
)

var stageRank = map[enums.DealStage]int{
	enums.StageNone:          0,
	enums.StageProposalSent:  1,
	enums.StageNegotiation:   2,
	enums.StageAgreed:        3,
	enums.StageEscrowFunded:  4,
	enums.StageWorkSubmitted: 5,
	enums.StageCompleted:     6,
}

func StageRank(s enums.DealStage) int {
	return stageRank[s]
}

// CanCreateProposal limits proposal creation to the open-negotiation
// part of the lifecycle; once a deal is agreed the offer is locked.
func CanCreateProposal(current enums.DealStage) bool {
	switch current {
	case enums.StageNone, enums.StageProposalSent, enums.StageNegotiation:
		return true
	default:
		return false
	}
}

// StageAfterProposal is the stage a new proposal moves the deal to: a
// first offer opens the deal, a counter-offer moves it to negotiation.
func StageAfterProposal(current enums.DealStage) enums.DealStage {
	if current == enums.StageProposalSent || current == enums.StageNegotiation {
		return enums.StageNegotiation
	}
	return enums.StageProposalSent
}

// advanceRequires maps each manual advance target to the stage it is
// gated on. Funding, submission and release are strictly one-way.
var advanceRequires = map[enums.DealStage]enums.DealStage{
	enums.StageEscrowFunded:  enums.StageAgreed,
	enums.StageWorkSubmitted: enums.StageEscrowFunded,
	enums.StageCompleted:     enums.StageWorkSubmitted,
}

// CanAdvance reports whether a manual advance to target is allowed
// from current. Re-advancing to an already-reached stage is reported
// as a no-op so retries after ambiguous failures stay safe.
func CanAdvance(current, target enums.DealStage) (ok bool, noop bool) {
	required, known := advanceRequires[target]
	if !known {
		return false, false
	}
	if current == target {
		return true, true
	}
	return current == required, false
}

// DeriveStage recomputes the deal stage purely from proposal history
// (ordered by creation time) plus the highest manually advanced stage.
// The persisted stage row is a cache of this derivation.
func DeriveStage(proposals []model.Proposal, manual enums.DealStage) enums.DealStage {
	if len(proposals) == 0 {
		return enums.StageNone
	}

	latest := proposals[len(proposals)-1]
	switch latest.Status {
	case enums.ProposalAccepted:
		if StageRank(manual) > StageRank(enums.StageAgreed) {
			return manual
		}
		return enums.StageAgreed
	case enums.ProposalPending:
		if len(proposals) > 1 && proposals[len(proposals)-2].Superseded {
			return enums.StageNegotiation
		}
		return enums.StageProposalSent
	default:
		return enums.StageNone
	}
}
