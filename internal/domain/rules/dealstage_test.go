package rules

import (
	"testing"
	"time"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
)

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		name     string
		current  enums.DealStage
		target   enums.DealStage
		wantOK   bool
		wantNoop bool
	}{
		{name: "fund_from_agreed", current: enums.StageAgreed, target: enums.StageEscrowFunded, wantOK: true},
		{name: "fund_twice_is_noop", current: enums.StageEscrowFunded, target: enums.StageEscrowFunded, wantOK: true, wantNoop: true},
		{name: "fund_before_agreement", current: enums.StageProposalSent, target: enums.StageEscrowFunded},
		{name: "submit_from_funded", current: enums.StageEscrowFunded, target: enums.StageWorkSubmitted, wantOK: true},
		{name: "submit_skipping_funding", current: enums.StageAgreed, target: enums.StageWorkSubmitted},
		{name: "release_from_submitted", current: enums.StageWorkSubmitted, target: enums.StageCompleted, wantOK: true},
		{name: "release_twice_is_noop", current: enums.StageCompleted, target: enums.StageCompleted, wantOK: true, wantNoop: true},
		{name: "release_from_funded", current: enums.StageEscrowFunded, target: enums.StageCompleted},
		{name: "unknown_target", current: enums.StageAgreed, target: enums.StageNegotiation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, noop := CanAdvance(tc.current, tc.target)
			if ok != tc.wantOK || noop != tc.wantNoop {
				t.Fatalf("unexpected advance result: got ok=%v noop=%v want ok=%v noop=%v", ok, noop, tc.wantOK, tc.wantNoop)
			}
		})
	}
}

func TestStageAfterProposal(t *testing.T) {
	if got := StageAfterProposal(enums.StageNone); got != enums.StageProposalSent {
		t.Fatalf("first proposal should open the deal, got %s", got)
	}
	if got := StageAfterProposal(enums.StageProposalSent); got != enums.StageNegotiation {
		t.Fatalf("counter offer should move to negotiation, got %s", got)
	}
	if got := StageAfterProposal(enums.StageNegotiation); got != enums.StageNegotiation {
		t.Fatalf("negotiation should stay in negotiation, got %s", got)
	}
}

func TestDeriveStage(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	proposal := func(status enums.ProposalStatus, superseded bool, offset time.Duration) model.Proposal {
		return model.Proposal{
			Status:     status,
			Superseded: superseded,
			CreatedAt:  base.Add(offset),
		}
	}

	cases := []struct {
		name      string
		proposals []model.Proposal
		manual    enums.DealStage
		want      enums.DealStage
	}{
		{name: "no_history", want: enums.StageNone},
		{
			name:      "single_pending",
			proposals: []model.Proposal{proposal(enums.ProposalPending, false, 0)},
			want:      enums.StageProposalSent,
		},
		{
			name: "counter_offer_pending",
			proposals: []model.Proposal{
				proposal(enums.ProposalDeclined, true, 0),
				proposal(enums.ProposalPending, false, time.Minute),
			},
			want: enums.StageNegotiation,
		},
		{
			name:      "declined_resets",
			proposals: []model.Proposal{proposal(enums.ProposalDeclined, false, 0)},
			want:      enums.StageNone,
		},
		{
			name:      "accepted",
			proposals: []model.Proposal{proposal(enums.ProposalAccepted, false, 0)},
			want:      enums.StageAgreed,
		},
		{
			name:      "accepted_then_funded",
			proposals: []model.Proposal{proposal(enums.ProposalAccepted, false, 0)},
			manual:    enums.StageEscrowFunded,
			want:      enums.StageEscrowFunded,
		},
		{
			name:      "accepted_then_completed",
			proposals: []model.Proposal{proposal(enums.ProposalAccepted, false, 0)},
			manual:    enums.StageCompleted,
			want:      enums.StageCompleted,
		},
		{
			name: "new_offer_after_decline_is_not_negotiation",
			proposals: []model.Proposal{
				proposal(enums.ProposalDeclined, false, 0),
				proposal(enums.ProposalPending, false, time.Minute),
			},
			want: enums.StageProposalSent,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStage(tc.proposals, tc.manual)
			if got != tc.want {
				t.Fatalf("unexpected derived stage: got %s want %s", got, tc.want)
			}
		})
	}
}
