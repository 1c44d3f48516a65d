package enums

type DealStage string

const (
	StageNone          DealStage = "NONE"
	StageProposalSent  DealStage = "PROPOSAL_SENT"
	StageNegotiation   DealStage = "NEGOTIATION"
	StageAgreed        DealStage = "AGREED"
	StageEscrowFunded  DealStage = "ESCROW_FUNDED"
	StageWorkSubmitted DealStage = "WORK_SUBMITTED"
	StageCompleted     DealStage = "COMPLETED"
)
