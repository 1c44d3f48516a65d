package enums

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "PENDING"
	ProposalAccepted ProposalStatus = "ACCEPTED"
	ProposalDeclined ProposalStatus = "DECLINED"
)

type MessageKind string

const (
	MessageKindText     MessageKind = "text"
	MessageKindProposal MessageKind = "proposal"
)
