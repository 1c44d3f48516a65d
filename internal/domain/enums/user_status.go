package enums

type UserStatus string

const (
	UserStatusActive       UserStatus = "ACTIVE"
	UserStatusBanned       UserStatus = "BANNED"
	UserStatusShadowBanned UserStatus = "SHADOW_BANNED"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
	VerificationRejected   VerificationStatus = "REJECTED"
)
