package dto

type SelfVerificationRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=skill experience project"`
	ItemID   string `json:"item_id" validate:"required,uuid"`
}

type QuizSubmissionRequest struct {
	VerificationID string            `json:"verification_id" validate:"required,uuid"`
	Answers        map[string]string `json:"answers" validate:"required"`
}

type ReferralVerificationRequest struct {
	ItemType      string `json:"item_type" validate:"required,oneof=skill experience project certification"`
	ItemID        string `json:"item_id" validate:"required,uuid"`
	ReferralName  string `json:"referral_name" validate:"required,max=255"`
	ReferralEmail string `json:"referral_email" validate:"required,email"`
	Message       string `json:"message" validate:"max=2000"`
}

type LinkVerificationRequest struct {
	ItemType    string `json:"item_type" validate:"required,oneof=skill experience project certification"`
	ItemID      string `json:"item_id" validate:"required,uuid"`
	EvidenceURL string `json:"evidence_url" validate:"required,url"`
}
