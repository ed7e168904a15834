package dto

import (
	"time"

	"iri-backend/internal/domain/verification"

	"github.com/google/uuid"
)

type VerificationResponse struct {
	ID            uuid.UUID  `json:"id"`
	ItemType      string     `json:"item_type"`
	ItemID        uuid.UUID  `json:"item_id"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	Score         float64    `json:"score"`
	ReferralName  string     `json:"referral_name,omitempty"`
	ReferralEmail string     `json:"referral_email,omitempty"`
	EvidenceURL   string     `json:"evidence_url,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewVerificationResponse(r verification.Request) VerificationResponse {
	return VerificationResponse{
		ID:            r.ID,
		ItemType:      string(r.Target.Type),
		ItemID:        r.Target.ID,
		Method:        string(r.Method),
		Status:        string(r.Status),
		Score:         r.Score,
		ReferralName:  r.ReferralName,
		ReferralEmail: r.ReferralEmail,
		EvidenceURL:   r.EvidenceURL,
		ExpiresAt:     r.ExpiresAt,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
	}
}

func NewVerificationResponses(reqs []verification.Request) []VerificationResponse {
	out := make([]VerificationResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewVerificationResponse(r))
	}
	return out
}
