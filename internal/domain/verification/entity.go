package verification

import (
	"time"

	"github.com/google/uuid"
)

type Method string

const (
	MethodSelf     Method = "self"
	MethodReferral Method = "referral"
	MethodLink     Method = "link"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodSelf, MethodReferral, MethodLink:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusExpired
}

// CanTransition guards the state machine: only a pending request may
// move, and only into a terminal state.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	return to.IsTerminal()
}

// Request is one verification attempt against a single owned profile
// item. A profile may hold several requests for the same target; the
// newest pending one is the active attempt.
type Request struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	Target        Target
	Method        Method
	Status        Status
	Score         float64
	ReferralName  string
	ReferralEmail string
	EvidenceURL   string
	Token         string
	ExpiresAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

// ExpiredAt reports whether the request's window has elapsed at now.
// Requests without an expiry never expire.
func (r Request) ExpiredAt(now time.Time) bool {
	return r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}
