package usecase

import "github.com/google/uuid"

// Event names pushed over the websocket hub.
const (
	EventReadinessUpdated    = "readiness_updated"
	EventVerificationUpdated = "verification_updated"
)

// Notifier pushes an event to every live connection of one user.
// Delivery is best effort; implementations must not block.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any)
}

// NoopNotifier drops every event.
type NoopNotifier struct{}

func (NoopNotifier) Notify(uuid.UUID, string, any) {}
