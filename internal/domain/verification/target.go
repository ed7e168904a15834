package verification

import "github.com/google/uuid"

// TargetType enumerates the profile item kinds a request may verify.
type TargetType string

const (
	TargetSkill         TargetType = "skill"
	TargetExperience    TargetType = "experience"
	TargetProject       TargetType = "project"
	TargetCertification TargetType = "certification"
)

func ValidTargetType(t TargetType) bool {
	switch t {
	case TargetSkill, TargetExperience, TargetProject, TargetCertification:
		return true
	}
	return false
}

// Target is a typed reference to the verified item. It replaces the
// generic content-type/object-id pair with a closed union over the four
// concrete kinds, so resolution is a switch, not a runtime type lookup.
type Target struct {
	Type TargetType
	ID   uuid.UUID
}

func (t Target) IsZero() bool {
	return t.Type == "" || t.ID == uuid.Nil
}

// QuizEligible reports whether a self-verification quiz can be generated
// for this target kind. Certifications are verified by link or referral
// only.
func (t TargetType) QuizEligible() bool {
	switch t {
	case TargetSkill, TargetExperience, TargetProject:
		return true
	}
	return false
}
