package profile

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	FullName    string
	DateOfBirth *time.Time
	Location    string
	Headline    string
	Summary     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EducationLevel string

const (
	EducationPrimary   EducationLevel = "primary"
	EducationSecondary EducationLevel = "secondary"
	EducationDiploma   EducationLevel = "diploma"
	EducationDegree    EducationLevel = "degree"
	EducationPostgrad  EducationLevel = "postgrad"
	EducationOther     EducationLevel = "other"
)

type Education struct {
	ID           uuid.UUID
	ProfileID    uuid.UUID
	Institution  string
	Level        EducationLevel
	FieldOfStudy string
	StartDate    *time.Time
	EndDate      *time.Time
	IsCurrent    bool
	Grade        string
	Description  string
}

type Experience struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	RoleTitle     string
	Company       string
	StartDate     *time.Time
	EndDate       *time.Time
	IsCurrent     bool
	Description   string
	ReferralName  string
	ReferralEmail string
}

type Project struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	Title         string
	Organization  string
	StartDate     *time.Time
	EndDate       *time.Time
	Contribution  string
	Description   string
	Technologies  string
	Tools         string
	ReferralName  string
	ReferralEmail string
	LiveLink      string
	GithubLink    string
}

type Certification struct {
	ID            uuid.UUID
	ProfileID     uuid.UUID
	Name          string
	Issuer        string
	IssueDate     *time.Time
	ExpiryDate    *time.Time
	CredentialURL string
}

type Volunteering struct {
	ID           uuid.UUID
	ProfileID    uuid.UUID
	Organization string
	Role         string
	StartDate    *time.Time
	EndDate      *time.Time
	Description  string
}

type SkillSource string

const (
	SourceManual        SkillSource = "manual"
	SourceEducation     SkillSource = "education"
	SourceProject       SkillSource = "project"
	SourceExperience    SkillSource = "experience"
	SourceCertification SkillSource = "certification"
	SourceVolunteering  SkillSource = "volunteering"
)

func ValidSkillSource(s SkillSource) bool {
	switch s {
	case SourceManual, SourceEducation, SourceProject, SourceExperience, SourceCertification, SourceVolunteering:
		return true
	}
	return false
}

// ProfileSkill links a catalog skill to a profile. Unique per
// (profile, skill). Proficiency is 1-5 when set.
type ProfileSkill struct {
	ID                uuid.UUID
	ProfileID         uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	SubPillarID       *uuid.UUID
	PillarID          *uuid.UUID
	Source            SkillSource
	Proficiency       *int16
	VerificationScore float64
	IsPrimary         bool
}
