package dto

import (
	"time"

	"iri-backend/internal/domain/profile"
	"iri-backend/internal/usecase"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Location    string    `json:"location"`
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Educations     []EducationResponse     `json:"educations"`
	Experiences    []ExperienceResponse    `json:"experiences"`
	Projects       []ProjectResponse       `json:"projects"`
	Certifications []CertificationResponse `json:"certifications"`
	Volunteering   []VolunteeringResponse  `json:"volunteering"`
	Skills         []ProfileSkillResponse  `json:"skills"`
}

type EducationResponse struct {
	ID           uuid.UUID `json:"id"`
	Institution  string    `json:"institution"`
	Level        string    `json:"level"`
	FieldOfStudy string    `json:"field_of_study"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	IsCurrent    bool      `json:"is_current"`
	Grade        string    `json:"grade"`
	Description  string    `json:"description"`
}

type ExperienceResponse struct {
	ID            uuid.UUID `json:"id"`
	RoleTitle     string    `json:"role_title"`
	Company       string    `json:"company"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	IsCurrent     bool      `json:"is_current"`
	Description   string    `json:"description"`
	ReferralName  string    `json:"referral_name"`
	ReferralEmail string    `json:"referral_email"`
}

type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies string    `json:"technologies"`
	Contribution string    `json:"contribution"`
	GithubLink   string    `json:"github_link"`
	LiveLink     string    `json:"live_link"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
}

type CertificationResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Issuer        string    `json:"issuer"`
	IssueDate     string    `json:"issue_date,omitempty"`
	ExpiryDate    string    `json:"expiry_date,omitempty"`
	CredentialURL string    `json:"credential_url"`
}

type VolunteeringResponse struct {
	ID           uuid.UUID `json:"id"`
	Organization string    `json:"organization"`
	Role         string    `json:"role"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	Description  string    `json:"description"`
}

type ProfileSkillResponse struct {
	ID                uuid.UUID `json:"id"`
	SkillID           uuid.UUID `json:"skill_id"`
	Name              string    `json:"name"`
	Source            string    `json:"source"`
	Proficiency       *int16    `json:"proficiency"`
	VerificationScore float64   `json:"verification_score"`
	IsPrimary         bool      `json:"is_primary"`
}

func NewProfileResponse(view usecase.ProfileView) ProfileResponse {
	out := ProfileResponse{
		ID:             view.Profile.ID,
		FullName:       view.Profile.FullName,
		DateOfBirth:    formatDate(view.Profile.DateOfBirth),
		Location:       view.Profile.Location,
		Headline:       view.Profile.Headline,
		Summary:        view.Profile.Summary,
		CreatedAt:      view.Profile.CreatedAt,
		UpdatedAt:      view.Profile.UpdatedAt,
		Educations:     []EducationResponse{},
		Experiences:    []ExperienceResponse{},
		Projects:       []ProjectResponse{},
		Certifications: []CertificationResponse{},
		Volunteering:   []VolunteeringResponse{},
		Skills:         []ProfileSkillResponse{},
	}

	for _, e := range view.Educations {
		out.Educations = append(out.Educations, EducationResponse{
			ID:           e.ID,
			Institution:  e.Institution,
			Level:        string(e.Level),
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    formatDate(e.StartDate),
			EndDate:      formatDate(e.EndDate),
			IsCurrent:    e.IsCurrent,
			Grade:        e.Grade,
			Description:  e.Description,
		})
	}
	for _, e := range view.Experiences {
		out.Experiences = append(out.Experiences, NewExperienceResponse(e))
	}
	for _, p := range view.Projects {
		out.Projects = append(out.Projects, NewProjectResponse(p))
	}
	for _, c := range view.Certifications {
		out.Certifications = append(out.Certifications, NewCertificationResponse(c))
	}
	for _, v := range view.Volunteering {
		out.Volunteering = append(out.Volunteering, VolunteeringResponse{
			ID:           v.ID,
			Organization: v.Organization,
			Role:         v.Role,
			StartDate:    formatDate(v.StartDate),
			EndDate:      formatDate(v.EndDate),
			Description:  v.Description,
		})
	}
	for _, s := range view.Skills {
		out.Skills = append(out.Skills, ProfileSkillResponse{
			ID:                s.ID,
			SkillID:           s.SkillID,
			Name:              s.SkillName,
			Source:            string(s.Source),
			Proficiency:       s.Proficiency,
			VerificationScore: s.VerificationScore,
			IsPrimary:         s.IsPrimary,
		})
	}

	return out
}

func NewExperienceResponse(e profile.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:            e.ID,
		RoleTitle:     e.RoleTitle,
		Company:       e.Company,
		StartDate:     formatDate(e.StartDate),
		EndDate:       formatDate(e.EndDate),
		IsCurrent:     e.IsCurrent,
		Description:   e.Description,
		ReferralName:  e.ReferralName,
		ReferralEmail: e.ReferralEmail,
	}
}

func NewProjectResponse(p profile.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: p.Technologies,
		Contribution: p.Contribution,
		GithubLink:   p.GithubLink,
		LiveLink:     p.LiveLink,
		StartDate:    formatDate(p.StartDate),
		EndDate:      formatDate(p.EndDate),
	}
}

func NewCertificationResponse(c profile.Certification) CertificationResponse {
	return CertificationResponse{
		ID:            c.ID,
		Name:          c.Name,
		Issuer:        c.Issuer,
		IssueDate:     formatDate(c.IssueDate),
		ExpiryDate:    formatDate(c.ExpiryDate),
		CredentialURL: c.CredentialURL,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
