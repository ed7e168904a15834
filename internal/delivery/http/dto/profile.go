package dto

import "iri-backend/internal/usecase"

// CreateProfileRequest is the full-profile payload. Every child
// collection replaces what is stored.
type CreateProfileRequest struct {
	BasicInfo      BasicInfo            `json:"basic_info"`
	Educations     []EducationEntry     `json:"educations" validate:"dive"`
	Experiences    []ExperienceEntry    `json:"experiences" validate:"dive"`
	Projects       []ProjectEntry       `json:"projects" validate:"dive"`
	Skills         []SkillEntry         `json:"skills" validate:"dive"`
	Certifications []CertificationEntry `json:"certifications" validate:"dive"`
	Volunteering   []VolunteeringEntry  `json:"volunteering" validate:"dive"`
}

type BasicInfo struct {
	FullName    string `json:"full_name" validate:"max=255"`
	DateOfBirth string `json:"date_of_birth"`
	Location    string `json:"location" validate:"max=255"`
	Headline    string `json:"headline" validate:"max=255"`
	Summary     string `json:"summary"`
}

type EducationEntry struct {
	Institution       string `json:"institution" validate:"required,max=255"`
	Level             string `json:"level"`
	FieldOfStudy      string `json:"field_of_study"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	CurrentlyStudying bool   `json:"currently_studying"`
	GradeGPA          string `json:"grade_gpa"`
	Description       string `json:"description"`
}

type ExperienceEntry struct {
	JobTitle         string `json:"job_title" validate:"required,max=255"`
	Company          string `json:"company" validate:"required,max=255"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	CurrentlyWorking bool   `json:"currently_working"`
	Description      string `json:"description"`
	ReferralName     string `json:"referral_name"`
	ReferralEmail    string `json:"referral_email" validate:"omitempty,email"`
}

type ProjectEntry struct {
	Title            string `json:"title" validate:"required,max=255"`
	Description      string `json:"description"`
	Technologies     string `json:"technologies"`
	GithubLink       string `json:"github_link" validate:"omitempty,url"`
	LiveURL          string `json:"live_url" validate:"omitempty,url"`
	YourContribution string `json:"your_contribution"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
}

type SkillEntry struct {
	Name        string `json:"name" validate:"required,max=255"`
	Proficiency *int16 `json:"proficiency" validate:"omitempty,min=1,max=5"`
}

type CertificationEntry struct {
	Name          string `json:"name" validate:"required,max=255"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	CredentialURL string `json:"credential_url" validate:"omitempty,url"`
}

type VolunteeringEntry struct {
	Organization string `json:"organization" validate:"required,max=255"`
	Role         string `json:"role"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

// ToInput maps the request onto the usecase input.
func (r CreateProfileRequest) ToInput() usecase.ProfileInput {
	in := usecase.ProfileInput{
		FullName:    r.BasicInfo.FullName,
		DateOfBirth: r.BasicInfo.DateOfBirth,
		Location:    r.BasicInfo.Location,
		Headline:    r.BasicInfo.Headline,
		Summary:     r.BasicInfo.Summary,
	}

	for _, e := range r.Educations {
		in.Educations = append(in.Educations, usecase.EducationInput{
			Institution:  e.Institution,
			Level:        e.Level,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			IsCurrent:    e.CurrentlyStudying,
			Grade:        e.GradeGPA,
			Description:  e.Description,
		})
	}
	for _, e := range r.Experiences {
		in.Experiences = append(in.Experiences, usecase.ExperienceInput{
			RoleTitle:     e.JobTitle,
			Company:       e.Company,
			StartDate:     e.StartDate,
			EndDate:       e.EndDate,
			IsCurrent:     e.CurrentlyWorking,
			Description:   e.Description,
			ReferralName:  e.ReferralName,
			ReferralEmail: e.ReferralEmail,
		})
	}
	for _, p := range r.Projects {
		in.Projects = append(in.Projects, usecase.ProjectInput{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			GithubLink:   p.GithubLink,
			LiveLink:     p.LiveURL,
			Contribution: p.YourContribution,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	for _, s := range r.Skills {
		in.Skills = append(in.Skills, usecase.SkillInput{
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Source:      "manual",
		})
	}
	for _, c := range r.Certifications {
		in.Certifications = append(in.Certifications, usecase.CertificationInput{
			Name:          c.Name,
			Issuer:        c.Issuer,
			IssueDate:     c.IssueDate,
			ExpiryDate:    c.ExpiryDate,
			CredentialURL: c.CredentialURL,
		})
	}
	for _, v := range r.Volunteering {
		in.Volunteering = append(in.Volunteering, usecase.VolunteeringInput{
			Organization: v.Organization,
			Role:         v.Role,
			StartDate:    v.StartDate,
			EndDate:      v.EndDate,
			Description:  v.Description,
		})
	}

	return in
}
