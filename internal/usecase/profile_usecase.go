package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iri-backend/internal/domain/profile"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("invalid date")

// ProfileInput is the full desired state of a profile. Dates arrive as
// strings and accept YYYY-MM-DD or YYYY-MM.
type ProfileInput struct {
	FullName    string
	DateOfBirth string
	Location    string
	Headline    string
	Summary     string

	Educations     []EducationInput
	Experiences    []ExperienceInput
	Projects       []ProjectInput
	Certifications []CertificationInput
	Volunteering   []VolunteeringInput
	Skills         []SkillInput
}

type EducationInput struct {
	Institution  string
	Level        string
	FieldOfStudy string
	StartDate    string
	EndDate      string
	IsCurrent    bool
	Grade        string
	Description  string
}

type ExperienceInput struct {
	RoleTitle     string
	Company       string
	StartDate     string
	EndDate       string
	IsCurrent     bool
	Description   string
	ReferralName  string
	ReferralEmail string
}

type ProjectInput struct {
	Title         string
	Organization  string
	StartDate     string
	EndDate       string
	Contribution  string
	Description   string
	Technologies  string
	Tools         string
	ReferralName  string
	ReferralEmail string
	LiveLink      string
	GithubLink    string
}

type CertificationInput struct {
	Name          string
	Issuer        string
	IssueDate     string
	ExpiryDate    string
	CredentialURL string
}

type VolunteeringInput struct {
	Organization string
	Role         string
	StartDate    string
	EndDate      string
	Description  string
}

type SkillInput struct {
	Name        string
	Proficiency *int16
	Source      string
	IsPrimary   bool
}

// ProfileView is the aggregate read model: the profile row plus every
// child collection.
type ProfileView struct {
	Profile        profile.StudentProfile
	Educations     []profile.Education
	Experiences    []profile.Experience
	Projects       []profile.Project
	Certifications []profile.Certification
	Volunteering   []profile.Volunteering
	Skills         []profile.ProfileSkill
}

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	Replace(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.StudentProfile, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	cache    Cache
}

func NewProfileUsecase(profiles repository.ProfileRepository, cache Cache) *Profile {
	return &Profile{profiles: profiles, cache: cache}
}

func (u *Profile) GetMyProfile(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	p, err := u.profiles.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return ProfileView{}, ErrInternal
	}

	view := ProfileView{Profile: p}
	if view.Educations, err = u.profiles.FindEducations(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	if view.Experiences, err = u.profiles.FindExperiences(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	if view.Projects, err = u.profiles.FindProjects(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	if view.Certifications, err = u.profiles.FindCertifications(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	if view.Volunteering, err = u.profiles.FindVolunteering(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	if view.Skills, err = u.profiles.FindSkills(ctx, p.ID); err != nil {
		return ProfileView{}, ErrInternal
	}
	return view, nil
}

func (u *Profile) Replace(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.StudentProfile, error) {
	replace, err := buildReplaceInput(in)
	if err != nil {
		return profile.StudentProfile{}, err
	}

	p, err := u.profiles.Replace(ctx, userID, replace)
	if err != nil {
		return profile.StudentProfile{}, ErrInternal
	}

	// Scores derived from the old profile contents are stale now.
	_ = u.cache.InvalidateReadiness(ctx, userID)

	return p, nil
}

func buildReplaceInput(in ProfileInput) (repository.ProfileReplaceInput, error) {
	out := repository.ProfileReplaceInput{
		FullName: strings.TrimSpace(in.FullName),
		Location: strings.TrimSpace(in.Location),
		Headline: strings.TrimSpace(in.Headline),
		Summary:  strings.TrimSpace(in.Summary),
	}

	var err error
	if out.DateOfBirth, err = parseDate(in.DateOfBirth); err != nil {
		return repository.ProfileReplaceInput{}, err
	}

	for _, e := range in.Educations {
		start, err := parseDate(e.StartDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		end, err := parseDate(e.EndDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		out.Educations = append(out.Educations, profile.Education{
			Institution:  strings.TrimSpace(e.Institution),
			Level:        educationLevel(e.Level),
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    start,
			EndDate:      end,
			IsCurrent:    e.IsCurrent,
			Grade:        e.Grade,
			Description:  e.Description,
		})
	}

	for _, e := range in.Experiences {
		start, err := parseDate(e.StartDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		end, err := parseDate(e.EndDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		out.Experiences = append(out.Experiences, profile.Experience{
			RoleTitle:     strings.TrimSpace(e.RoleTitle),
			Company:       strings.TrimSpace(e.Company),
			StartDate:     start,
			EndDate:       end,
			IsCurrent:     e.IsCurrent,
			Description:   e.Description,
			ReferralName:  e.ReferralName,
			ReferralEmail: e.ReferralEmail,
		})
	}

	for _, p := range in.Projects {
		start, err := parseDate(p.StartDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		end, err := parseDate(p.EndDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		out.Projects = append(out.Projects, profile.Project{
			Title:         strings.TrimSpace(p.Title),
			Organization:  p.Organization,
			StartDate:     start,
			EndDate:       end,
			Contribution:  p.Contribution,
			Description:   p.Description,
			Technologies:  p.Technologies,
			Tools:         p.Tools,
			ReferralName:  p.ReferralName,
			ReferralEmail: p.ReferralEmail,
			LiveLink:      p.LiveLink,
			GithubLink:    p.GithubLink,
		})
	}

	for _, c := range in.Certifications {
		issued, err := parseDate(c.IssueDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		expires, err := parseDate(c.ExpiryDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		out.Certifications = append(out.Certifications, profile.Certification{
			Name:          strings.TrimSpace(c.Name),
			Issuer:        c.Issuer,
			IssueDate:     issued,
			ExpiryDate:    expires,
			CredentialURL: c.CredentialURL,
		})
	}

	for _, v := range in.Volunteering {
		start, err := parseDate(v.StartDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		end, err := parseDate(v.EndDate)
		if err != nil {
			return repository.ProfileReplaceInput{}, err
		}
		out.Volunteering = append(out.Volunteering, profile.Volunteering{
			Organization: strings.TrimSpace(v.Organization),
			Role:         v.Role,
			StartDate:    start,
			EndDate:      end,
			Description:  v.Description,
		})
	}

	for _, s := range in.Skills {
		out.Skills = append(out.Skills, repository.ProfileSkillInput{
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Source:      profile.SkillSource(s.Source),
			IsPrimary:   s.IsPrimary,
		})
	}

	return out, nil
}

func educationLevel(raw string) profile.EducationLevel {
	lvl := profile.EducationLevel(strings.ToLower(strings.TrimSpace(raw)))
	switch lvl {
	case profile.EducationPrimary, profile.EducationSecondary, profile.EducationDiploma,
		profile.EducationDegree, profile.EducationPostgrad:
		return lvl
	}
	return profile.EducationOther
}

// parseDate accepts YYYY-MM-DD or YYYY-MM (first of month). Empty input
// is a nil date, not an error.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
