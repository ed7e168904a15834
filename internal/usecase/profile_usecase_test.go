package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"iri-backend/internal/domain/profile"

	"github.com/google/uuid"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-06-15")
	if err != nil || got == nil {
		t.Fatalf("full date: got %v, err %v", got, err)
	}
	if !got.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("full date parsed as %v", got)
	}

	got, err = parseDate("2024-06")
	if err != nil || got == nil {
		t.Fatalf("year-month: got %v, err %v", got, err)
	}
	if got.Day() != 1 {
		t.Fatalf("year-month must snap to the first, got day %d", got.Day())
	}

	got, err = parseDate("  ")
	if err != nil || got != nil {
		t.Fatalf("blank date must be nil, got %v err %v", got, err)
	}

	if _, err = parseDate("15/06/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestEducationLevelNormalization(t *testing.T) {
	cases := map[string]profile.EducationLevel{
		"Degree":      profile.EducationDegree,
		"  POSTGRAD ": profile.EducationPostgrad,
		"bootcamp":    profile.EducationOther,
		"":            profile.EducationOther,
	}
	for raw, want := range cases {
		if got := educationLevel(raw); got != want {
			t.Fatalf("educationLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestReplaceBuildsRepositoryInput(t *testing.T) {
	profiles := &stubProfileRepo{
		profile: profile.StudentProfile{ID: uuid.New(), UserID: uuid.New()},
	}
	c := newStubCache()
	uc := NewProfileUsecase(profiles, c)

	_, err := uc.Replace(context.Background(), profiles.profile.UserID, ProfileInput{
		FullName:    "  Ada Example  ",
		DateOfBirth: "2001-02",
		Experiences: []ExperienceInput{
			{RoleTitle: "Engineer", Company: " Acme ", StartDate: "2023-01", IsCurrent: true},
		},
		Skills: []SkillInput{
			{Name: "Python", Source: "manual"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := profiles.replacedWith
	if in == nil {
		t.Fatal("repository replace was not called")
	}
	if in.FullName != "Ada Example" {
		t.Fatalf("full name not trimmed: %q", in.FullName)
	}
	if in.DateOfBirth == nil || in.DateOfBirth.Month() != time.February {
		t.Fatalf("date of birth wrong: %v", in.DateOfBirth)
	}
	if len(in.Experiences) != 1 || in.Experiences[0].Company != "Acme" {
		t.Fatalf("experiences wrong: %+v", in.Experiences)
	}
	if len(in.Skills) != 1 || in.Skills[0].Source != profile.SourceManual {
		t.Fatalf("skills wrong: %+v", in.Skills)
	}

	if len(c.invalidated) != 1 || c.invalidated[0] != profiles.profile.UserID {
		t.Fatal("replace must invalidate the user's cached readiness")
	}
}

func TestReplaceRejectsInvalidDate(t *testing.T) {
	profiles := &stubProfileRepo{}
	uc := NewProfileUsecase(profiles, newStubCache())

	_, err := uc.Replace(context.Background(), uuid.New(), ProfileInput{
		Experiences: []ExperienceInput{{Company: "Acme", StartDate: "bad-date"}},
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if profiles.replacedWith != nil {
		t.Fatal("invalid input must not reach the repository")
	}
}

func TestGetMyProfileAggregatesChildren(t *testing.T) {
	langsID := uuid.New()
	profiles := &stubProfileRepo{
		profile: profile.StudentProfile{ID: uuid.New(), UserID: uuid.New(), FullName: "Ada Example"},
		skills: []profile.ProfileSkill{
			{ID: uuid.New(), SkillName: "Python", SubPillarID: &langsID},
		},
		experiences: []profile.Experience{{ID: uuid.New(), Company: "Acme"}},
	}
	uc := NewProfileUsecase(profiles, newStubCache())

	view, err := uc.GetMyProfile(context.Background(), profiles.profile.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Profile.FullName != "Ada Example" {
		t.Fatalf("profile wrong: %+v", view.Profile)
	}
	if len(view.Skills) != 1 || len(view.Experiences) != 1 {
		t.Fatalf("children wrong: %d skills, %d experiences", len(view.Skills), len(view.Experiences))
	}
}
