package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/verification"
	"iri-backend/internal/repository"

	"github.com/google/uuid"
)

func verificationFixture() (*Verification, *stubProfileRepo, *stubVerificationRepo, *stubMailer, *stubCache, *stubNotifier) {
	profiles := &stubProfileRepo{
		profile: profile.StudentProfile{ID: uuid.New(), UserID: uuid.New(), FullName: "Ada Example"},
	}
	verifs := newStubVerificationRepo()
	mail := &stubMailer{}
	c := newStubCache()
	notifier := &stubNotifier{}

	uc := NewVerificationUsecase(profiles, verifs, mail, c, notifier, "https://app.example.dev", nil)
	return uc, profiles, verifs, mail, c, notifier
}

func TestRequestSelfGeneratesQuiz(t *testing.T) {
	uc, profiles, verifs, _, _, _ := verificationFixture()

	skillID := uuid.New()
	profiles.skills = []profile.ProfileSkill{{ID: skillID, SkillName: "Python"}}

	res, err := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   skillID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(res.Questions))
	}
	if res.ExpiresInMinutes != 60 {
		t.Fatalf("expected 60 minute window, got %d", res.ExpiresInMinutes)
	}
	if !strings.Contains(res.Questions[0].Prompt, "Python") {
		t.Fatalf("quiz must be generated from the item: %q", res.Questions[0].Prompt)
	}

	stored, err := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if err != nil {
		t.Fatalf("request not persisted: %v", err)
	}
	if stored.Status != verification.StatusPending || stored.Method != verification.MethodSelf {
		t.Fatalf("stored request wrong: %+v", stored)
	}
	if stored.ExpiresAt == nil {
		t.Fatal("self verification must carry an expiry")
	}
}

func TestRequestSelfRejectsCertifications(t *testing.T) {
	uc, _, _, _, _, _ := verificationFixture()

	_, err := uc.RequestSelf(context.Background(), uuid.New(), verification.Target{
		Type: verification.TargetCertification,
		ID:   uuid.New(),
	})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestRequestSelfUnknownItem(t *testing.T) {
	uc, profiles, _, _, _, _ := verificationFixture()

	_, err := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   uuid.New(),
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSubmitQuizApprovesOnPassingScore(t *testing.T) {
	uc, profiles, verifs, _, c, notifier := verificationFixture()

	skillID := uuid.New()
	profiles.skills = []profile.ProfileSkill{{ID: skillID, SkillName: "Go"}}

	res, err := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   skillID,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	long := strings.TrimSpace(strings.Repeat("detail ", 40))
	out, err := uc.SubmitQuiz(context.Background(), profiles.profile.UserID, res.VerificationID, map[string]string{
		"1": "Advanced",
		"2": "4",
		"3": long,
		"4": long,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Status != verification.StatusApproved {
		t.Fatalf("expected approval, got %s (score %v)", out.Status, out.Score)
	}

	stored, _ := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if stored.Status != verification.StatusApproved || stored.CompletedAt == nil {
		t.Fatalf("stored state wrong: %+v", stored)
	}
	if len(c.invalidated) != 1 {
		t.Fatal("approval must invalidate cached readiness")
	}
	if len(notifier.events) != 1 || notifier.events[0].Event != EventVerificationUpdated {
		t.Fatalf("expected one verification_updated event, got %+v", notifier.events)
	}
}

func TestSubmitQuizRejectsOnLowScore(t *testing.T) {
	uc, profiles, verifs, _, _, _ := verificationFixture()

	skillID := uuid.New()
	profiles.skills = []profile.ProfileSkill{{ID: skillID, SkillName: "Go"}}

	res, err := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   skillID,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	out, err := uc.SubmitQuiz(context.Background(), profiles.profile.UserID, res.VerificationID, map[string]string{"1": "Beginner"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Status != verification.StatusRejected {
		t.Fatalf("expected rejection, got %s (score %v)", out.Status, out.Score)
	}

	stored, _ := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if stored.Status != verification.StatusRejected {
		t.Fatalf("stored status: %s", stored.Status)
	}
}

func TestSubmitQuizExpiresLateSubmission(t *testing.T) {
	uc, profiles, verifs, _, _, _ := verificationFixture()

	skillID := uuid.New()
	profiles.skills = []profile.ProfileSkill{{ID: skillID, SkillName: "Go"}}

	res, err := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   skillID,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = uc.SubmitQuiz(context.Background(), profiles.profile.UserID, res.VerificationID, map[string]string{"1": "Advanced"})
	if !errors.Is(err, ErrVerificationExpired) {
		t.Fatalf("expected ErrVerificationExpired, got %v", err)
	}

	stored, _ := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if stored.Status != verification.StatusExpired {
		t.Fatalf("late submission must expire the request, got %s", stored.Status)
	}
}

func TestSubmitQuizOnSettledRequest(t *testing.T) {
	uc, profiles, verifs, _, _, _ := verificationFixture()

	skillID := uuid.New()
	profiles.skills = []profile.ProfileSkill{{ID: skillID, SkillName: "Go"}}

	res, _ := uc.RequestSelf(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetSkill,
		ID:   skillID,
	})
	now := time.Now()
	if _, err := verifs.TransitionStatus(context.Background(), res.VerificationID, verification.StatusPending, verification.StatusApproved, 90, &now); err != nil {
		t.Fatalf("seed transition: %v", err)
	}

	_, err := uc.SubmitQuiz(context.Background(), profiles.profile.UserID, res.VerificationID, map[string]string{"1": "Advanced"})
	if !errors.Is(err, ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound for settled request, got %v", err)
	}
}

func TestRequestReferralSendsEmail(t *testing.T) {
	uc, profiles, verifs, mail, _, _ := verificationFixture()

	expID := uuid.New()
	profiles.experiences = []profile.Experience{{ID: expID, Company: "Acme"}}

	res, err := uc.RequestReferral(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetExperience,
		ID:   expID,
	}, "Jordan Referee", "jordan@example.com", "please confirm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != verification.StatusPending {
		t.Fatalf("referral must stay pending, got %s", res.Status)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mail.sent))
	}
	sent := mail.sent[0]
	if sent.To != "jordan@example.com" {
		t.Fatalf("sent to %s", sent.To)
	}
	stored, _ := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if stored.Token == "" || !strings.Contains(sent.Body, stored.Token) {
		t.Fatal("email body must carry the verification token")
	}
	if !strings.Contains(sent.Body, "please confirm") {
		t.Fatal("custom message must be appended to the email")
	}
	if stored.ExpiresAt == nil {
		t.Fatal("referral request must carry a 7 day expiry")
	}
}

func TestRequestReferralKeepsRecordOnMailFailure(t *testing.T) {
	uc, profiles, verifs, mail, _, _ := verificationFixture()
	mail.err = errors.New("smtp unreachable")

	expID := uuid.New()
	profiles.experiences = []profile.Experience{{ID: expID, Company: "Acme"}}

	_, err := uc.RequestReferral(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetExperience,
		ID:   expID,
	}, "Jordan Referee", "jordan@example.com", "")
	if !errors.Is(err, ErrEmailDeliveryFailed) {
		t.Fatalf("expected ErrEmailDeliveryFailed, got %v", err)
	}

	all, _ := verifs.FindByProfile(context.Background(), profiles.profile.ID)
	if len(all) != 1 {
		t.Fatalf("request row must survive a delivery failure, got %d rows", len(all))
	}
}

func TestRequestLinkApprovesGithubEvidence(t *testing.T) {
	uc, profiles, verifs, _, c, notifier := verificationFixture()

	projID := uuid.New()
	profiles.projects = []profile.Project{{ID: projID, Title: "Inventory API"}}

	res, err := uc.RequestLink(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetProject,
		ID:   projID,
	}, "https://github.com/acme/inventory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != verification.StatusApproved || res.Score != 70 {
		t.Fatalf("got status=%s score=%v", res.Status, res.Score)
	}

	stored, _ := verifs.GetByID(context.Background(), profiles.profile.ID, res.VerificationID)
	if stored.CompletedAt == nil {
		t.Fatal("synchronous approval must set completed_at")
	}
	if len(c.invalidated) != 1 || len(notifier.events) != 1 {
		t.Fatal("approval must invalidate cache and notify")
	}
}

func TestRequestLinkScoresPortfolioAtThreshold(t *testing.T) {
	uc, profiles, _, _, _, _ := verificationFixture()

	projID := uuid.New()
	profiles.projects = []profile.Project{{ID: projID, Title: "Portfolio"}}

	res, err := uc.RequestLink(context.Background(), profiles.profile.UserID, verification.Target{
		Type: verification.TargetProject,
		ID:   projID,
	}, "https://me.example.dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 50 || res.Status != verification.StatusApproved {
		t.Fatalf("portfolio evidence: got status=%s score=%v", res.Status, res.Score)
	}
}

func TestStatusSummaryCounts(t *testing.T) {
	uc, profiles, verifs, _, _, _ := verificationFixture()

	pid := profiles.profile.ID
	now := time.Now()
	seed := []verification.Request{
		{ProfileID: pid, Method: verification.MethodSelf, Status: verification.StatusApproved},
		{ProfileID: pid, Method: verification.MethodSelf, Status: verification.StatusRejected},
		{ProfileID: pid, Method: verification.MethodLink, Status: verification.StatusApproved, CompletedAt: &now},
		{ProfileID: pid, Method: verification.MethodReferral, Status: verification.StatusPending},
		{ProfileID: pid, Method: verification.MethodSelf, Status: verification.StatusPending},
		{ProfileID: pid, Method: verification.MethodSelf, Status: verification.StatusPending},
	}
	for _, req := range seed {
		if _, err := verifs.Create(context.Background(), req); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	sum, err := uc.Status(context.Background(), profiles.profile.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 6 || sum.Pending != 3 || sum.Approved != 2 || sum.Rejected != 1 {
		t.Fatalf("counts wrong: %+v", sum)
	}
	if sum.ByMethod["self"] != 4 || sum.ByMethod["link"] != 1 || sum.ByMethod["referral"] != 1 {
		t.Fatalf("by_method wrong: %+v", sum.ByMethod)
	}
	if len(sum.Recent) != 5 {
		t.Fatalf("recent must cap at 5, got %d", len(sum.Recent))
	}
}

func TestVerificationRequiresProfile(t *testing.T) {
	uc, profiles, _, _, _, _ := verificationFixture()
	profiles.profileErr = repository.ErrProfileNotFound

	_, err := uc.Status(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
