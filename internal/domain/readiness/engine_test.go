package readiness

import (
	"math"
	"testing"
	"time"

	"iri-backend/internal/domain/catalog"
	"iri-backend/internal/domain/profile"
	"iri-backend/internal/domain/verification"

	"github.com/google/uuid"
)

func fullInput(now time.Time) Input {
	techID := uuid.New()
	cogID := uuid.New()
	langsID := uuid.New()
	problemID := uuid.New()

	skillID := uuid.New()
	start := now.AddDate(-2, 0, 0)

	return Input{
		HasProfile:  true,
		JobRoleName: "Backend Developer",
		Pillars: []catalog.Pillar{
			{ID: techID, Name: "Technical Skills"},
			{ID: cogID, Name: "Cognitive Abilities"},
		},
		SubPillars: []catalog.SubPillar{
			{ID: langsID, PillarID: techID, Name: "Programming Languages", Weight: 1},
			{ID: problemID, PillarID: cogID, Name: "Problem Solving", Weight: 1},
		},
		JobWeights: map[uuid.UUID]float64{
			techID: 60,
			cogID:  40,
		},
		Skills: []profile.ProfileSkill{
			{ID: uuid.New(), SkillID: skillID, SkillName: "Python", SubPillarID: &langsID},
		},
		Experiences: []profile.Experience{
			{
				RoleTitle:   "Backend Engineer",
				Company:     "Acme Labs",
				StartDate:   &start,
				IsCurrent:   true,
				Description: "Built Python services, debug and optimize performance",
			},
		},
		Projects: []profile.Project{
			{
				Title:        "Inventory API",
				Description:  "REST API in Python with PostgreSQL storage and CI deploys",
				Technologies: "python, postgresql",
				GithubLink:   "https://github.com/acme/inventory",
				LiveLink:     "https://inventory.acme.dev",
			},
		},
		Certifications: []profile.Certification{
			{Name: "AWS Certified Developer", Issuer: "AWS"},
		},
		Now: now,
	}
}

func TestCalculateWithoutProfile(t *testing.T) {
	res := NewEngine().Calculate(Input{HasProfile: false}, LevelStartup)

	if res.IRIScore != 0 || res.BaseScore != 0 {
		t.Fatalf("expected zero scores, got iri=%v base=%v", res.IRIScore, res.BaseScore)
	}
	if res.Error == "" {
		t.Fatal("expected an explanatory error message")
	}
	if res.Breakdown == nil || res.Strengths == nil || res.Gaps == nil {
		t.Fatal("empty result must keep slices non-nil for serialization")
	}
}

func TestCalculateWithoutJobWeights(t *testing.T) {
	in := fullInput(time.Now())
	in.JobWeights = nil

	res := NewEngine().Calculate(in, LevelStartup)
	if res.IRIScore != 0 || res.Error == "" {
		t.Fatalf("expected zero result with message, got %+v", res)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	in := fullInput(now)
	e := NewEngine()

	a := e.Calculate(in, LevelCorporate)
	b := e.Calculate(in, LevelCorporate)

	if a.IRIScore != b.IRIScore || a.BaseScore != b.BaseScore {
		t.Fatalf("same input produced different scores: %v vs %v", a.IRIScore, b.IRIScore)
	}
}

func TestCalculateLevelOrdering(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	in := fullInput(now)
	e := NewEngine()

	startup := e.Calculate(in, LevelStartup)
	corporate := e.Calculate(in, LevelCorporate)
	leading := e.Calculate(in, LevelLeading)

	if startup.BaseScore != corporate.BaseScore || corporate.BaseScore != leading.BaseScore {
		t.Fatal("base score must not depend on company level")
	}
	if startup.BaseScore <= 0 {
		t.Fatalf("expected positive base score, got %v", startup.BaseScore)
	}
	if !(startup.IRIScore <= corporate.IRIScore && corporate.IRIScore <= leading.IRIScore) {
		t.Fatalf("expected startup <= corporate <= leading, got %v / %v / %v",
			startup.IRIScore, corporate.IRIScore, leading.IRIScore)
	}
}

func TestCalculateClampsAtHundred(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	in := fullInput(now)
	e := NewEngine()

	for _, level := range AllCompanyLevels() {
		res := e.Calculate(in, level)
		if res.IRIScore > 100 {
			t.Fatalf("level %s: score above 100: %v", level, res.IRIScore)
		}
		want := math.Min(res.BaseScore*Multiplier(level), 100)
		if math.Abs(res.IRIScore-want) > 1e-9 {
			t.Fatalf("level %s: got %v want %v", level, res.IRIScore, want)
		}
	}
}

func TestCalculateBreakdownContributions(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	in := fullInput(now)

	res := NewEngine().Calculate(in, LevelStartup)
	if len(res.Breakdown) != 2 {
		t.Fatalf("expected one breakdown row per pillar, got %d", len(res.Breakdown))
	}

	sum := 0.0
	for _, row := range res.Breakdown {
		want := row.Score * row.WeightPercent / 100
		if math.Abs(row.WeightedContribution-want) > 1e-9 {
			t.Fatalf("pillar %s: contribution %v, want %v", row.Name, row.WeightedContribution, want)
		}
		sum += row.WeightedContribution
	}
	if math.Abs(sum-res.BaseScore) > 1e-9 {
		t.Fatalf("contributions sum %v != base score %v", sum, res.BaseScore)
	}
}

func TestSkillPointsByMethodAndStatus(t *testing.T) {
	cases := []struct {
		req  *verification.Request
		want float64
	}{
		{nil, 20},
		{&verification.Request{Method: verification.MethodSelf, Status: verification.StatusApproved}, 60},
		{&verification.Request{Method: verification.MethodSelf, Status: verification.StatusPending}, 30},
		{&verification.Request{Method: verification.MethodReferral, Status: verification.StatusApproved}, 30},
		{&verification.Request{Method: verification.MethodReferral, Status: verification.StatusRejected}, 15},
		{&verification.Request{Method: verification.MethodLink, Status: verification.StatusApproved, Score: 70}, 80},
		{&verification.Request{Method: verification.MethodLink, Status: verification.StatusPending}, 5},
	}
	for _, c := range cases {
		if got := skillPoints(c.req); got != c.want {
			t.Fatalf("skillPoints(%+v) = %v, want %v", c.req, got, c.want)
		}
	}
}

func TestVerificationImpactCounts(t *testing.T) {
	impact := verificationImpact([]verification.Request{
		{Method: verification.MethodSelf, Status: verification.StatusApproved},
		{Method: verification.MethodSelf, Status: verification.StatusRejected},
		{Method: verification.MethodLink, Status: verification.StatusApproved},
		{Method: verification.MethodReferral, Status: verification.StatusPending},
	})

	if impact.TotalVerifications != 4 || impact.VerifiedCount != 2 {
		t.Fatalf("got total=%d verified=%d", impact.TotalVerifications, impact.VerifiedCount)
	}
	if impact.VerificationRate != 50 {
		t.Fatalf("got rate %v, want 50", impact.VerificationRate)
	}
	self := impact.ByMethod["self"]
	if self.Total != 2 || self.Verified != 1 || self.Percentage != 50 {
		t.Fatalf("self method impact wrong: %+v", self)
	}
	if _, ok := impact.ByMethod["link"]; !ok {
		t.Fatal("every method must be present in the map")
	}
}

func TestYearsBetween(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(-3, 0, 0)
	end := now.AddDate(-1, 0, 0)

	if got := yearsBetween(nil, nil, false, now); got != 0 {
		t.Fatalf("nil start: got %v", got)
	}
	if got := yearsBetween(&start, &end, false, now); got != 2 {
		t.Fatalf("start..end: got %v, want 2", got)
	}
	if got := yearsBetween(&start, &end, true, now); got != 3 {
		t.Fatalf("current role must count until now: got %v, want 3", got)
	}
	future := now.AddDate(1, 0, 0)
	if got := yearsBetween(&future, nil, true, now); got != 0 {
		t.Fatalf("future start must clamp to 0: got %v", got)
	}
}

func TestStrengthsAndGapsOverlapBelowFourPillars(t *testing.T) {
	breakdown := []PillarBreakdown{
		{Name: "A", Score: 80},
		{Name: "B", Score: 20},
	}
	strengths, gaps := strengthsAndGaps(breakdown)
	if len(strengths) != 2 || len(gaps) != 2 {
		t.Fatalf("got %d strengths, %d gaps", len(strengths), len(gaps))
	}
	if strengths[0].Pillar != "A" || gaps[len(gaps)-1].Pillar != "B" {
		t.Fatalf("ordering wrong: %+v / %+v", strengths, gaps)
	}
}

func TestRecommendationsPriority(t *testing.T) {
	recs := recommendations([]PillarScore{
		{Pillar: "Technical Skills", Score: 10},
		{Pillar: "Domain Knowledge", Score: 45},
	}, "Data Analyst")

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations", len(recs))
	}
	if recs[0].Priority != "high" || recs[1].Priority != "medium" {
		t.Fatalf("priorities wrong: %+v", recs)
	}
	if recs[0].Area != "Technical Skills" {
		t.Fatalf("area wrong: %+v", recs[0])
	}
}
